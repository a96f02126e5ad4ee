package network

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"woolball/game"
	"woolball/logging"
	"woolball/protocol"
	"woolball/room"
)

const (
	readLimit    = 1 << 20 // 1MB
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second
	helloWait    = 10 * time.Second
	joinWait     = 5 * time.Second
	sendBuffer   = 64
)

var (
	errClientClosed = errors.New("client closed")
	errClientSlow   = errors.New("client send buffer full")
	errBadValue     = errors.New("value out of range")
)

// Server exposes rooms over websockets plus a small JSON API.
type Server struct {
	manager  *room.Manager
	log      *zap.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

func NewServer(m *room.Manager, log *zap.Logger) *Server {
	s := &Server{
		manager: m,
		log:     logging.OrNop(log),
		upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("/ws", s.handleWS)
	s.mux.HandleFunc("GET /rooms", s.handleListRooms)
	s.mux.HandleFunc("POST /rooms", s.handleCreateRoom)
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.ListRooms())
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, _ *http.Request) {
	code, err := s.manager.CreateRoom()
	if err != nil {
		s.log.Error("create room", zap.Error(err))
		http.Error(w, "could not create room", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, room.RoomInfo{Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if code == "" {
		http.Error(w, "missing room code", http.StatusBadRequest)
		return
	}
	// Upgrade HTTP -> WebSocket
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade", zap.Error(err))
		return
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(helloWait))
	hello, err := readHello(conn)
	if err != nil {
		s.log.Debug("bad hello", zap.Error(err))
		_ = conn.Close()
		return
	}

	// The room only exists once someone is about to join it.
	rm, err := s.manager.GetOrCreateRoom(code)
	if err != nil {
		s.log.Error("open room", zap.String("room", code), zap.Error(err))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "could not open room"))
		_ = conn.Close()
		return
	}

	c := newClient(conn)
	go c.writePump()

	reply := make(chan room.JoinResult, 1)
	if !rm.Send(room.Join{Conn: c, Name: hello.Name, Reply: reply}) {
		_ = c.Close()
		return
	}
	var id string
	select {
	case res := <-reply:
		id = res.ClientID
	case <-time.After(joinWait):
		_ = c.Close()
		return
	}

	s.readPump(conn, rm, id)
	rm.Send(room.Leave{ClientID: id})
	_ = c.Close()
}

func readHello(conn *websocket.Conn) (protocol.Hello, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return protocol.Hello{}, err
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return protocol.Hello{}, err
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, errors.New("first message must be hello, got " + env.T)
	}
	return protocol.DecodePayload[protocol.Hello](env)
}

// readPump forwards client input to the room until the connection fails.
func (s *Server) readPump(conn *websocket.Conn, rm *room.Room, id string) {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("read", zap.String("client", id), zap.Error(err))
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		cmd, err := decodeCommand(id, msg)
		if err != nil {
			s.log.Debug("bad message", zap.String("client", id), zap.Error(err))
			continue
		}
		if cmd != nil && !rm.Send(cmd) {
			return
		}
	}
}

func decodeCommand(id string, msg []byte) (any, error) {
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil {
		return nil, err
	}
	switch env.T {
	case protocol.MsgPointer:
		p, err := protocol.DecodePayload[protocol.Pointer](env)
		if err != nil {
			return nil, err
		}
		if !game.ValidPoint(mgl64.Vec3{p.X, p.Y, 0}) {
			return nil, errBadValue
		}
		return room.Pointer{ClientID: id, X: p.X, Y: p.Y, Width: p.W, Height: p.H}, nil
	case protocol.MsgAnchor:
		a, err := protocol.DecodePayload[protocol.Anchor](env)
		if err != nil {
			return nil, err
		}
		target := mgl64.Vec3{a.X, a.Y, a.Z}
		if !game.ValidPoint(target) {
			return nil, errBadValue
		}
		return room.Anchor{ClientID: id, Target: target}, nil
	case protocol.MsgPower:
		p, err := protocol.DecodePayload[protocol.Power](env)
		if err != nil {
			return nil, err
		}
		force := mgl64.Vec2{p.X, p.Y}
		if !game.ValidPower(force) {
			return nil, errBadValue
		}
		return room.Power{ClientID: id, Force: force}, nil
	}
	return nil, nil
}

// client is the room's view of a websocket. Sends never block the room: a
// client that falls behind its buffer is reported as failed and dropped.
type client struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *client) Send(b []byte) error {
	select {
	case <-c.done:
		return errClientClosed
	default:
	}
	select {
	case c.send <- b:
		return nil
	default:
		return errClientSlow
	}
}

func (c *client) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				_ = c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
