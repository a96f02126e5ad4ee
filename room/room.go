package room

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"woolball/game"
	"woolball/logging"
	"woolball/protocol"
)

var errOutOfRange = errors.New("value not finite or out of range")

type Settings struct {
	TickHz      int
	BroadcastHz int
	Simulation  game.Config
	Camera      game.Camera
}

func DefaultSettings() Settings {
	return Settings{
		TickHz:      protocol.SimTickHz,
		BroadcastHz: protocol.BroadcastHz,
		Simulation:  game.DefaultConfig(),
		Camera:      game.DefaultCamera(),
	}
}

// Room runs one scene. All scene state is owned by the Run goroutine and
// only reached through Inbox.
type Room struct {
	Inbox          chan any
	tickHz         int
	broadcastEvery int
	scene          *game.Scene
	hero           *game.PowerQueue
	anchor         mgl64.Vec3
	clients        map[string]Conn
	numClients     atomic.Int32
	log            *zap.Logger
	quit           chan struct{}

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last client leaves
}

func New(s Settings, log *zap.Logger) (*Room, error) {
	if s.TickHz <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", s.TickHz)
	}
	broadcastEvery := 1
	if s.BroadcastHz > 0 {
		broadcastEvery = s.TickHz / s.BroadcastHz
	}
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}

	hero := &game.PowerQueue{}
	scene, err := game.NewScene(s.Simulation, hero)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	scene.Camera = s.Camera

	// Start hanging from the middle of the wall instead of below the floor.
	anchor := mgl64.Vec3{0, s.Simulation.FloorHeight + float64(s.Simulation.ParticleCount)*s.Simulation.SegmentLength*2, s.Camera.WallDepth}
	scene.Chain.Reset(anchor)

	return &Room{
		Inbox:          make(chan any, 256),
		tickHz:         s.TickHz,
		broadcastEvery: broadcastEvery,
		scene:          scene,
		hero:           hero,
		anchor:         anchor,
		clients:        make(map[string]Conn),
		log:            logging.OrNop(log),
		quit:           make(chan struct{}),
	}, nil
}

func (r *Room) Stop() {
	close(r.quit)
}

// Send queues cmd for the room. It reports false once the room has stopped.
func (r *Room) Send(cmd any) bool {
	select {
	case <-r.quit:
		return false
	default:
	}
	select {
	case r.Inbox <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

// NumClients returns the current number of connected clients. Safe to call
// from any goroutine.
func (r *Room) NumClients() int {
	return int(r.numClients.Load())
}

func (r *Room) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(r.tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.scene.Step(r.anchor)
			if r.scene.Tick%r.broadcastEvery == 0 && r.scene.Chain.TakeDirty() {
				r.broadcastState()
			}
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := uuid.NewString()
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("Guest %d", len(r.clients)+1)
		}
		r.clients[id] = c.Conn
		r.numClients.Store(int32(len(r.clients)))
		r.log.Info("client joined", zap.String("room", r.Code), zap.String("client", id), zap.String("name", name))
		c.Reply <- JoinResult{ClientID: id}
		r.sendWelcomeTo(id, c.Conn)
		r.sendStateTo(c.Conn)
	case Pointer:
		if _, ok := r.clients[c.ClientID]; !ok {
			return
		}
		target, err := r.scene.Camera.PointerToWorld(c.X, c.Y, c.Width, c.Height)
		if err == nil && !game.ValidPoint(target) {
			err = errOutOfRange
		}
		if err != nil {
			r.log.Debug("pointer ignored", zap.String("client", c.ClientID), zap.Error(err))
			return
		}
		r.anchor = target
	case Anchor:
		if _, ok := r.clients[c.ClientID]; !ok {
			return
		}
		if !game.ValidPoint(c.Target) {
			r.log.Debug("anchor ignored", zap.String("client", c.ClientID), zap.Error(errOutOfRange))
			return
		}
		r.anchor = c.Target
	case Power:
		if _, ok := r.clients[c.ClientID]; !ok {
			return
		}
		if !game.ValidPower(c.Force) {
			r.log.Debug("power ignored", zap.String("client", c.ClientID), zap.Error(errOutOfRange))
			return
		}
		r.hero.Push(c.Force)
	case Leave:
		r.handleLeave(c.ClientID)
	}
}

func (r *Room) handleLeave(clientID string) {
	if c, ok := r.clients[clientID]; ok {
		_ = c.Close()
		delete(r.clients, clientID)
		r.numClients.Store(int32(len(r.clients)))
		r.log.Info("client left", zap.String("room", r.Code), zap.String("client", clientID))
	}
	if len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removeClient(clientID string) {
	if c, ok := r.clients[clientID]; ok {
		_ = c.Close()
	}
	delete(r.clients, clientID)
	r.numClients.Store(int32(len(r.clients)))
}

func (r *Room) broadcastState() {
	b, err := protocol.Encode(protocol.MsgState, r.buildSnapshot())
	if err != nil {
		r.log.Error("encode state", zap.Error(err))
		return
	}

	var failed []string
	for id, c := range r.clients {
		if err := c.Send(b); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.log.Warn("dropping client after failed send", zap.String("room", r.Code), zap.String("client", id))
		r.removeClient(id)
	}
	if len(failed) > 0 && len(r.clients) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) sendWelcomeTo(id string, c Conn) {
	cfg := r.scene.Chain.Config()
	b, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		ClientID:  id,
		Room:      r.Code,
		TickHz:    r.tickHz,
		Particles: cfg.ParticleCount,
		Floor:     cfg.FloorHeight,
	})
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) sendStateTo(c Conn) {
	b, err := protocol.Encode(protocol.MsgState, r.buildSnapshot())
	if err != nil {
		return
	}
	_ = c.Send(b)
}

func (r *Room) buildSnapshot() protocol.State {
	body := r.scene.Chain.Body()
	return protocol.State{
		Tick:     r.scene.Tick,
		Vertices: protocol.Vertices(r.scene.Chain.Vertices()),
		Body: protocol.BodySnapshot{
			X:    body.Position.X(),
			Y:    body.Position.Y(),
			Z:    body.Position.Z(),
			Rot:  body.Rotation,
			Spin: body.Spin,
		},
	}
}
