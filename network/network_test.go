package network

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"woolball/game"
	"woolball/protocol"
	"woolball/room"
)

func newTestServer(t *testing.T) (*httptest.Server, *room.Manager) {
	t.Helper()
	m := room.NewManager(room.DefaultSettings(), nil)
	s := httptest.NewServer(NewServer(m, nil).Handler())
	t.Cleanup(func() {
		s.Close()
		m.StopAll()
	})
	return s, m
}

func dial(t *testing.T, s *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	b, err := protocol.Encode(typ, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, b))
}

func read(t *testing.T, conn *websocket.Conn) protocol.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := protocol.DecodeEnvelope(msg)
	require.NoError(t, err)
	return env
}

func TestWebSocketJoinAndDrag(t *testing.T) {
	s, _ := newTestServer(t)
	conn := dial(t, s, "?room=TEST01")

	send(t, conn, protocol.MsgHello, protocol.Hello{V: 1, Name: "tester"})

	env := read(t, conn)
	require.Equal(t, protocol.MsgWelcome, env.T)
	w, err := protocol.DecodePayload[protocol.Welcome](env)
	require.NoError(t, err)
	assert.NotEmpty(t, w.ClientID)
	assert.Equal(t, "TEST01", w.Room)
	assert.Equal(t, 10, w.Particles)

	send(t, conn, protocol.MsgAnchor, protocol.Anchor{X: 60, Y: 80, Z: 28})

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		env := read(t, conn)
		if env.T != protocol.MsgState {
			continue
		}
		st, err := protocol.DecodePayload[protocol.State](env)
		require.NoError(t, err)
		require.Len(t, st.Vertices, w.Particles)
		if st.Vertices[len(st.Vertices)-1][0] > 20 {
			return
		}
	}
	t.Fatalf("chain never followed the anchor")
}

func TestWebSocketRequiresRoomCode(t *testing.T) {
	s, _ := newTestServer(t)
	u := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketRejectsMissingHello(t *testing.T) {
	s, _ := newTestServer(t)
	conn := dial(t, s, "?room=TEST02")

	send(t, conn, protocol.MsgPower, protocol.Power{X: 1})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
}

func TestRoomsAPI(t *testing.T) {
	s, m := newTestServer(t)

	resp, err := http.Post(s.URL+"/rooms", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created room.RoomInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Len(t, created.Code, 6)

	resp2, err := http.Get(s.URL + "/rooms")
	require.NoError(t, err)
	defer resp2.Body.Close()

	var list []room.RoomInfo
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, created.Code, list[0].Code)
	assert.Len(t, m.ListRooms(), 1)
}

func TestDecodeCommand(t *testing.T) {
	b, err := protocol.Encode(protocol.MsgPointer, protocol.Pointer{X: 1, Y: 2, W: 3, H: 4})
	require.NoError(t, err)
	cmd, err := decodeCommand("c1", b)
	require.NoError(t, err)
	assert.Equal(t, room.Pointer{ClientID: "c1", X: 1, Y: 2, Width: 3, Height: 4}, cmd)

	b, err = protocol.Encode(protocol.MsgHello, protocol.Hello{V: 1})
	require.NoError(t, err)
	cmd, err = decodeCommand("c1", b)
	require.NoError(t, err)
	assert.Nil(t, cmd)

	_, err = decodeCommand("c1", []byte("{"))
	require.Error(t, err)
}

func TestDecodeCommandRejectsOutOfRangeValues(t *testing.T) {
	cases := map[string]struct {
		typ     string
		payload any
	}{
		"huge power":  {protocol.MsgPower, protocol.Power{X: 1e308}},
		"long power":  {protocol.MsgPower, protocol.Power{X: game.MaxPower, Y: 1}},
		"far anchor":  {protocol.MsgAnchor, protocol.Anchor{X: 1e300, Y: 80, Z: 28}},
		"far pointer": {protocol.MsgPointer, protocol.Pointer{X: -1e12, Y: 2, W: 800, H: 600}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := protocol.Encode(tc.typ, tc.payload)
			require.NoError(t, err)
			cmd, err := decodeCommand("c1", b)
			require.ErrorIs(t, err, errBadValue)
			assert.Nil(t, cmd)
		})
	}

	b, err := protocol.Encode(protocol.MsgPower, protocol.Power{X: 10})
	require.NoError(t, err)
	cmd, err := decodeCommand("c1", b)
	require.NoError(t, err)
	assert.Equal(t, room.Power{ClientID: "c1", Force: mgl64.Vec2{10, 0}}, cmd)
}

func TestRejectedConnectionsOpenNoRoom(t *testing.T) {
	s, m := newTestServer(t)

	for i := 0; i < 5; i++ {
		resp, err := http.Get(fmt.Sprintf("%s/ws?room=R%d", s.URL, i))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	conn := dial(t, s, "?room=NOHELLO")
	send(t, conn, protocol.MsgPower, protocol.Power{X: 1})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	assert.Empty(t, m.ListRooms())
}
