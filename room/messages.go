package room

import "github.com/go-gl/mathgl/mgl64"

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn  Conn
	Name  string
	Reply chan<- JoinResult
}

type JoinResult struct {
	ClientID string
}

// Pointer: latest pointer of a client in screen pixels
type Pointer struct {
	ClientID      string
	X, Y          float64
	Width, Height int
}

// Anchor: latest anchor target of a client in world space
type Anchor struct {
	ClientID string
	Target   mgl64.Vec3
}

// Power: a push on the ball, applied on the next tick
type Power struct {
	ClientID string
	Force    mgl64.Vec2
}

// Leave: issued on disconnect
type Leave struct {
	ClientID string
}
