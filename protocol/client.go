package protocol

// messages coming in from the client.

type Hello struct {
	V    int    `json:"v"`              // version
	Name string `json:"name,omitempty"` // optional name
}

// Pointer is a pointer position in screen pixels together with the size of
// the viewport it was measured in.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W int     `json:"w"`
	H int     `json:"h"`
}

// Anchor is a target already in world space.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Power is a push on the ball.
type Power struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
