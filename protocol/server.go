package protocol

type Welcome struct {
	ClientID  string  `json:"clientId"`
	Room      string  `json:"room,omitempty"`
	TickHz    int     `json:"tickHz"`
	Particles int     `json:"particles"`
	Floor     float64 `json:"floor"`
}

type State struct {
	Tick     int          `json:"tick"`
	Vertices [][3]float64 `json:"vertices"`
	Body     BodySnapshot `json:"body"`
}

type BodySnapshot struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Rot  float64 `json:"rot"`
	Spin float64 `json:"spin,omitempty"`
}
