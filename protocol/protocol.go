package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgPointer = "pointer"
	MsgAnchor  = "anchor"
	MsgPower   = "power"
	MsgWelcome = "welcome"
	MsgState   = "state"
)

const (
	SimTickHz   = 60
	BroadcastHz = 30
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
