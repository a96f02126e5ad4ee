package protocol

import "testing"

func TestMessageConstants(t *testing.T) {
	want := map[string]string{
		MsgHello:   "hello",
		MsgPointer: "pointer",
		MsgAnchor:  "anchor",
		MsgPower:   "power",
		MsgWelcome: "welcome",
		MsgState:   "state",
	}
	for got, w := range want {
		if got != w {
			t.Fatalf("message type = %q, want %q", got, w)
		}
	}
	if len(want) != 6 {
		t.Fatalf("message types are not unique")
	}
}

func TestTimingSanity(t *testing.T) {
	if SimTickHz <= 0 || BroadcastHz <= 0 {
		t.Fatalf("timing constants must be > 0")
	}
	if SimTickHz%BroadcastHz != 0 {
		t.Fatalf("SimTickHz %% BroadcastHz != 0 (%d %% %d)", SimTickHz, BroadcastHz)
	}
}

func TestEncodeRejectsEmpty(t *testing.T) {
	if _, err := Encode("", State{}); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if _, err := Encode(MsgState, nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
	if _, err := DecodeEnvelope(nil); err == nil {
		t.Fatalf("expected error for empty envelope")
	}
}

func TestDecodePayloadPointer(t *testing.T) {
	b, err := Encode(MsgPointer, Pointer{X: 12, Y: 34, W: 800, H: 600})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(b)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.T != MsgPointer {
		t.Fatalf("type = %q, want %q", env.T, MsgPointer)
	}
	p, err := DecodePayload[Pointer](env)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if p.W != 800 || p.H != 600 || p.X != 12 || p.Y != 34 {
		t.Fatalf("pointer = %+v", p)
	}

	if _, err := DecodePayload[Pointer](Envelope{T: MsgPointer}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
