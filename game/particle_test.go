package game

import (
	"math"
	"testing"
)

func TestParticleIntegrateUsesImplicitVelocity(t *testing.T) {
	p := &Particle{X: 10, Y: 20, OldX: 8, OldY: 21, Z: 3}
	p.ApplyForce(1, -2)

	p.Integrate(0.9)

	wantX := 10 + (10-8)*0.9 + 1
	wantY := 20 + (20-21)*0.9 - 2
	if math.Abs(p.X-wantX) > 1e-12 || math.Abs(p.Y-wantY) > 1e-12 {
		t.Fatalf("position = (%f,%f), want (%f,%f)", p.X, p.Y, wantX, wantY)
	}
	if p.OldX != 10 || p.OldY != 20 {
		t.Fatalf("previous = (%f,%f), want (10,20)", p.OldX, p.OldY)
	}
	if p.Z != 3 {
		t.Fatalf("z changed by integration: %f", p.Z)
	}
}

func TestParticleForceResetsAfterIntegrate(t *testing.T) {
	p := &Particle{}
	p.ApplyForce(1e9, -1e9)
	p.ApplyForce(3, 4)
	if p.FX != 1e9+3 || p.FY != -1e9+4 {
		t.Fatalf("forces not additive: (%f,%f)", p.FX, p.FY)
	}

	p.Integrate(0.9)
	if p.FX != 0 || p.FY != 0 {
		t.Fatalf("force after integrate = (%f,%f), want zero", p.FX, p.FY)
	}
}

func TestParticleIntegrateWritesVertex(t *testing.T) {
	c, err := NewChain(DefaultConfig())
	if err != nil {
		t.Fatalf("new chain: %v", err)
	}
	p := c.Particles()[3]
	p.ApplyForce(5, 0)
	p.Integrate(0.9)

	if got := c.Vertices()[3]; got != p.Position() {
		t.Fatalf("vertex = %v, want %v", got, p.Position())
	}
}
