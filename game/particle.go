package game

import "github.com/go-gl/mathgl/mgl64"

// Particle is one point mass of the chain. Velocity is implicit in the
// difference between the current and previous position. Only X/Y are
// integrated; Z places the particle on the anchor's depth plane.
type Particle struct {
	X, Y, Z    float64
	OldX, OldY float64
	FX, FY     float64
	IsAnchor   bool

	vertex *mgl64.Vec3
	link   *Constraint // nil for the anchor
}

// ApplyForce accumulates a force for the next integration.
func (p *Particle) ApplyForce(fx, fy float64) {
	p.FX += fx
	p.FY += fy
}

// Integrate advances the particle one Verlet step and clears the force.
func (p *Particle) Integrate(damping float64) {
	nx := p.X + (p.X-p.OldX)*damping + p.FX
	ny := p.Y + (p.Y-p.OldY)*damping + p.FY
	p.OldX = p.X
	p.OldY = p.Y
	p.X = nx
	p.Y = ny

	p.sync()

	p.FX = 0
	p.FY = 0
}

// hold puts the particle at (x, y, z) with no velocity and no force.
func (p *Particle) hold(x, y, z float64) {
	p.X, p.Y, p.Z = x, y, z
	p.OldX, p.OldY = x, y
	p.FX, p.FY = 0, 0
	p.sync()
}

// Position returns the current position as a vector.
func (p *Particle) Position() mgl64.Vec3 {
	return mgl64.Vec3{p.X, p.Y, p.Z}
}

func (p *Particle) sync() {
	if p.vertex == nil {
		return
	}
	p.vertex[0] = p.X
	p.vertex[1] = p.Y
	p.vertex[2] = p.Z
}
