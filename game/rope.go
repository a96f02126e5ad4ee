package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Constraint keeps P1 at RestLength from P2. P1 is the owning particle, P2
// its predecessor toward the anchor.
type Constraint struct {
	P1, P2     *Particle
	RestLength float64
}

// Correction is the outcome of relaxing one constraint. DiffX/DiffY is the
// P1-P2 offset measured before the correction was applied.
type Correction struct {
	DiffX, DiffY float64
	Applied      bool
}

// relax moves both endpoints half of the way toward RestLength and puts them
// on the plane z.
func (c *Constraint) relax(z float64) Correction {
	dx := c.P1.X - c.P2.X
	dy := c.P1.Y - c.P2.Y
	out := Correction{DiffX: dx, DiffY: dy}
	c.P1.Z = z
	c.P2.Z = z

	dist := math.Hypot(dx, dy)
	if !(dist >= MinSeparation) || math.IsInf(dist, 0) {
		return out
	}

	diff := (c.RestLength - dist) / dist
	px := dx * diff * 0.5
	py := dy * diff * 0.5

	c.P1.X += px
	c.P1.Y += py
	c.P2.X -= px
	c.P2.Y -= py

	out.Applied = true
	return out
}

// Body is the rigid transform of the ball hanging from the chain. Spin is
// the rotation added by the most recent step.
type Body struct {
	Position mgl64.Vec3
	Rotation float64
	Spin     float64
}

// Chain is a rope of particles. Index 0 is the anchor, the last index the
// tail the ball hangs from.
type Chain struct {
	cfg       Config
	particles []*Particle
	vertices  []mgl64.Vec3
	body      Body
	dirty     bool
}

func NewChain(cfg Config) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chain{
		cfg:       cfg,
		particles: make([]*Particle, cfg.ParticleCount),
		vertices:  make([]mgl64.Vec3, cfg.ParticleCount),
	}
	for i := range c.particles {
		p := &Particle{IsAnchor: i == 0, vertex: &c.vertices[i]}
		if i > 0 {
			p.link = &Constraint{P1: p, P2: c.particles[i-1], RestLength: cfg.SegmentLength}
		}
		c.particles[i] = p
	}
	c.Reset(mgl64.Vec3{})
	return c, nil
}

// Reset hangs the chain straight down from origin at rest, with no force
// and no body rotation.
func (c *Chain) Reset(origin mgl64.Vec3) {
	for i, p := range c.particles {
		p.X = origin.X()
		p.Y = origin.Y() - float64(i)*c.cfg.SegmentLength
		p.Z = origin.Z()
		p.OldX, p.OldY = p.X, p.Y
		p.FX, p.FY = 0, 0
		p.sync()
	}
	c.body = Body{Position: c.Tail().Position()}
	c.dirty = true
}

func (c *Chain) Config() Config { return c.cfg }

// Particles exposes the chain in anchor-to-tail order. Callers must not
// mutate it between steps.
func (c *Chain) Particles() []*Particle { return c.particles }

// Vertices is the render buffer, updated in place by every integration.
func (c *Chain) Vertices() []mgl64.Vec3 { return c.vertices }

func (c *Chain) Anchor() *Particle { return c.particles[0] }

func (c *Chain) Tail() *Particle { return c.particles[len(c.particles)-1] }

func (c *Chain) Body() Body { return c.body }

// TakeDirty reports whether the vertex buffer changed since the last call.
func (c *Chain) TakeDirty() bool {
	d := c.dirty
	c.dirty = false
	return d
}

// ReceivePower pushes the tail. It takes effect at the next integration.
// Forces that are not finite are dropped.
func (c *Chain) ReceivePower(force mgl64.Vec2) {
	if !finite(force.X()) || !finite(force.Y()) {
		return
	}
	c.Tail().ApplyForce(force.X(), force.Y())
}
