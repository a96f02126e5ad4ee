package game

import "github.com/go-gl/mathgl/mgl64"

// Step advances the chain one tick with the anchor pinned to anchor.
//
// Particles are relaxed from the tail toward the anchor: a single pass over
// the chain only converges onto the pin in that order.
func (c *Chain) Step(anchor mgl64.Vec3) {
	anchor = c.pinTarget(anchor)
	for _, p := range c.particles {
		p.ApplyForce(c.cfg.Wind, c.cfg.Gravity)
	}

	tail := len(c.particles) - 1
	for pass := 0; pass < c.cfg.RelaxationPasses; pass++ {
		for i := tail; i >= 0; i-- {
			p := c.particles[i]
			if p.IsAnchor {
				p.X = anchor.X()
				p.Y = anchor.Y()
				p.Z = anchor.Z()
			} else {
				corr := p.link.relax(anchor.Z())
				if i == tail {
					c.updateBody(p, corr)
				}
			}
			c.clampFloor(p)
		}
	}

	// The anchor stays on its pin with no velocity of its own, so a drag
	// never flings its neighbour past it.
	for i, p := range c.particles {
		if p.IsAnchor {
			p.hold(p.X, p.Y, p.Z)
			continue
		}
		p.Integrate(c.cfg.Damping)

		prev := c.particles[i-1]
		moved := i == 1 && c.leash(p, prev)
		if !inBounds(p) {
			p.hold(prev.X, prev.Y-p.link.RestLength, prev.Z)
		}
		if c.clampFloor(p) || moved {
			p.sync()
		}
	}

	c.dirty = true
}

func (c *Chain) updateBody(p *Particle, corr Correction) {
	c.body.Position = p.Position()

	if p.Y <= c.cfg.FloorHeight {
		c.body.Spin = (p.OldX - p.X) / RollDivisor
	} else {
		c.body.Spin = mgl64.Clamp(corr.DiffX*SwingFactor, -MaxSwing, MaxSwing)
	}
	if !finite(c.body.Spin) {
		c.body.Spin = 0
	}
	c.body.Rotation += c.body.Spin
}

// leash keeps the first link from swinging wider than one segment either
// side of the pin. The link may still stretch vertically.
func (c *Chain) leash(p, pin *Particle) bool {
	x := mgl64.Clamp(p.X, pin.X-c.cfg.SegmentLength, pin.X+c.cfg.SegmentLength)
	if x == p.X {
		return false
	}
	p.X = x
	return true
}

func (c *Chain) clampFloor(p *Particle) bool {
	if p.Y < c.cfg.FloorHeight {
		p.Y = c.cfg.FloorHeight
		return true
	}
	return false
}

// Step runs one frame of the scene: the chain follows the anchor, then the
// hero's power is handed to the tail and the hero sees the new ball position.
// Power received here is applied at the next tick's integration.
func (s *Scene) Step(anchor mgl64.Vec3) {
	s.Tick++
	s.Chain.Step(anchor)
	if s.Hero == nil {
		return
	}
	s.Chain.ReceivePower(s.Hero.TransferPower())
	s.Hero.InteractWithBall(s.Chain.Body().Position)
}
