package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ValidPower reports whether f is a usable push: finite and at most MaxPower
// long.
func ValidPower(f mgl64.Vec2) bool {
	return finite(f.X()) && finite(f.Y()) && f.Len() <= MaxPower
}

// ValidPoint reports whether every component of v is finite and within
// MaxCoordinate.
func ValidPoint(v mgl64.Vec3) bool {
	for _, c := range v {
		if !finite(c) || math.Abs(c) > MaxCoordinate {
			return false
		}
	}
	return true
}

func clampPower(f mgl64.Vec2) mgl64.Vec2 {
	if l := f.Len(); l > MaxPower {
		return f.Mul(MaxPower / l)
	}
	return f
}

func inBounds(p *Particle) bool {
	return finite(p.X) && finite(p.Y) && math.Abs(p.X) <= MaxCoordinate && math.Abs(p.Y) <= MaxCoordinate
}

// pinTarget keeps the previous pin for components of anchor that are not
// finite and clamps the rest into range.
func (c *Chain) pinTarget(anchor mgl64.Vec3) mgl64.Vec3 {
	cur := c.Anchor().Position()
	for i, v := range anchor {
		if !finite(v) {
			anchor[i] = cur[i]
			continue
		}
		anchor[i] = mgl64.Clamp(v, -MaxCoordinate, MaxCoordinate)
	}
	return anchor
}
