package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrNoIntersection = errors.New("pointer ray does not reach the wall plane")

// Camera is the perspective camera pointers are unprojected through. The
// anchor follows the pointer on the plane z = WallDepth.
type Camera struct {
	Eye       mgl64.Vec3 `yaml:"eye"`
	Target    mgl64.Vec3 `yaml:"target"`
	Up        mgl64.Vec3 `yaml:"up"`
	FovY      float64    `yaml:"fov_y"` // degrees
	Near      float64    `yaml:"near"`
	Far       float64    `yaml:"far"`
	WallDepth float64    `yaml:"wall_depth"`
}

func DefaultCamera() Camera {
	return Camera{
		Eye:       mgl64.Vec3{0, 250, 300},
		Target:    mgl64.Vec3{0, 60, 0},
		Up:        mgl64.Vec3{0, 1, 0},
		FovY:      DefaultCameraFovY,
		Near:      DefaultCameraNear,
		Far:       DefaultCameraFar,
		WallDepth: DefaultCameraWallDepth,
	}
}

// PointerToWorld maps a pointer in screen pixels (origin top left) to the
// point under it on the wall plane.
func (c Camera) PointerToWorld(px, py float64, width, height int) (mgl64.Vec3, error) {
	if width <= 0 || height <= 0 {
		return mgl64.Vec3{}, fmt.Errorf("invalid viewport %dx%d", width, height)
	}

	aspect := float64(width) / float64(height)
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Eye, c.Target, c.Up)

	// UnProject wants window coordinates with y up and depth in [0,1].
	win := mgl64.Vec3{px, float64(height) - py, (PointerDepthNDC + 1) / 2}
	p, err := mgl64.UnProject(win, view, proj, 0, 0, width, height)
	if err != nil {
		return mgl64.Vec3{}, fmt.Errorf("unproject pointer: %w", err)
	}

	dir := p.Sub(c.Eye)
	if dir.Len() == 0 {
		return mgl64.Vec3{}, ErrNoIntersection
	}
	dir = dir.Normalize()
	if math.Abs(dir.Z()) < MinSeparation {
		return mgl64.Vec3{}, ErrNoIntersection
	}

	dist := (c.WallDepth - c.Eye.Z()) / dir.Z()
	if !(dist >= 0) {
		return mgl64.Vec3{}, ErrNoIntersection
	}
	out := c.Eye.Add(dir.Mul(dist))
	if !finite(out.X()) || !finite(out.Y()) || !finite(out.Z()) {
		return mgl64.Vec3{}, ErrNoIntersection
	}
	return out, nil
}
