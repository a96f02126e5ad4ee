package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Terminal cells are about twice as tall as wide.
const (
	unitsPerCol = 1.0
	unitsPerRow = 2.0
)

// view maps the simulation plane onto the terminal grid. The floor sits just
// above the bottom row.
type view struct {
	centerCol int
	groundRow int
	floor     float64
}

func newView(width, height int, floor float64) view {
	ground := height - 2
	if ground < hudRows {
		ground = hudRows
	}
	return view{centerCol: width / 2, groundRow: ground, floor: floor}
}

func (v view) toWorld(col, row int) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(col-v.centerCol) * unitsPerCol,
		v.floor + float64(v.groundRow-row)*unitsPerRow,
		0,
	}
}

// maxOffscreen bounds how far outside the grid a point may map before it is
// dropped; it keeps line walks short.
const maxOffscreen = 1 << 12

// toScreen maps p to a cell. ok is false for points that are not finite or
// lie far outside the grid.
func (v view) toScreen(p mgl64.Vec3) (col, row int, ok bool) {
	fc := math.Round(p.X() / unitsPerCol)
	fr := math.Round((p.Y() - v.floor) / unitsPerRow)
	if !(math.Abs(fc) <= maxOffscreen) || !(math.Abs(fr) <= maxOffscreen) {
		return 0, 0, false
	}
	return v.centerCol + int(fc), v.groundRow - int(fr), true
}

// line visits every cell from (x0,y0) to (x1,y1) using Bresenham.
func line(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var ballFrames = []rune{'◐', '◓', '◑', '◒'}

// ballGlyph picks a frame so the ball visibly turns with its rotation.
func ballGlyph(rotation float64) rune {
	if math.IsNaN(rotation) || math.IsInf(rotation, 0) {
		return ballFrames[0]
	}
	quarter := int(math.Floor(rotation / (math.Pi / 2)))
	n := len(ballFrames)
	return ballFrames[((quarter%n)+n)%n]
}
