package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestViewRoundTrip(t *testing.T) {
	v := newView(80, 24, 8)
	for _, cell := range [][2]int{{0, 1}, {40, 10}, {79, 22}} {
		p := v.toWorld(cell[0], cell[1])
		col, row, ok := v.toScreen(p)
		if !ok || col != cell[0] || row != cell[1] {
			t.Fatalf("cell %v -> %v -> (%d,%d)", cell, p, col, row)
		}
	}
	if p := v.toWorld(40, v.groundRow); p.Y() != 8 || p.X() != 0 {
		t.Fatalf("ground center maps to %v, want (0,8)", p)
	}
}

func TestToScreenDropsUnplottablePoints(t *testing.T) {
	v := newView(80, 24, 8)
	for _, p := range []mgl64.Vec3{
		{math.NaN(), 10, 0},
		{0, math.Inf(1), 0},
		{1e308, 10, 0},
		{0, -1e9, 0},
	} {
		if col, row, ok := v.toScreen(p); ok {
			t.Fatalf("%v mapped to (%d,%d), want dropped", p, col, row)
		}
	}
	if _, _, ok := v.toScreen(mgl64.Vec3{-300, 400, 0}); !ok {
		t.Fatalf("off-grid but nearby point should still map")
	}
}

func TestLineVisitsEndpoints(t *testing.T) {
	var cells [][2]int
	line(0, 0, 5, 2, func(x, y int) { cells = append(cells, [2]int{x, y}) })
	if cells[0] != [2]int{0, 0} || cells[len(cells)-1] != [2]int{5, 2} {
		t.Fatalf("line cells %v", cells)
	}
	if len(cells) != 6 {
		t.Fatalf("line visited %d cells, want 6", len(cells))
	}
}

func TestBallGlyphCycles(t *testing.T) {
	if ballGlyph(0) != ballGlyph(2*math.Pi) {
		t.Fatalf("glyph should repeat every turn")
	}
	if ballGlyph(0) == ballGlyph(math.Pi/2) {
		t.Fatalf("glyph should change every quarter turn")
	}
	if ballGlyph(math.NaN()) != ballFrames[0] {
		t.Fatalf("NaN rotation glyph = %q", ballGlyph(math.NaN()))
	}
	if ballGlyph(-0.1) != ballFrames[3] {
		t.Fatalf("negative rotation glyph = %q", ballGlyph(-0.1))
	}
}
