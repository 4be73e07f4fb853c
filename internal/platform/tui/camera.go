package tui

import (
	"math"

	"github.com/vovakirdan/strafe/internal/core"
)

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// Camera maps terminal cells to world coordinates. The center of the view
// sits on Center; Scale is the world width of one column.
type Camera struct {
	Center core.Vec2
	Scale  float64
	Width  int // columns
	Height int // rows available to the arena
}

// NewCamera creates a camera for a view of the given size.
func NewCamera(width, height int, scale float64) Camera {
	if scale <= 0 {
		scale = 1
	}
	return Camera{Scale: scale, Width: width, Height: height}
}

// ScreenToWorld implements core.Viewport. Points outside the arena rows
// (the HUD, or a pointer that left the window) have no world position.
func (c Camera) ScreenToWorld(p core.Vec2) (core.Vec2, bool) {
	if c.Width <= 0 || c.Height <= 0 || !p.IsFinite() {
		return core.Vec2{}, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= float64(c.Width) || p.Y >= float64(c.Height) {
		return core.Vec2{}, false
	}
	return core.V(
		c.Center.X+(p.X-float64(c.Width)/2)*c.Scale,
		c.Center.Y+(p.Y-float64(c.Height)/2)*c.Scale*cellAspect,
	), true
}

// WorldToScreen returns the cell that shows v and whether it is on screen.
func (c Camera) WorldToScreen(v core.Vec2) (int, int, bool) {
	if c.Scale <= 0 || !v.IsFinite() {
		return 0, 0, false
	}
	x := int(math.Round((v.X-c.Center.X)/c.Scale + float64(c.Width)/2))
	y := int(math.Round((v.Y-c.Center.Y)/(c.Scale*cellAspect) + float64(c.Height)/2))
	return x, y, x >= 0 && y >= 0 && x < c.Width && y < c.Height
}
