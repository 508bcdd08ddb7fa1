// Package canvas maps the relative coordinate space the interpreter works in
// (0..1000 on both axes) onto the drawable region of the live paint window.
package canvas

import (
	"math"

	"github.com/easel-agent/cli/internal/display"
)

const (
	// RelMax is the upper bound of the relative coordinate space
	RelMax = 1000

	// SafetyMargin keeps injected clicks away from the canvas edges, where
	// window borders and scrollbars swallow events
	SafetyMargin = 10

	minCanvasSide = 100
)

// Insets is the border of the window rect that is not drawable canvas
type Insets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Mapper converts relative coordinates into absolute screen coordinates
// within the canvas region of a specific window rect.
type Mapper struct {
	region display.Region
}

// NewMapper derives the canvas region from a window rect and its insets.
// Width and height are floored at 100px so a tiny or miscalibrated window
// still yields usable geometry.
func NewMapper(windowRect display.Region, insets Insets) *Mapper {
	x := windowRect.X + insets.Left
	if x < 0 {
		x = 0
	}
	y := windowRect.Y + insets.Top
	if y < 0 {
		y = 0
	}

	width := windowRect.Width - insets.Left - insets.Right
	if width < minCanvasSide {
		width = minCanvasSide
	}
	height := windowRect.Height - insets.Top - insets.Bottom
	if height < minCanvasSide {
		height = minCanvasSide
	}

	return &Mapper{
		region: display.Region{X: x, Y: y, Width: width, Height: height},
	}
}

// Region returns the canvas region in screen coordinates
func (m *Mapper) Region() display.Region {
	return m.region
}

// ToScreen converts a relative coordinate (0..1000) to an absolute screen
// coordinate, clamped to the safety margin inside the canvas.
func (m *Mapper) ToScreen(relX, relY int) (int, int) {
	x := m.region.X + int(math.Round(float64(relX)*float64(m.region.Width)/RelMax))
	y := m.region.Y + int(math.Round(float64(relY)*float64(m.region.Height)/RelMax))
	return m.Clamp(x, y)
}

// Clamp forces a screen coordinate inside the canvas safety margin
func (m *Mapper) Clamp(x, y int) (int, int) {
	minX := m.region.X + SafetyMargin
	maxX := m.region.X + m.region.Width - SafetyMargin
	minY := m.region.Y + SafetyMargin
	maxY := m.region.Y + m.region.Height - SafetyMargin

	return clamp(x, minX, maxX), clamp(y, minY, maxY)
}

// Center returns the screen coordinate of the canvas center
func (m *Mapper) Center() (int, int) {
	return m.region.X + m.region.Width/2, m.region.Y + m.region.Height/2
}

// EmptyCorner returns a point near the top-left of the canvas, used to click
// away from a freshly drawn shape to deselect it.
func (m *Mapper) EmptyCorner() (int, int) {
	return m.region.X + 20, m.region.Y + 20
}

// SquareBounds recenters a bounding box to equal sides (the smaller of width
// and height), so the oval tool draws a true circle.
func SquareBounds(x1, y1, x2, y2 int) (int, int, int, int) {
	centerX := (x1 + x2) / 2
	centerY := (y1 + y2) / 2

	size := abs(x2 - x1)
	if h := abs(y2 - y1); h < size {
		size = h
	}

	half := size / 2
	return centerX - half, centerY - half, centerX + half, centerY + half
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
