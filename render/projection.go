package render

import (
	"math"

	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/perception"
	"github.com/lixenwraith/eyebeam/vmath"
)

// Projection maps render space onto a grid of terminal cells centered on the origin
// Depth is drawn obliquely so beams along -Z remain visible
type Projection struct {
	Cols, Rows int
}

// colUnits is the render width of one cell, rows are TerminalCellAspect times taller
func colUnits() float64 {
	return parameter.TerminalUnitsPerRow / parameter.TerminalCellAspect
}

// Viewport returns the render-space size covered by the grid
func (p Projection) Viewport() perception.Viewport {
	return perception.Viewport{
		Width:  float64(p.Cols) * colUnits(),
		Height: float64(p.Rows) * parameter.TerminalUnitsPerRow,
	}
}

// Project returns the cell containing v, possibly off-grid
func (p Projection) Project(v vmath.Vec3F) (col, row int) {
	sx, sy := p.screen(v)
	col = int(math.Floor(float64(p.Cols)/2 + sx))
	row = int(math.Floor(float64(p.Rows)/2 - sy))
	return col, row
}

// screen returns v in cell units, y up
func (p Projection) screen(v vmath.Vec3F) (float64, float64) {
	return v.X / colUnits(), (v.Y + v.Z*parameter.TerminalDepthSlant) / parameter.TerminalUnitsPerRow
}

// Direction returns the on-screen angle of a render-space direction, radians, y up
func (p Projection) Direction(d vmath.Vec3F) float64 {
	sx, sy := p.screen(d)
	return math.Atan2(sy, sx)
}

// Sensor is the inverse of ToRender followed by Project, the normalized point drawn at a cell center
func (p Projection) Sensor(col, row int) perception.Point2D {
	if p.Cols <= 0 || p.Rows <= 0 {
		return perception.Point2D{X: 0.5, Y: 0.5}
	}
	return perception.Point2D{
		X: 1 - (float64(col)+0.5)/float64(p.Cols),
		Y: (float64(row) + 0.5) / float64(p.Rows),
	}
}

// lineGlyph picks a box-drawing stroke for an on-screen angle
func lineGlyph(angle float64) rune {
	a := math.Mod(angle, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '─'
	case a < 3*math.Pi/8:
		return '╱'
	case a < 5*math.Pi/8:
		return '│'
	default:
		return '╲'
	}
}
