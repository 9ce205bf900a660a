package render

import (
	"fmt"
	"math"

	"github.com/lixenwraith/eyebeam/core"
	"github.com/lixenwraith/eyebeam/effect"
	"github.com/lixenwraith/eyebeam/gate"
	"github.com/lixenwraith/eyebeam/parameter"
	"github.com/lixenwraith/eyebeam/vmath"
)

var (
	flareColor  = core.RGB{R: 255, G: 220, B: 120}
	statusFg    = core.RGB{R: 150, G: 160, B: 190}
	statusBg    = core.RGB{R: 24, G: 26, B: 38}
	statusHot   = core.RGB{R: 255, G: 90, B: 60}
	statusArmed = core.RGB{R: 240, G: 200, B: 80}
)

// Status is host state shown on the bottom line
type Status struct {
	Demo   bool
	Paused bool
	Muted  bool
}

// Compose draws one frame into buf, the last buffer row is the status line
func Compose(buf *Buffer, proj Projection, f *effect.Frame, st Status) {
	buf.Clear()
	for _, b := range f.Beams {
		drawBeam(buf, proj, b)
	}
	for _, p := range f.Points {
		drawPoint(buf, proj, p)
	}
	for _, s := range f.Sparks {
		drawSpark(buf, proj, s)
	}
	drawStatus(buf, f, st)
}

// drawBeam strokes origin to tip, one sample per crossed cell
func drawBeam(buf *Buffer, proj Projection, b effect.BeamVisual) {
	c0, r0 := proj.Project(b.Origin)
	c1, r1 := proj.Project(b.End())
	steps := max(abs(c1-c0), abs(r1-r0), 1)
	glyph := lineGlyph(proj.Direction(b.Direction))

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := proj.Project(vmath.V3FAdd(b.Origin, vmath.V3FScale(b.Direction, b.Length*t)))
		// Hot white core fading to beam color toward the tip
		fg := core.RGB{R: 255, G: 255, B: 255}.Blend(b.Color, 0.4+0.6*t)
		buf.Set(x, y, glyph, fg, b.Color, BlendFgOnly, 1)
		buf.Set(x, y, 0, fg, b.Color, BlendAlphaBg, parameter.TerminalBeamGlow)
	}

	if b.Length >= parameter.BeamImpactThreshold {
		x, y := proj.Project(b.Impact)
		buf.Set(x, y, '✶', flareColor, flareColor, BlendFgOnly, 1)
		buf.Set(x, y, 0, flareColor, b.Color, BlendScreenBg, 1)
	}
}

func drawPoint(buf *Buffer, proj Projection, p effect.PointVisual) {
	x, y := proj.Project(p.Position)
	buf.Set(x, y, '◉', p.Color, p.Color, BlendAlphaFg, p.Opacity)

	halo := int(math.Ceil(p.Scale / colUnits()))
	for dx := -halo; dx <= halo; dx++ {
		buf.Set(x+dx, y, 0, p.Color, p.Color, BlendAlphaBg, parameter.TerminalPointGlow*p.Opacity)
	}
}

func drawSpark(buf *Buffer, proj Projection, s effect.SparkVisual) {
	x, y := proj.Project(s.Position)
	glyph := '·'
	if s.Orientation != (vmath.Vec3F{}) {
		glyph = lineGlyph(proj.Direction(s.Orientation))
	}
	buf.Set(x, y, glyph, s.Color, s.Color, BlendAlphaFg, s.Opacity)
}

func drawStatus(buf *Buffer, f *effect.Frame, st Status) {
	y := buf.Height() - 1
	if y < 0 {
		return
	}
	for x := 0; x < buf.Width(); x++ {
		buf.Set(x, y, ' ', statusFg, statusBg, BlendReplace, 1)
	}

	mode := " LIVE "
	if st.Demo {
		mode = " DEMO "
	}
	x := buf.Text(0, y, mode, statusBg, statusFg)

	gateFg := statusFg
	switch f.Gate.State {
	case gate.StateActive:
		gateFg = statusHot
	case gate.StatePending:
		gateFg = statusArmed
	}
	x = buf.Text(x+1, y, "gate "+f.Gate.State.String(), gateFg, statusBg)

	audio := f.Audio.String()
	if st.Muted {
		audio += " (muted)"
	}
	x = buf.Text(x+2, y, "audio "+audio, statusFg, statusBg)
	x = buf.Text(x+2, y, fmt.Sprintf("sparks %d", len(f.Sparks)), statusFg, statusBg)
	if st.Paused {
		x = buf.Text(x+2, y, "PAUSED", statusArmed, statusBg)
	}
	buf.Text(x+2, y, "[space] fire  [p] pause  [d] demo  [q] quit", statusFg, statusBg)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
