package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyebeam/audio"
	"github.com/lixenwraith/eyebeam/core"
	"github.com/lixenwraith/eyebeam/effect"
	"github.com/lixenwraith/eyebeam/gate"
	"github.com/lixenwraith/eyebeam/particle"
	"github.com/lixenwraith/eyebeam/vmath"
)

func rowText(b *Buffer, y int) string {
	var sb strings.Builder
	for x := 0; x < b.Width(); x++ {
		c, _ := b.Get(x, y)
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

func activeFrame() *effect.Frame {
	origin := vmath.Vec3F{}
	return &effect.Frame{
		Points: []effect.PointVisual{{
			Eye: effect.EyeLeft, Position: origin, Scale: 4, Color: core.RGB{R: 200, G: 255, B: 255}, Opacity: 1,
		}},
		Beams: []effect.BeamVisual{{
			Eye:       effect.EyeLeft,
			Origin:    origin,
			Direction: vmath.Vec3F{Z: -1},
			Length:    150,
			Impact:    vmath.Vec3F{Z: -95},
			Color:     core.RGB{R: 255, G: 32, B: 24},
		}},
		Sparks: []effect.SparkVisual{{
			Eye: effect.EyeLeft,
			Visual: particle.Visual{
				Position:    vmath.Vec3F{X: 8, Y: 16},
				Orientation: vmath.Vec3F{X: 1},
				Color:       core.RGB{R: 255, G: 240, B: 200},
				Opacity:     1,
			},
		}},
		Gate:  gate.Snapshot{State: gate.StateActive, Raw: true, Gated: true},
		Audio: audio.PhaseActive,
	}
}

func TestComposeActiveFrame(t *testing.T) {
	buf := NewBuffer(100, 21)
	proj := Projection{Cols: 100, Rows: 20}
	Compose(buf, proj, activeFrame(), Status{})

	cell := func(x, y int) Cell {
		c, _ := buf.Get(x, y)
		return c
	}

	if r := cell(50, 10).Rune; r != '◉' {
		t.Errorf("Expected eye point at origin cell, got %q", r)
	}
	if r := cell(50, 12).Rune; r != '│' {
		t.Errorf("Expected vertical beam below the eye, got %q", r)
	}
	if r := cell(50, 15).Rune; r != '✶' {
		t.Errorf("Expected impact flare at depth 95, got %q", r)
	}
	if r := cell(51, 9).Rune; r != '─' {
		t.Errorf("Expected horizontal spark, got %q", r)
	}
	// Halo tints the neighbours' background
	if cell(49, 10).Bg == Background {
		t.Error("Expected point glow on neighbouring cell")
	}

	status := rowText(buf, 20)
	for _, want := range []string{"LIVE", "gate active", "audio active", "sparks 1", "[space] fire"} {
		if !strings.Contains(status, want) {
			t.Errorf("Status line %q missing %q", status, want)
		}
	}
}

func TestComposeShortBeamHasNoFlare(t *testing.T) {
	f := activeFrame()
	f.Beams[0].Length = 60
	buf := NewBuffer(100, 21)
	Compose(buf, Projection{Cols: 100, Rows: 20}, f, Status{})

	for y := 0; y < 20; y++ {
		if strings.ContainsRune(rowText(buf, y), '✶') {
			t.Fatalf("Unexpected flare on row %d before impact", y)
		}
	}
}

func TestComposeIdleFrame(t *testing.T) {
	buf := NewBuffer(100, 11)
	f := &effect.Frame{Gate: gate.Snapshot{State: gate.StateIdle}, Audio: audio.PhaseIdle}
	Compose(buf, Projection{Cols: 100, Rows: 10}, f, Status{Demo: true, Paused: true, Muted: true})

	for y := 0; y < 10; y++ {
		if strings.TrimSpace(rowText(buf, y)) != "" {
			t.Fatalf("Expected empty scene on row %d, got %q", y, rowText(buf, y))
		}
	}
	status := rowText(buf, 10)
	for _, want := range []string{"DEMO", "gate idle", "(muted)", "PAUSED"} {
		if !strings.Contains(status, want) {
			t.Errorf("Status line %q missing %q", status, want)
		}
	}
}

func TestTerminalDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := Attach(screen)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	defer term.Fini()
	screen.SetSize(100, 21)
	term.Resize()

	if p := term.Projection(); p.Cols != 100 || p.Rows != 20 {
		t.Fatalf("Expected status row reserved, got %+v", p)
	}
	if vp := term.Viewport(); vp.Width <= 0 || vp.Height <= 0 {
		t.Fatalf("Expected positive viewport, got %+v", vp)
	}

	term.Draw(activeFrame(), Status{})
	if r, _, _, _ := screen.GetContent(50, 10); r != '◉' {
		t.Errorf("Expected point drawn to screen, got %q", r)
	}
}
