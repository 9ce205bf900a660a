package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyebeam/engine"
	"github.com/lixenwraith/eyebeam/internal/log"
	"github.com/lixenwraith/eyebeam/perception"
	"github.com/lixenwraith/eyebeam/render"
)

// host translates terminal input into the perception signal the orchestrator consumes
// Mouse position aims both eyes, space or a held left button fires
type host struct {
	proj   render.Projection
	clock  *engine.PausableClock
	manual *perception.Manual
	demo   perception.Source

	useDemo     bool
	spaceFiring bool
	mouseFiring bool

	// resize refreshes the terminal and returns the new projection
	resize func() render.Projection
}

func newHost(proj render.Projection, clock *engine.PausableClock, demo bool) *host {
	h := &host{
		proj:    proj,
		clock:   clock,
		manual:  &perception.Manual{},
		demo:    perception.DemoScript(clock),
		useDemo: demo,
	}
	h.manual.Move(0.5, 0.45)
	return h
}

// source returns the active perception source
func (h *host) source() perception.Source {
	if h.useDemo {
		return h.demo
	}
	return h.manual
}

// handleEvent applies one terminal event, false means quit
func (h *host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		x, y := ev.Position()
		if y < h.proj.Rows {
			p := h.proj.Sensor(x, y)
			h.manual.Move(p.X, p.Y)
		}
		h.mouseFiring = ev.Buttons()&tcell.Button1 != 0
		h.syncFiring()

	case *tcell.EventResize:
		if h.resize != nil {
			h.proj = h.resize()
		}
		log.Debug("terminal resized", "cols", h.proj.Cols, "rows", h.proj.Rows)
	}
	return true
}

func (h *host) handleKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		h.spaceFiring = !h.spaceFiring
		h.syncFiring()
	case 'p':
		paused := h.clock.Toggle()
		log.Info("pause toggled", "paused", paused)
	case 'd':
		h.useDemo = !h.useDemo
		log.Info("input source switched", "demo", h.useDemo)
	case 'h':
		h.manual.Hide()
	}
	return true
}

func (h *host) syncFiring() {
	h.manual.SetFiring(h.spaceFiring || h.mouseFiring)
}

func (h *host) status(muted bool) render.Status {
	return render.Status{
		Demo:   h.useDemo,
		Paused: h.clock.IsPaused(),
		Muted:  muted,
	}
}
