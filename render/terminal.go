// Package render draws effect frames to a tcell terminal
package render

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyebeam/effect"
	"github.com/lixenwraith/eyebeam/perception"
)

// Terminal owns the tcell screen and composites frames into it
type Terminal struct {
	screen tcell.Screen
	buf    *Buffer
	proj   Projection
}

// NewTerminal opens the controlling terminal
// colorMode "256" disables truecolor so tcell downsamples to the palette
func NewTerminal(colorMode string) (*Terminal, error) {
	if colorMode == "256" {
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Attach(screen)
}

// Attach initializes an existing screen, tests pass a simulation screen
func Attach(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{screen: screen, buf: NewBuffer(0, 0)}
	t.Resize()
	return t, nil
}

// Resize syncs buffer and projection with the screen size, the bottom row is reserved for status
func (t *Terminal) Resize() {
	w, h := t.screen.Size()
	t.buf.Resize(w, h)
	t.proj = Projection{Cols: w, Rows: max(h-1, 0)}
	t.screen.Sync()
}

// Viewport is the render-space size of the drawable area
func (t *Terminal) Viewport() perception.Viewport {
	return t.proj.Viewport()
}

func (t *Terminal) Projection() Projection {
	return t.proj
}

// Draw composites and shows one frame
func (t *Terminal) Draw(f *effect.Frame, st Status) {
	Compose(t.buf, t.proj, f, st)
	t.buf.Flush(t.screen)
	t.screen.Show()
}

func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Fini restores the terminal, satisfies core.Finisher
func (t *Terminal) Fini() {
	t.screen.Fini()
}
