package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/eyebeam/core"
)

// Background is the color of cells no effect touched
var Background = core.RGB{R: 10, G: 10, B: 16}

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

// Buffer is a compositor over a cell array with dirty tracking
type Buffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.touched = make([]bool, size)
	} else {
		b.cells = b.cells[:size]
		b.touched = b.touched[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: Background, Bg: Background}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// inBounds returns true if in screen bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y)
func (b *Buffer) Get(x, y int) (Cell, bool) {
	if !b.inBounds(x, y) {
		return Cell{}, false
	}
	return b.cells[y*b.width+x], true
}

// Set composites a cell with specified blend mode, a zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg, bg core.RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]

	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
	}
	if flags&flagBg != 0 {
		dst.Bg = blend(dst.Bg, bg, op, alpha)
		b.touched[idx] = true
	}
	if flags&flagFg != 0 {
		dst.Fg = blend(dst.Fg, fg, op, alpha)
	}
}

func blend(dst, src core.RGB, op uint8, alpha float64) core.RGB {
	switch op {
	case opAlpha:
		return dst.Blend(src, alpha)
	case opAdd:
		return dst.Add(src)
	case opMax:
		return dst.Max(src)
	case opScreen:
		return dst.Screen(src)
	default:
		return src
	}
}

// Text writes s left to right from (x, y) with opaque background, clipped at the edge
func (b *Buffer) Text(x, y int, s string, fg, bg core.RGB) int {
	for _, r := range s {
		b.Set(x, y, r, fg, bg, BlendReplace, 1)
		x++
	}
	return x
}

// Flush writes the buffer to the screen, untouched cells get the default background
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			idx := y*b.width + x
			c := b.cells[idx]
			if !b.touched[idx] {
				c.Bg = Background
			}
			style := tcell.StyleDefault.Foreground(toColor(c.Fg)).Background(toColor(c.Bg))
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}

func toColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
