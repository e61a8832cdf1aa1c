package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mathfall/constant"
)

// RenderBuffer is a cell compositor with dirty tracking, flushed to a tcell screen once per frame
type RenderBuffer struct {
	cells   []Cell
	touched []bool
	width   int
	height  int
	bg      RGB
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{bg: DefaultBgRGB}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions in cells
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
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

// SetBackground changes the color untouched cells flush with
func (b *RenderBuffer) SetBackground(bg RGB) {
	b.bg = bg
}

// Background returns the default background color
func (b *RenderBuffer) Background() RGB {
	return b.bg
}

// Clear resets all cells to empty using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Fg: b.bg, Bg: b.bg}
	b.touched[0] = false
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	for filled := 1; filled < len(b.touched); filled *= 2 {
		copy(b.touched[filled:], b.touched[:filled])
	}
}

// inBounds returns true if in screen bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y; out of bounds yields a zero cell
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// ===== COMPOSITOR API =====

// Set composites a cell with specified blend mode
func (b *RenderBuffer) Set(x, y int, mainRune rune, fg, bg RGB, mode BlendMode, alpha float64, mask uint8) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	dst := &b.cells[idx]
	flags := uint8(mode) & 0xF0

	if mainRune != 0 {
		dst.Rune = mainRune
		dst.Attrs = tcell.AttrNone
	}

	if flags&flagBg != 0 {
		if !b.touched[idx] {
			dst.Bg = b.bg
		}
		dst.Bg = mode.apply(dst.Bg, bg, alpha)
		b.touched[idx] = true
	}

	if flags&flagFg != 0 {
		dst.Fg = mode.apply(dst.Fg, fg, alpha)
	}
	dst.Mask |= mask
}

// SetFgOnly writes rune, foreground, and attrs while preserving existing background
func (b *RenderBuffer) SetFgOnly(x, y int, r rune, fg RGB, attrs tcell.AttrMask, mask uint8) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = attrs
	dst.Mask |= mask
}

// SetBgOnly updates the background color while preserving existing rune/foreground
func (b *RenderBuffer) SetBgOnly(x, y int, bg RGB, mask uint8) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx].Bg = bg
	b.cells[idx].Mask |= mask
	b.touched[idx] = true
}

// SetWithBg writes a cell with explicit fg and bg colors (opaque replace)
func (b *RenderBuffer) SetWithBg(x, y int, r rune, fg, bg RGB, mask uint8) {
	if !b.inBounds(x, y) {
		return
	}
	idx := y*b.width + x
	b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg, Mask: mask}
	b.touched[idx] = true
}

// DrawString writes s left to right from x, clipped to the buffer
func (b *RenderBuffer) DrawString(x, y int, s string, fg, bg RGB, mask uint8) int {
	for _, r := range s {
		b.SetWithBg(x, y, r, fg, bg, mask)
		x++
	}
	return x
}

// DrawStringFg writes s over the existing background
func (b *RenderBuffer) DrawStringFg(x, y int, s string, fg RGB, mask uint8) int {
	for _, r := range s {
		b.SetFgOnly(x, y, r, fg, tcell.AttrNone, mask)
		x++
	}
	return x
}

// ===== POST-PROCESS =====

// Grayout desaturates every cell carrying any bit of mask, blended by amount
func (b *RenderBuffer) Grayout(amount float64, mask uint8) {
	for i := range b.cells {
		c := &b.cells[i]
		if c.Mask&mask == 0 {
			continue
		}
		if !b.touched[i] {
			c.Bg = b.bg
			b.touched[i] = true
		}
		c.Bg = Blend(c.Bg, Grayscale(c.Bg), amount)
		c.Fg = Blend(c.Fg, Grayscale(c.Fg), amount)
	}
}

// DimOccluded darkens the background behind glyphs in masked cells
func (b *RenderBuffer) DimOccluded() {
	for i := range b.cells {
		c := &b.cells[i]
		if c.Rune == 0 || c.Rune == ' ' || c.Mask&constant.OcclusionDimMask == 0 || !b.touched[i] {
			continue
		}
		c.Bg = Scale(c.Bg, constant.OcclusionDimFactor)
	}
}

// ===== OUTPUT =====

// finalize sets default background to untouched cells before Flush
func (b *RenderBuffer) finalize() {
	for i := range b.cells {
		if !b.touched[i] {
			b.cells[i].Bg = b.bg
		}
	}
}

// FlushToScreen writes the buffer to a tcell screen; Show is left to the caller
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	b.finalize()
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			c := &row[x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(c.Fg.TCell()).
				Background(c.Bg.TCell()).
				Attributes(c.Attrs)
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
