package render

import (
	"math"
	"unicode/utf8"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/particle"
)

// CellCanvas rasterizes field-pixel particle draws into a region of a RenderBuffer
// Fills accumulate additively into cell backgrounds; text writes foreground glyphs
type CellCanvas struct {
	buf          *RenderBuffer
	originX      int
	originY      int
	cols, rows   int
	cellW, cellH float64
}

// NewCellCanvas maps a cols x rows region at (originX, originY) with cellW x cellH pixel cells
func NewCellCanvas(buf *RenderBuffer, originX, originY, cols, rows int, cellW, cellH float64) *CellCanvas {
	if cellW <= 0 {
		cellW = constant.DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = constant.DefaultCellHeight
	}
	return &CellCanvas{
		buf:     buf,
		originX: originX,
		originY: originY,
		cols:    cols,
		rows:    rows,
		cellW:   cellW,
		cellH:   cellH,
	}
}

// Layout moves and resizes the canvas region
func (c *CellCanvas) Layout(originX, originY, cols, rows int) {
	c.originX, c.originY = originX, originY
	c.cols, c.rows = cols, rows
}

// FieldSize returns the region size in field pixels
func (c *CellCanvas) FieldSize() (float64, float64) {
	return float64(c.cols) * c.cellW, float64(c.rows) * c.cellH
}

// CellAt converts a field pixel to region cell coordinates
func (c *CellCanvas) CellAt(x, y float64) (int, int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

// Clear tints the region with the buffer background
func (c *CellCanvas) Clear() {
	bg := c.buf.Background()
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			c.buf.SetBgOnly(c.originX+col, c.originY+row, bg, constant.MaskField)
		}
	}
}

// FillCircle adds a solid disc
func (c *CellCanvas) FillCircle(x, y, r float64, col particle.RGBA) {
	src := FromRGBA(col)
	c.raster(x, y, r, func(float64) (RGB, float64) { return src, col.A })
}

// FillRadial adds a disc whose color runs from inner at the center to outer at the rim
func (c *CellCanvas) FillRadial(x, y, r float64, inner, outer particle.RGBA) {
	c.raster(x, y, r, func(t float64) (RGB, float64) {
		m := particle.Mix(inner, outer, t)
		return FromRGBA(m), m.A
	})
}

// Text writes s centered on x with its baseline in the cell row containing y
func (c *CellCanvas) Text(x, y float64, s string, col particle.RGBA) {
	if col.A <= 0 || s == "" {
		return
	}
	cx, cy := c.CellAt(x, y)
	start := cx - utf8.RuneCountInString(s)/2
	fg := FromRGBA(col)
	for _, r := range s {
		if c.contains(start, cy) {
			gx, gy := c.originX+start, c.originY+cy
			bg := c.buf.Get(gx, gy).Bg
			c.buf.SetFgOnly(gx, gy, r, Blend(bg, fg, col.A), 0, constant.MaskField)
		}
		start++
	}
}

func (c *CellCanvas) contains(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// raster samples each cell center inside the disc; shade maps normalized distance to color and alpha
// A disc smaller than a cell still lights its own cell, weighted by covered area
func (c *CellCanvas) raster(x, y, r float64, shade func(t float64) (RGB, float64)) {
	if r <= 0 {
		return
	}
	minCol, minRow := c.CellAt(x-r, y-r)
	maxCol, maxRow := c.CellAt(x+r, y+r)
	ownCol, ownRow := c.CellAt(x, y)
	cellArea := c.cellW * c.cellH

	for row := max(minRow, 0); row <= min(maxRow, c.rows-1); row++ {
		cyPx := (float64(row) + 0.5) * c.cellH
		for col := max(minCol, 0); col <= min(maxCol, c.cols-1); col++ {
			cxPx := (float64(col) + 0.5) * c.cellW
			d := math.Hypot(cxPx-x, cyPx-y)

			weight := 1.0
			t := d / r
			if t > 1 {
				if col != ownCol || row != ownRow {
					continue
				}
				weight = min(1, math.Pi*r*r/cellArea)
				t = 0
			}

			src, alpha := shade(t)
			if alpha <= 0 {
				continue
			}
			c.buf.Set(c.originX+col, c.originY+row, 0, src, src, BlendAddBg, alpha*weight, constant.MaskField)
		}
	}
}
