package render

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/particle"
)

// Scene is the drawable game state, satisfied by *engine.Session
type Scene interface {
	Snapshot() engine.Snapshot
	Draw(c particle.Canvas)
}

// Layout places the HUD, field, town strip and input line on the screen
type Layout struct {
	Cols, Rows int
	FieldTop   int
	FieldRows  int
	TownRows   int
	InputRow   int
}

// ComputeLayout splits a cols x rows screen; the town strip is the bottom of the field
func ComputeLayout(cols, rows int, cellH float64) Layout {
	fieldRows := max(rows-constant.HUDRows-constant.InputRows, 0)
	townRows := int(math.Round(constant.TownHeight / cellH))
	return Layout{
		Cols:      cols,
		Rows:      rows,
		FieldTop:  constant.HUDRows,
		FieldRows: fieldRows,
		TownRows:  min(townRows, fieldRows),
		InputRow:  rows - constant.InputRows,
	}
}

// Renderer composes full frames into a RenderBuffer
type Renderer struct {
	buf    *RenderBuffer
	canvas *CellCanvas
	layout Layout
	cellW  float64
	cellH  float64
}

// NewRenderer creates a renderer for cellW x cellH pixel cells
func NewRenderer(cellW, cellH float64) *Renderer {
	if cellW <= 0 {
		cellW = constant.DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = constant.DefaultCellHeight
	}
	buf := NewRenderBuffer(0, 0)
	return &Renderer{
		buf:    buf,
		canvas: NewCellCanvas(buf, 0, constant.HUDRows, 0, 0, cellW, cellH),
		cellW:  cellW,
		cellH:  cellH,
	}
}

// Resize lays out a cols x rows screen and returns the field size in pixels
func (r *Renderer) Resize(cols, rows int) (float64, float64) {
	r.layout = ComputeLayout(cols, rows, r.cellH)
	r.buf.Resize(cols, rows)
	r.canvas.Layout(0, r.layout.FieldTop, cols, r.layout.FieldRows)
	return r.canvas.FieldSize()
}

// Layout returns the current screen layout
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Buffer returns the composed frame
func (r *Renderer) Buffer() *RenderBuffer {
	return r.buf
}

// Render composes one frame of scene with the current answer input
func (r *Renderer) Render(scene Scene, input string) {
	snap := scene.Snapshot()
	l := r.layout

	r.buf.SetBackground(BackgroundColor(snap.Background))
	r.buf.Clear()
	r.canvas.Clear()

	if snap.Mode == engine.PenaltyDefense {
		DrawTown(r.buf, 0, l.FieldTop+l.FieldRows-l.TownRows, l.Cols, l.TownRows, snap.TownHealth)
	}
	scene.Draw(r.canvas)
	r.buf.DimOccluded()

	DrawHUD(r.buf, 0, snap)

	switch snap.Status {
	case engine.StatusWaiting:
		r.drawInput("", "[Enter] start  [Esc] quit")
	case engine.StatusPlaying:
		r.drawInput(input, "[Ctrl+E] end game  [Esc] quit")
	case engine.StatusEnded:
		r.buf.Grayout(0.7, constant.GrayoutMask)
		r.drawInput("", "[Enter] play again  [Esc] quit")
	}
	if lines := OverlayLines(snap); lines != nil {
		r.drawOverlay(lines)
	}
}

// OverlayLines returns the title or game over panel for snap, nil while playing
func OverlayLines(snap engine.Snapshot) []string {
	switch snap.Status {
	case engine.StatusWaiting:
		return []string{
			"M A T H F A L L",
			"",
			"Type the answer before the fireballs land",
			"",
			"[Enter] start   [Esc] quit",
		}
	case engine.StatusEnded:
		lines := []string{
			"G A M E   O V E R",
			"",
			fmt.Sprintf("Final score  %d", snap.Score),
			fmt.Sprintf("Level        %d", snap.Level),
		}
		if snap.Mode == engine.PenaltyDefense {
			lines = append(lines, fmt.Sprintf("Town health  %d", snap.TownHealth))
		}
		return append(lines, "", "[Enter] play again   [Esc] quit")
	}
	return nil
}

// Flush writes the frame to the screen and shows it
func (r *Renderer) Flush(screen tcell.Screen) {
	r.buf.FlushToScreen(screen)
	screen.Show()
}

func (r *Renderer) drawInput(input, hint string) {
	y := r.layout.InputRow
	for x := 0; x < r.layout.Cols; x++ {
		r.buf.SetWithBg(x, y, ' ', RgbInputText, RgbInputBg, constant.MaskUI)
	}
	x := r.buf.DrawString(1, y, "> ", RgbInputPrompt, RgbInputBg, constant.MaskUI)
	x = r.buf.DrawString(x, y, input, RgbInputText, RgbInputBg, constant.MaskUI)
	r.buf.SetWithBg(x, y, '_', RgbInputPrompt, RgbInputBg, constant.MaskUI)

	hx := r.layout.Cols - utf8.RuneCountInString(hint) - 1
	if hx > x+2 {
		r.buf.DrawStringFg(hx, y, hint, RgbHUDLabel, constant.MaskUI)
	}
}

// drawOverlay draws a centered box over the field
func (r *Renderer) drawOverlay(lines []string) {
	w := 0
	for _, s := range lines {
		w = max(w, utf8.RuneCountInString(s))
	}
	w += 4
	h := len(lines) + 2

	x0 := (r.layout.Cols - w) / 2
	y0 := r.layout.FieldTop + (r.layout.FieldRows-h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.buf.SetWithBg(x0+x, y0+y, ' ', RgbOverlayText, RgbOverlayBg, constant.MaskUI)
		}
	}
	for i, s := range lines {
		fg := RgbOverlayText
		if i == 0 {
			fg = RgbOverlayTitle
		}
		lx := x0 + (w-utf8.RuneCountInString(s))/2
		r.buf.DrawStringFg(lx, y0+1+i, s, fg, constant.MaskUI)
	}
}
