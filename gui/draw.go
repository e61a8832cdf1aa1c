package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/render"
)

const (
	gaugeWidth  = 90
	gaugeHeight = 8
	lineHeight  = 18
)

var face font.Face = basicfont.Face7x13

func rgb(c render.RGB) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func background(name string) color.NRGBA {
	return rgb(render.BackgroundColor(name))
}

// townRect is one building rectangle in window pixels
type townRect struct {
	x, y, w, h float32
	col        color.NRGBA
}

// townRects lays out the skyline over a w x h strip at (x0, y0)
func townRects(x0, y0, w, h float64, health int) []townRect {
	if w <= 0 || h <= 0 {
		return nil
	}
	ground := h / 8
	span := h - ground
	slot := w / constant.TownBuildings

	rects := []townRect{{float32(x0), float32(y0 + span), float32(w), float32(ground), rgb(render.RgbGround)}}
	for i, b := range render.Skyline(health) {
		left := x0 + float64(i)*slot + 2
		bw := slot - 4
		if !b.Standing {
			rh := span / 12
			rects = append(rects, townRect{float32(left), float32(y0 + span - rh), float32(bw), float32(rh), rgb(render.RgbRubble)})
			continue
		}
		bh := float64(b.Height) * span / 10
		rects = append(rects, townRect{float32(left), float32(y0 + span - bh), float32(bw), float32(bh), rgb(render.RgbBuilding)})
	}
	return rects
}

func drawTown(dst *ebiten.Image, x0, y0, w, h float64, health int) {
	vector.DrawFilledRect(dst, float32(x0), float32(y0), float32(w), float32(h), rgb(render.RgbTownBackground), false)
	for _, r := range townRects(x0, y0, w, h, health) {
		vector.DrawFilledRect(dst, r.x, r.y, r.w, r.h, r.col, false)
	}
}

func drawGauge(dst *ebiten.Image, x, y float32, progress float64) float32 {
	vector.DrawFilledRect(dst, x, y, gaugeWidth, gaugeHeight, rgb(render.RgbGaugeEmpty), false)
	fill := float32(min(max(progress, 0), 1)) * gaugeWidth
	if fill > 0 {
		vector.DrawFilledRect(dst, x, y, fill, gaugeHeight, rgb(render.GaugeColor(progress)), false)
	}
	return x + gaugeWidth + 12
}

// drawLabel draws s at (x, baseline) and returns the x after it
func drawLabel(dst *ebiten.Image, x, baseline int, s string, c render.RGB) int {
	text.Draw(dst, s, face, x, baseline, rgb(c))
	return x + font.MeasureString(face, s).Ceil() + 12
}

func drawHUD(dst *ebiten.Image, snap engine.Snapshot, width float64) {
	vector.DrawFilledRect(dst, 0, 0, float32(width), HUDHeight, rgb(render.RgbHUDBg), false)
	baseline := HUDHeight/2 + 5
	gy := float32(HUDHeight-gaugeHeight) / 2

	x := 8
	x = drawLabel(dst, x, baseline, fmt.Sprintf("Score %d", snap.Score), render.RgbScore)
	x = drawLabel(dst, x, baseline, fmt.Sprintf("Level %d", snap.Level), render.RgbLevel)
	x = drawLabel(dst, x, baseline, render.FormatClock(snap.TimeLeft), render.RgbHUDText)
	x = int(drawGauge(dst, float32(x), gy, render.Fraction(snap.TimeLeft, snap.Duration)))
	if snap.Quota > 0 {
		x = drawLabel(dst, x, baseline, fmt.Sprintf("Q %d/%d", snap.Answered, snap.Quota), render.RgbQuota)
	}
	if snap.Mode == engine.PenaltyDefense {
		x = drawLabel(dst, x, baseline, "Town", render.RgbHUDLabel)
		drawGauge(dst, float32(x), gy, render.Fraction(snap.TownHealth, constant.TownHealthMax))
	}
}

func drawInputBar(dst *ebiten.Image, snap engine.Snapshot, input string, width, height float64) {
	top := height - InputHeight
	vector.DrawFilledRect(dst, 0, float32(top), float32(width), InputHeight, rgb(render.RgbInputBg), false)
	baseline := int(top) + InputHeight/2 + 5

	x := drawLabel(dst, 8, baseline, ">", render.RgbInputPrompt)
	if snap.Status == engine.StatusPlaying {
		drawLabel(dst, x, baseline, input+"_", render.RgbInputText)
		return
	}
	drawLabel(dst, x, baseline, "press Enter to play", render.RgbHUDLabel)
}

// drawOverlay dims the window and centers the status lines
func drawOverlay(dst *ebiten.Image, snap engine.Snapshot, width, height float64) {
	lines := render.OverlayLines(snap)
	if len(lines) == 0 {
		return
	}
	if snap.Status == engine.StatusEnded {
		vector.DrawFilledRect(dst, 0, HUDHeight, float32(width), float32(height-HUDHeight-InputHeight), color.NRGBA{A: 160}, false)
	}

	top := int(height)/2 - len(lines)*lineHeight/2
	for i, line := range lines {
		c := render.RgbOverlayText
		if i == 0 {
			c = render.RgbOverlayTitle
		}
		w := font.MeasureString(face, line).Ceil()
		text.Draw(dst, line, face, int(width)/2-w/2, top+i*lineHeight+lineHeight/2, rgb(c))
	}
}
