package render

import (
	"fmt"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/engine"
)

// FormatClock renders seconds as m:ss
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Fraction returns num/den clamped to [0, 1]; a zero denominator is empty
func Fraction(num, den int) float64 {
	if den <= 0 || num <= 0 {
		return 0
	}
	if num >= den {
		return 1
	}
	return float64(num) / float64(den)
}

// DrawGauge draws a width-cell bar filled to progress, colored by fill level
func DrawGauge(buf *RenderBuffer, x, y, width int, progress float64) int {
	filled := int(progress*float64(width) + 0.5)
	for i := 0; i < width; i++ {
		if i < filled {
			buf.SetWithBg(x+i, y, '█', GaugeColor(float64(i+1)/float64(width)), RgbHUDBg, constant.MaskUI)
		} else {
			buf.SetWithBg(x+i, y, '░', RgbGaugeEmpty, RgbHUDBg, constant.MaskUI)
		}
	}
	return x + width
}

// DrawHUD draws the status row: score, level, timer, quota progress and town health
func DrawHUD(buf *RenderBuffer, y int, snap engine.Snapshot) {
	width, _ := buf.Size()
	for x := 0; x < width; x++ {
		buf.SetWithBg(x, y, ' ', RgbHUDText, RgbHUDBg, constant.MaskUI)
	}

	x := 1
	x = hudField(buf, x, y, "Score ", fmt.Sprintf("%d", snap.Score), RgbScore)
	x = hudField(buf, x, y, "Level ", fmt.Sprintf("%d", snap.Level), RgbLevel)

	x = hudField(buf, x, y, "", FormatClock(snap.TimeLeft), RgbHUDText)
	x = DrawGauge(buf, x, y, constant.HUDBarWidth, Fraction(snap.TimeLeft, snap.Duration))
	x += 2

	if snap.Quota > 0 {
		x = hudField(buf, x, y, "Q ", fmt.Sprintf("%d/%d", snap.Answered, snap.Quota), RgbQuota)
	}

	if snap.Mode == engine.PenaltyDefense {
		health := Fraction(snap.TownHealth, constant.TownHealthMax)
		x = buf.DrawString(x, y, "Town ", RgbHUDLabel, RgbHUDBg, constant.MaskUI)
		x = DrawGauge(buf, x, y, constant.HUDBarWidth, health)
		buf.DrawString(x+1, y, fmt.Sprintf("%3d", snap.TownHealth), GaugeColor(health), RgbHUDBg, constant.MaskUI)
	}
}

// hudField writes a dim label followed by a colored value and returns the next free column
func hudField(buf *RenderBuffer, x, y int, label, value string, color RGB) int {
	x = buf.DrawString(x, y, label, RgbHUDLabel, RgbHUDBg, constant.MaskUI)
	x = buf.DrawString(x, y, value, color, RgbHUDBg, constant.MaskUI)
	return x + 2
}
