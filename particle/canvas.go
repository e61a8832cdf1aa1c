package particle

import "github.com/lixenwraith/mathfall/vmath"

// RGBA is a straight-alpha color with alpha in [0, 1]
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Mix linearly interpolates between two colors, t in [0, 1]
func Mix(a, b RGBA, t float64) RGBA {
	lerp8 := func(x, y uint8) uint8 {
		return uint8(vmath.Lerp(float64(x), float64(y), t) + 0.5)
	}
	return RGBA{
		R: lerp8(a.R, b.R),
		G: lerp8(a.G, b.G),
		B: lerp8(a.B, b.B),
		A: vmath.Lerp(a.A, b.A, t),
	}
}

// Canvas is the immediate-mode surface particles draw on, in field pixels
// Implementations composite fills additively
type Canvas interface {
	// Clear resets the whole surface
	Clear()
	// FillCircle fills a solid disc
	FillCircle(x, y, r float64, c RGBA)
	// FillRadial fills a disc with a 2-stop gradient from inner at the center to outer at r
	FillRadial(x, y, r float64, inner, outer RGBA)
	// Text draws a string centered on x with its baseline row at y
	Text(x, y float64, s string, c RGBA)
}

// offsetCanvas translates local particle coordinates to the field
type offsetCanvas struct {
	Canvas
	dx, dy float64
}

func (o offsetCanvas) FillCircle(x, y, r float64, c RGBA) {
	o.Canvas.FillCircle(x+o.dx, y+o.dy, r, c)
}

func (o offsetCanvas) FillRadial(x, y, r float64, inner, outer RGBA) {
	o.Canvas.FillRadial(x+o.dx, y+o.dy, r, inner, outer)
}

func (o offsetCanvas) Text(x, y float64, s string, c RGBA) {
	o.Canvas.Text(x+o.dx, y+o.dy, s, c)
}
