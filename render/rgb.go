package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/mathfall/particle"
)

// RGB is a packed 24-bit color used by the cell buffer
type RGB struct {
	R, G, B uint8
}

// FromRGBA drops the alpha of a particle color
func FromRGBA(c particle.RGBA) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// TCell converts to a tcell true color
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// AddScaled adds src weighted by factor, the accumulation step of the lighter composite
func AddScaled(c, src RGB, factor float64) RGB {
	if factor <= 0 {
		return c
	}
	return RGB{
		R: clamp(float64(c.R) + float64(src.R)*factor),
		G: clamp(float64(c.G) + float64(src.G)*factor),
		B: clamp(float64(c.B) + float64(src.B)*factor),
	}
}

// Scale multiplies all channels by factor (0.0-1.0)
func Scale(c RGB, factor float64) RGB {
	// Clamp to not wrap on factor > 1.0
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Grayscale converts RGB to grayscale using Rec. 601 luma coefficients
// Integer math: (R*299 + G*587 + B*114) / 1000
func Grayscale(c RGB) RGB {
	gray := uint8((int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000)
	return RGB{R: gray, G: gray, B: gray}
}
