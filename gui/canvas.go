// Package gui is the windowed ebiten frontend
package gui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/mathfall/particle"
)

// Fan tessellation bounds for discs
const (
	minFanSegments = 12
	maxFanSegments = 64
)

// Canvas draws particles onto an ebiten image with lighter (additive) blending
// Coordinates are field pixels offset by the origin
type Canvas struct {
	dst    *ebiten.Image
	white  *ebiten.Image
	face   font.Face
	bg     color.NRGBA
	ox, oy float64

	vs []ebiten.Vertex
	is []uint16
}

// NewCanvas creates a canvas; images are allocated here, so call it once the game is set up
func NewCanvas() *Canvas {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &Canvas{
		white: img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		face:  basicfont.Face7x13,
		bg:    color.NRGBA{A: 255},
	}
}

// Target sets the image drawn on, the field origin within it and the clear color
func (c *Canvas) Target(dst *ebiten.Image, ox, oy float64, bg color.NRGBA) {
	c.dst = dst
	c.ox, c.oy = ox, oy
	c.bg = bg
}

// Clear fills the field with the background color
func (c *Canvas) Clear() {
	if c.dst != nil {
		c.dst.Fill(c.bg)
	}
}

// FillCircle adds a solid disc
func (c *Canvas) FillCircle(x, y, r float64, col particle.RGBA) {
	c.fan(x, y, r, col, col)
}

// FillRadial adds a disc shaded from inner at the center to outer at the rim
func (c *Canvas) FillRadial(x, y, r float64, inner, outer particle.RGBA) {
	c.fan(x, y, r, inner, outer)
}

// Text draws s centered on x with its baseline at y
func (c *Canvas) Text(x, y float64, s string, col particle.RGBA) {
	if c.dst == nil || col.A <= 0 {
		return
	}
	w := font.MeasureString(c.face, s).Ceil()
	text.Draw(c.dst, s, c.face, int(x+c.ox)-w/2, int(y+c.oy), toNRGBA(col))
}

func (c *Canvas) fan(x, y, r float64, inner, outer particle.RGBA) {
	if c.dst == nil || r <= 0 || (inner.A <= 0 && outer.A <= 0) {
		return
	}
	c.vs, c.is = appendFan(c.vs[:0], c.is[:0], x+c.ox, y+c.oy, r, inner, outer)
	c.dst.DrawTriangles(c.vs, c.is, c.white, &ebiten.DrawTrianglesOptions{
		Blend:     ebiten.BlendLighter,
		AntiAlias: true,
	})
}

// fanSegments picks the rim resolution for radius r
func fanSegments(r float64) int {
	return min(max(int(r), minFanSegments), maxFanSegments)
}

// appendFan tessellates a disc as a triangle fan
// The center vertex carries inner and the rim vertices carry outer, so the GPU interpolates the gradient
func appendFan(vs []ebiten.Vertex, is []uint16, x, y, r float64, inner, outer particle.RGBA) ([]ebiten.Vertex, []uint16) {
	n := fanSegments(r)
	base := uint16(len(vs))

	vs = append(vs, vertex(x, y, inner))
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		vs = append(vs, vertex(x+r*math.Cos(a), y+r*math.Sin(a), outer))
	}
	for i := 1; i <= n; i++ {
		is = append(is, base, base+uint16(i), base+uint16(i+1))
	}
	return vs, is
}

// vertex builds a straight-alpha colored vertex sampling the white source pixel
func vertex(x, y float64, c particle.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(clamp01(c.A)),
	}
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// toNRGBA converts a particle color to a non-premultiplied image color
func toNRGBA(c particle.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A)*255 + 0.5)}
}

var _ particle.Canvas = (*Canvas)(nil)
