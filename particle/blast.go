package particle

import (
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// Blast is the one-shot expanding disc shown on impact
type Blast struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Opacity   float64
}

func NewBlast(x, y float64) *Blast {
	return &Blast{
		X:         x,
		Y:         y,
		MaxRadius: constant.BlastMaxRadius,
		Opacity:   1,
	}
}

func (b *Blast) Kind() Kind { return KindBlast }

// Destroyed reports the terminal condition: faded out or fully expanded
func (b *Blast) Destroyed() bool {
	return faded(b.Opacity) || b.Radius >= b.MaxRadius
}

func (b *Blast) Step(_ *vmath.FastRand) {
	b.Radius += constant.BlastRadiusStep
	b.Opacity -= constant.BlastFade
}

func (b *Blast) Draw(c Canvas, _ *vmath.FastRand) {
	if faded(b.Opacity) {
		return
	}
	c.FillCircle(b.X, b.Y, b.Radius, RGBA{R: 255, G: 100, B: 0, A: vmath.Clamp01(b.Opacity)})
}
