package particle

import (
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

var (
	flameCore     = RGBA{R: 255, G: 255, B: 255, A: 1}
	flameCoreEdge = RGBA{R: 255, G: 220, B: 0, A: 0}
	flameGlow     = RGBA{R: 255, G: 180, B: 0}
)

// Flame is the persistent emitter at the head of a falling equation
// It never expires; each step emits trails at its base through emit
type Flame struct {
	X, Y   float64
	Radius float64
	Glow   float64
	emit   func(x, y float64)
}

func NewFlame(x, y float64, emit func(x, y float64)) *Flame {
	return &Flame{
		X:      x,
		Y:      y,
		Radius: constant.FlameRadius,
		Glow:   constant.FlameGlowRadius,
		emit:   emit,
	}
}

func (f *Flame) Kind() Kind { return KindFlame }

func (f *Flame) Destroyed() bool { return false }

func (f *Flame) Step(_ *vmath.FastRand) {
	if f.emit == nil {
		return
	}
	for i := 0; i < constant.FlameTrailsPerTick; i++ {
		f.emit(f.X, f.Y-f.Radius/3)
	}
}

func (f *Flame) Draw(c Canvas, rng *vmath.FastRand) {
	glow := flameGlow
	glow.A = rng.Range(constant.FlameGlowAlphaMin, constant.FlameGlowAlphaMax)
	glowEdge := flameGlow
	glowEdge.A = 0
	c.FillRadial(f.X, f.Y, f.Glow, glow, glowEdge)

	// Core gradient spans 1.5r but the disc is clipped at r
	edge := Mix(flameCore, flameCoreEdge, 1/constant.FlameCoreSpread)
	jx := rng.Range(-constant.FlameJitter, constant.FlameJitter)
	jy := rng.Range(-constant.FlameJitter, constant.FlameJitter)
	c.FillRadial(f.X+jx, f.Y+jy, f.Radius, flameCore, edge)
}
