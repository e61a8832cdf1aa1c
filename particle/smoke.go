package particle

import (
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// Smoke is a small gray puff left behind by some trails
type Smoke struct {
	X, Y      float64
	Opacity   float64
	Radius    float64
	destroyed bool
}

func (s *Smoke) reset(x, y float64) {
	*s = Smoke{X: x, Y: y, Opacity: constant.SmokeOpacity, Radius: constant.SmokeRadius}
}

func (s *Smoke) Kind() Kind { return KindSmoke }

func (s *Smoke) Destroyed() bool { return s.destroyed }

func (s *Smoke) Step(rng *vmath.FastRand) {
	s.Y -= rng.Range(0, constant.SmokeRiseMax)
	s.X += rng.Range(-constant.SmokeDrift, constant.SmokeDrift)
	s.Opacity -= constant.SmokeFade
	if faded(s.Opacity) {
		s.destroyed = true
	}
}

func (s *Smoke) Draw(c Canvas, _ *vmath.FastRand) {
	if faded(s.Opacity) {
		return
	}
	gray := uint8(constant.SmokeGray)
	c.FillCircle(s.X, s.Y, s.Radius, RGBA{R: gray, G: gray, B: gray, A: s.Opacity})
}
