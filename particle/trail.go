package particle

import (
	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// Trail is a fading ember emitted by the flame
// Green channel cools with opacity, shifting from yellow to red
type Trail struct {
	X, Y      float64
	Opacity   float64
	Radius    float64
	destroyed bool
}

func (t *Trail) reset(x, y float64) {
	*t = Trail{X: x, Y: y, Opacity: 1, Radius: constant.TrailRadius}
}

func (t *Trail) Kind() Kind { return KindTrail }

func (t *Trail) Destroyed() bool { return t.destroyed }

func (t *Trail) Step(rng *vmath.FastRand) {
	t.Y -= rng.Range(0, constant.TrailRiseMax)
	t.X -= rng.Range(-constant.TrailDrift, constant.TrailDrift)
	t.Opacity -= constant.TrailFade
	if faded(t.Opacity) {
		t.destroyed = true
	}
}

func (t *Trail) Draw(c Canvas, rng *vmath.FastRand) {
	if faded(t.Opacity) {
		return
	}
	core := t.color()
	edge := core
	edge.A = 0

	glow := t.Radius*constant.TrailGlowScale + rng.Range(0, constant.TrailGlowJitter)
	c.FillRadial(t.X, t.Y, glow, core, edge)
	c.FillCircle(t.X, t.Y, t.Radius*t.Opacity, core)
}

func (t *Trail) color() RGBA {
	return RGBA{R: 255, G: uint8(constant.TrailGreenMax * vmath.Clamp01(t.Opacity)), B: 0, A: t.Opacity}
}

// smokeOrigin is where a destroyed trail leaves its smoke
func (t *Trail) smokeOrigin() (float64, float64) {
	return t.X, t.Y - constant.TrailSmokeLiftMul*t.Radius
}
