package particle

import (
	"testing"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// recordCanvas counts draw calls by primitive
type recordCanvas struct {
	clears  int
	circles []RGBA
	radials int
	texts   []string
}

func (r *recordCanvas) Clear()                                  { r.clears++ }
func (r *recordCanvas) FillCircle(x, y, rad float64, c RGBA)    { r.circles = append(r.circles, c) }
func (r *recordCanvas) FillRadial(x, y, rad float64, a, b RGBA) { r.radials++ }
func (r *recordCanvas) Text(x, y float64, s string, c RGBA)     { r.texts = append(r.texts, s) }

func TestTrailLifetime(t *testing.T) {
	rng := vmath.NewFastRand(1)
	tr := &Trail{}
	tr.reset(10, 10)

	for i := 1; i < 20; i++ {
		tr.Step(rng)
		if tr.Destroyed() {
			t.Fatalf("trail destroyed early at step %d (opacity %f)", i, tr.Opacity)
		}
	}
	tr.Step(rng)
	if !tr.Destroyed() {
		t.Fatalf("trail should be destroyed after 20 steps, opacity %f", tr.Opacity)
	}
}

func TestTrailDriftsUpward(t *testing.T) {
	rng := vmath.NewFastRand(5)
	tr := &Trail{}
	tr.reset(0, 0)
	for i := 0; i < 10; i++ {
		prevY := tr.Y
		prevX := tr.X
		tr.Step(rng)
		if tr.Y > prevY {
			t.Fatalf("trail moved down: %f -> %f", prevY, tr.Y)
		}
		if d := tr.X - prevX; d < -3 || d > 3 {
			t.Fatalf("trail drift %f outside ±3", d)
		}
	}
}

func TestTrailColorCools(t *testing.T) {
	tr := &Trail{}
	tr.reset(0, 0)
	hot := tr.color()
	tr.Opacity = 0.25
	cool := tr.color()
	if hot.G != 240 || cool.G != 60 {
		t.Errorf("green channel should follow opacity, got %d and %d", hot.G, cool.G)
	}
	if hot.R != 255 || cool.B != 0 {
		t.Error("trail stays in the red-yellow range")
	}
}

func TestSmokeLifetime(t *testing.T) {
	rng := vmath.NewFastRand(2)
	s := &Smoke{}
	s.reset(0, 0)

	steps := 0
	for !s.Destroyed() {
		s.Step(rng)
		steps++
		if steps > 100 {
			t.Fatal("smoke never destroyed")
		}
	}
	if steps != 54 {
		t.Errorf("smoke lived %d steps, want 54", steps)
	}
}

func TestFadedParticlesDrawNothing(t *testing.T) {
	rng := vmath.NewFastRand(3)
	c := &recordCanvas{}

	(&Smoke{Opacity: 0}).Draw(c, rng)
	(&Trail{Opacity: -0.01}).Draw(c, rng)
	(&Blast{Opacity: 0}).Draw(c, rng)

	if len(c.circles) != 0 || c.radials != 0 {
		t.Error("faded particles must not draw")
	}
}

func TestFadedOnlyAtZero(t *testing.T) {
	tests := []struct {
		opacity float64
		want    bool
	}{
		{1, false},
		{1e-12, false},
		{0, true},
		{-3.19e-16, true},
		{-0.01, true},
	}
	for _, tt := range tests {
		if got := faded(tt.opacity); got != tt.want {
			t.Errorf("faded(%g) = %v, want %v", tt.opacity, got, tt.want)
		}
	}

	rng := vmath.NewFastRand(6)
	tr := &Trail{Opacity: constant.TrailFade + 1e-12}
	tr.Step(rng)
	if tr.Destroyed() {
		t.Errorf("trail with opacity %g left must stay alive", tr.Opacity)
	}
	sm := &Smoke{Opacity: constant.SmokeFade + 1e-12}
	sm.Step(rng)
	if sm.Destroyed() {
		t.Errorf("smoke with opacity %g left must stay alive", sm.Opacity)
	}
	if (&Blast{Opacity: 1e-12, MaxRadius: 50}).Destroyed() {
		t.Error("blast with opacity left must stay alive")
	}
}

func TestBlastTerminalCondition(t *testing.T) {
	rng := vmath.NewFastRand(4)
	b := NewBlast(0, 0)
	for i := 1; i < 20; i++ {
		b.Step(rng)
		if b.Destroyed() {
			t.Fatalf("blast finished early at step %d", i)
		}
	}
	b.Step(rng)
	if !b.Destroyed() {
		t.Fatalf("blast should finish after 20 steps (opacity %f radius %f)", b.Opacity, b.Radius)
	}

	grown := &Blast{Radius: 50, MaxRadius: 50, Opacity: 0.9}
	if !grown.Destroyed() {
		t.Error("blast at max radius must be finished")
	}
}

func TestFlameEmitsPerStep(t *testing.T) {
	emitted := 0
	f := NewFlame(0, 0, func(x, y float64) { emitted++ })
	f.Step(vmath.NewFastRand(1))
	if emitted != 9 {
		t.Errorf("flame emitted %d trails, want 9", emitted)
	}
	if f.Destroyed() {
		t.Error("flame never expires")
	}
}

func TestKindTags(t *testing.T) {
	entities := []Entity{&Smoke{}, &Trail{}, NewFlame(0, 0, nil), NewBlast(0, 0)}
	want := []Kind{KindSmoke, KindTrail, KindFlame, KindBlast}
	for i, e := range entities {
		if e.Kind() != want[i] {
			t.Errorf("entity %d kind %s, want %s", i, e.Kind(), want[i])
		}
	}
}

func TestMix(t *testing.T) {
	a := RGBA{R: 0, G: 100, B: 200, A: 1}
	b := RGBA{R: 100, G: 100, B: 0, A: 0}
	m := Mix(a, b, 0.5)
	if m.R != 50 || m.G != 100 || m.B != 100 || m.A != 0.5 {
		t.Errorf("Mix midpoint = %+v", m)
	}
}
