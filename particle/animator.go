package particle

import (
	"time"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// Phase is the animator lifecycle stage
type Phase uint8

const (
	PhaseFlaming Phase = iota
	PhaseBlasting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseFlaming:
		return "flaming"
	case PhaseBlasting:
		return "blasting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// ScheduleFunc arms a periodic callback and returns its cancel function
type ScheduleFunc func(period time.Duration, fn func()) (cancel func())

// Animator renders the fireball attached to one equation
// Flaming until the followed position crosses threshold, then a single blast
// Coordinates of owned particles are local to the anchor
type Animator struct {
	anchorX, anchorY float64
	label            string
	labelColor       RGBA
	threshold        float64

	phase Phase
	flame *Flame
	blast *Blast

	entities  []Entity
	trailPool []*Trail
	smokePool []*Smoke

	rng        *vmath.FastRand
	onComplete func()
	cancel     func()
	ticks      uint64
}

// NewAnimator creates a flaming animator anchored at the equation position
func NewAnimator(x, y float64, label string, threshold float64, rng *vmath.FastRand) *Animator {
	if rng == nil {
		rng = vmath.NewTimeSeededRand()
	}
	a := &Animator{
		anchorX:    x,
		anchorY:    y,
		label:      label,
		labelColor: RGBA{R: 255, G: 255, B: 255, A: 1},
		threshold:  threshold,
		rng:        rng,
		entities:   make([]Entity, 0, 256),
	}
	a.flame = NewFlame(0, constant.FlameOffsetY, a.emitTrail)
	return a
}

// OnComplete registers the callback fired once when the blast finishes
func (a *Animator) OnComplete(fn func()) {
	a.onComplete = fn
}

// SetLabelColor changes the equation text color (match highlight)
func (a *Animator) SetLabelColor(c RGBA) {
	a.labelColor = c
}

// Start arms the animator tick on the owner's scheduler
func (a *Animator) Start(schedule ScheduleFunc) {
	if a.cancel != nil || a.phase == PhaseDone {
		return
	}
	a.cancel = schedule(constant.AnimatorInterval, a.Tick)
}

// Stop cancels the tick; safe to call repeatedly
func (a *Animator) Stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// Follow moves the anchor; crossing the threshold triggers the blast once
func (a *Animator) Follow(x, y float64) {
	if a.phase != PhaseFlaming {
		return
	}
	a.anchorX = x
	a.anchorY = y
	if y >= a.threshold {
		a.Trigger()
	}
}

// Trigger replaces the flame with the blast; no-op outside the flaming phase
func (a *Animator) Trigger() {
	if a.phase != PhaseFlaming {
		return
	}
	a.phase = PhaseBlasting
	a.blast = NewBlast(0, constant.FlameOffsetY+constant.BlastOffsetY)
	a.releaseEntities()
}

// Tick advances one simulation step
func (a *Animator) Tick() {
	a.ticks++

	switch a.phase {
	case PhaseFlaming:
		a.flame.Step(a.rng)
		a.stepEntities()

	case PhaseBlasting:
		a.blast.Step(a.rng)
		if a.blast.Destroyed() {
			a.finish()
		}

	case PhaseDone:
		// Late tick between completion and teardown
	}
}

// Draw renders the current state onto c
func (a *Animator) Draw(c Canvas) {
	local := offsetCanvas{Canvas: c, dx: a.anchorX, dy: a.anchorY}

	switch a.phase {
	case PhaseFlaming:
		a.flame.Draw(local, a.rng)
		for _, e := range a.entities {
			e.Draw(local, a.rng)
		}
		local.Text(0, constant.FlameOffsetY+constant.FlameLabelOffsetY, a.label, a.labelColor)

	case PhaseBlasting:
		a.blast.Draw(local, a.rng)
	}
}

func (a *Animator) Phase() Phase { return a.phase }

func (a *Animator) Done() bool { return a.phase == PhaseDone }

// ParticleCount returns live trail and smoke particles
func (a *Animator) ParticleCount() int { return len(a.entities) }

func (a *Animator) Ticks() uint64 { return a.ticks }

func (a *Animator) Anchor() (float64, float64) { return a.anchorX, a.anchorY }

func (a *Animator) finish() {
	a.phase = PhaseDone
	a.Stop()
	if fn := a.onComplete; fn != nil {
		a.onComplete = nil
		fn()
	}
}

// stepEntities steps every live particle and compacts destroyed ones in place
// A destroyed trail may leave smoke, appended after the pass
func (a *Animator) stepEntities() {
	live := a.entities[:0]
	var spawned []*Smoke

	for _, e := range a.entities {
		e.Step(a.rng)
		if !e.Destroyed() {
			live = append(live, e)
			continue
		}

		switch p := e.(type) {
		case *Trail:
			if a.rng.Chance(constant.TrailSmokeChance) {
				spawned = append(spawned, a.newSmoke(p.smokeOrigin()))
			}
			a.trailPool = append(a.trailPool, p)
		case *Smoke:
			a.smokePool = append(a.smokePool, p)
		}
	}

	// Clear dropped tail so pooled pointers are not retained twice
	for i := len(live); i < len(a.entities); i++ {
		a.entities[i] = nil
	}
	a.entities = live
	for _, s := range spawned {
		a.entities = append(a.entities, s)
	}
}

func (a *Animator) emitTrail(x, y float64) {
	var t *Trail
	if n := len(a.trailPool); n > 0 {
		t = a.trailPool[n-1]
		a.trailPool = a.trailPool[:n-1]
	} else {
		t = new(Trail)
	}
	t.reset(x, y)
	a.entities = append(a.entities, t)
}

func (a *Animator) newSmoke(x, y float64) *Smoke {
	var s *Smoke
	if n := len(a.smokePool); n > 0 {
		s = a.smokePool[n-1]
		a.smokePool = a.smokePool[:n-1]
	} else {
		s = new(Smoke)
	}
	s.reset(x, y)
	return s
}

func (a *Animator) releaseEntities() {
	for i, e := range a.entities {
		switch p := e.(type) {
		case *Trail:
			a.trailPool = append(a.trailPool, p)
		case *Smoke:
			a.smokePool = append(a.smokePool, p)
		}
		a.entities[i] = nil
	}
	a.entities = a.entities[:0]
}

// SetThreshold moves the proximity line after a layout change
func (a *Animator) SetThreshold(y float64) {
	a.threshold = y
}
