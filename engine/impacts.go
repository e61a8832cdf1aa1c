package engine

import (
	"time"

	"github.com/lixenwraith/mathfall/equation"
	"github.com/lixenwraith/mathfall/particle"
	"github.com/lixenwraith/mathfall/vmath"
)

// Impacts owns one fireball animator per visible equation
// Detonated animators are detached from their equation and finish their blast independently
type Impacts struct {
	scope     *Scope
	rng       *vmath.FastRand
	threshold float64

	byID     map[uint64]*particle.Animator
	tags     map[uint64]particle.RGBA
	order    []uint64
	detached []*particle.Animator

	// at most one label shows the match color
	matched  uint64
	hasMatch bool
}

// NewImpacts creates an empty animator set with the given proximity line
func NewImpacts(threshold float64, rng *vmath.FastRand) *Impacts {
	if rng == nil {
		rng = vmath.NewTimeSeededRand()
	}
	return &Impacts{
		rng:       rng,
		threshold: threshold,
		byID:      make(map[uint64]*particle.Animator),
		tags:      make(map[uint64]particle.RGBA),
	}
}

// Bind attaches the session scope new animators tick on
func (im *Impacts) Bind(scope *Scope) {
	im.scope = scope
}

// SetThreshold moves the proximity line for current and future animators
func (im *Impacts) SetThreshold(y float64) {
	im.threshold = y
	for _, a := range im.byID {
		a.SetThreshold(y)
	}
}

// Sync reconciles animators with the equation set after it changed
// New equations get a flaming animator, vanished ones are stopped, the rest follow their position
func (im *Impacts) Sync(eqs []equation.Equation) {
	seen := make(map[uint64]struct{}, len(eqs))
	im.order = im.order[:0]

	for _, eq := range eqs {
		seen[eq.ID] = struct{}{}
		im.order = append(im.order, eq.ID)

		a, ok := im.byID[eq.ID]
		if !ok {
			a = im.spawn(eq)
			im.byID[eq.ID] = a
			im.tags[eq.ID] = tagColor(eq)
		}
		a.Follow(eq.X, eq.Y)
	}

	for id, a := range im.byID {
		if _, ok := seen[id]; !ok {
			a.Stop()
			im.forget(id)
		}
	}
}

// Highlight recolors the label of a matched equation and restores the previous match's tag color
func (im *Impacts) Highlight(id uint64) {
	a, ok := im.byID[id]
	if !ok {
		return
	}
	if im.hasMatch && im.matched != id {
		if prev, ok := im.byID[im.matched]; ok {
			prev.SetLabelColor(im.tags[im.matched])
		}
	}
	a.SetLabelColor(matchColor())
	im.matched, im.hasMatch = id, true
}

// Detonate blasts the animator of a crossed equation and reports completion once through onDone
// An equation never synced gets a fresh animator that starts blasting immediately
func (im *Impacts) Detonate(eq equation.Equation, onDone func()) {
	a, ok := im.byID[eq.ID]
	if ok {
		im.forget(eq.ID)
		im.removeOrder(eq.ID)
	} else {
		a = im.spawn(eq)
	}

	a.Follow(eq.X, eq.Y)
	a.Trigger()

	if a.Done() {
		if onDone != nil {
			onDone()
		}
		return
	}

	im.detached = append(im.detached, a)
	a.OnComplete(func() {
		im.release(a)
		if onDone != nil {
			onDone()
		}
	})
}

// Reset stops every animator, including detached blasts, without reporting completion
func (im *Impacts) Reset() {
	for id, a := range im.byID {
		a.Stop()
		im.forget(id)
	}
	for i, a := range im.detached {
		a.OnComplete(nil)
		a.Stop()
		im.detached[i] = nil
	}
	im.detached = im.detached[:0]
	im.order = im.order[:0]
}

// Draw renders flaming animators in equation order, then active blasts
func (im *Impacts) Draw(c particle.Canvas) {
	for _, id := range im.order {
		if a, ok := im.byID[id]; ok {
			a.Draw(c)
		}
	}
	for _, a := range im.detached {
		a.Draw(c)
	}
}

// Active returns the number of flaming animators
func (im *Impacts) Active() int {
	return len(im.byID)
}

// Blasting returns the number of detached blasts still running
func (im *Impacts) Blasting() int {
	return len(im.detached)
}

// Animator returns the flaming animator of an equation
func (im *Impacts) Animator(id uint64) (*particle.Animator, bool) {
	a, ok := im.byID[id]
	return a, ok
}

func (im *Impacts) spawn(eq equation.Equation) *particle.Animator {
	a := particle.NewAnimator(eq.X, eq.Y, eq.Text, im.threshold, im.rng.Fork())
	a.SetLabelColor(tagColor(eq))
	if im.scope != nil {
		scope := im.scope
		a.Start(func(period time.Duration, fn func()) func() {
			return scope.Every(period, fn).Cancel
		})
	}
	return a
}

func (im *Impacts) forget(id uint64) {
	delete(im.byID, id)
	delete(im.tags, id)
	if im.hasMatch && im.matched == id {
		im.hasMatch = false
	}
}

func (im *Impacts) release(a *particle.Animator) {
	for i, d := range im.detached {
		if d == a {
			im.detached = append(im.detached[:i], im.detached[i+1:]...)
			return
		}
	}
}

func (im *Impacts) removeOrder(id uint64) {
	for i, v := range im.order {
		if v == id {
			im.order = append(im.order[:i], im.order[i+1:]...)
			return
		}
	}
}

func tagColor(eq equation.Equation) particle.RGBA {
	r, g, b := eq.Color.RGB()
	return particle.RGBA{R: r, G: g, B: b, A: 1}
}

func matchColor() particle.RGBA {
	r, g, b := equation.MatchRGB()
	return particle.RGBA{R: r, G: g, B: b, A: 1}
}
