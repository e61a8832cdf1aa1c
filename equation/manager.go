package equation

import (
	"time"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// Equation is a falling expression entity
type Equation struct {
	ID      uint64
	Text    string
	Answer  int
	X, Y    float64
	Speed   float64
	Color   ColorTag
	Matched bool
}

// CrossFunc receives an equation that passed the bottom threshold, before it is recycled
type CrossFunc func(crossed Equation)

// DeferFunc schedules fn after d on the owner's scheduler
type DeferFunc func(d time.Duration, fn func())

// Manager owns the ordered set of falling equations
// Not safe for concurrent use; the session loop serializes all calls
type Manager struct {
	equations []Equation

	width, height float64
	bottomMargin  float64

	nextID uint64
	epoch  uint64
	rng    *vmath.FastRand

	onCross  CrossFunc
	deferFn  DeferFunc
	maxCount int
}

// NewManager creates an empty manager for a field of the given pixel size
// bottomMargin lifts the crossing threshold above the field bottom (town strip)
func NewManager(width, height, bottomMargin float64, rng *vmath.FastRand) *Manager {
	if rng == nil {
		rng = vmath.NewTimeSeededRand()
	}
	return &Manager{
		equations:    make([]Equation, 0, constant.MaxConcurrentEquations),
		width:        width,
		height:       height,
		bottomMargin: bottomMargin,
		rng:          rng,
		maxCount:     constant.MaxConcurrentEquations,
	}
}

// SetCrossHandler registers the bottom-crossing callback
func (m *Manager) SetCrossHandler(fn CrossFunc) {
	m.onCross = fn
}

// SetDeferrer registers the scheduler used for delayed match removal
// Without one, matched equations are removed immediately
func (m *Manager) SetDeferrer(fn DeferFunc) {
	m.deferFn = fn
}

// Resize applies a new layout; existing equations keep their positions
func (m *Manager) Resize(width, height float64) {
	m.width = width
	m.height = height
}

// Size returns the current field dimensions
func (m *Manager) Size() (float64, float64) {
	return m.width, m.height
}

// BottomThreshold is the y beyond which an equation counts as crossed
func (m *Manager) BottomThreshold() float64 {
	return m.height - m.bottomMargin
}

// Len returns the active equation count
func (m *Manager) Len() int {
	return len(m.equations)
}

// Equations returns a copy of the set in insertion order
func (m *Manager) Equations() []Equation {
	out := make([]Equation, len(m.equations))
	copy(out, m.equations)
	return out
}

// Find returns the equation with the given id
func (m *Manager) Find(id uint64) (Equation, bool) {
	for i := range m.equations {
		if m.equations[i].ID == id {
			return m.equations[i], true
		}
	}
	return Equation{}, false
}

// Spawn appends one equation above the field if below capacity
func (m *Manager) Spawn(level Level) (Equation, bool) {
	if len(m.equations) >= m.maxCount {
		return Equation{}, false
	}
	eq := m.create(level)
	m.equations = append(m.equations, eq)
	return eq, true
}

// Advance moves unmatched equations down by their speed
// A crossed equation is reported and replaced in place by a fresh one
// Returns the number of crossings
func (m *Manager) Advance(level Level) int {
	threshold := m.BottomThreshold()
	epoch := m.epoch
	crossings := 0

	for i := 0; i < len(m.equations); i++ {
		eq := &m.equations[i]
		if eq.Matched {
			continue
		}

		eq.Y += eq.Speed
		if eq.Y <= threshold {
			continue
		}

		crossed := *eq
		m.equations[i] = m.create(level)
		crossings++

		if m.onCross != nil {
			m.onCross(crossed)
			// Callback may have cleared the set (level change, game end)
			if m.epoch != epoch {
				return crossings
			}
		}
	}
	return crossings
}

// Resolve matches player input against the first unmatched equation with that answer
// The match is removed after the display delay; malformed input never matches
func (m *Manager) Resolve(input string) (uint64, bool) {
	answer, ok := ParseAnswer(input)
	if !ok {
		return 0, false
	}

	for i := range m.equations {
		eq := &m.equations[i]
		if eq.Matched || eq.Answer != answer {
			continue
		}

		eq.Matched = true
		id := eq.ID
		if m.deferFn != nil {
			m.deferFn(constant.MatchDisplayDelay, func() { m.Remove(id) })
		} else {
			m.Remove(id)
		}
		return id, true
	}
	return 0, false
}

// Remove deletes the equation with the given id, preserving order
func (m *Manager) Remove(id uint64) bool {
	for i := range m.equations {
		if m.equations[i].ID == id {
			m.equations = append(m.equations[:i], m.equations[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears all equations
func (m *Manager) Reset() {
	m.equations = m.equations[:0]
	m.epoch++
}

func (m *Manager) create(level Level) Equation {
	payload := Generate(level, m.rng)
	m.nextID++
	return Equation{
		ID:     m.nextID,
		Text:   payload.Text,
		Answer: payload.Answer,
		X:      m.spawnX(),
		Y:      constant.SpawnY,
		Speed:  constant.EquationSpeedMin + m.rng.Float64()*constant.EquationSpeedSpan,
		Color:  ColorTag(m.rng.Intn(ColorTagCount)),
	}
}

func (m *Manager) spawnX() float64 {
	lo := constant.SpawnSideMargin
	hi := m.width - constant.SpawnSideMargin
	if hi <= lo {
		return m.width / 2
	}
	return m.rng.Range(lo, hi)
}
