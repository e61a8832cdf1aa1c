package equation

import (
	"testing"
	"time"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/vmath"
)

// deferQueue captures deferred callbacks so tests control when they fire
type deferQueue struct {
	delays []time.Duration
	fns    []func()
}

func (q *deferQueue) deferFn(d time.Duration, fn func()) {
	q.delays = append(q.delays, d)
	q.fns = append(q.fns, fn)
}

func (q *deferQueue) flush() {
	fns := q.fns
	q.fns = nil
	q.delays = nil
	for _, fn := range fns {
		fn()
	}
}

func newTestManager() *Manager {
	return NewManager(800, 600, 0, vmath.NewFastRand(1))
}

func TestSpawnCapsAtMax(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 25; i++ {
		m.Spawn(Level1)
	}
	if m.Len() != constant.MaxConcurrentEquations {
		t.Fatalf("expected %d equations, got %d", constant.MaxConcurrentEquations, m.Len())
	}
	if _, ok := m.Spawn(Level1); ok {
		t.Error("spawn beyond capacity must report false")
	}
}

func TestSpawnPlacement(t *testing.T) {
	m := newTestManager()
	for i := 0; i < constant.MaxConcurrentEquations; i++ {
		eq, ok := m.Spawn(Level2)
		if !ok {
			t.Fatal("spawn failed below capacity")
		}
		if eq.Y != constant.SpawnY {
			t.Errorf("spawn y = %f, want %f", eq.Y, constant.SpawnY)
		}
		if eq.X < constant.SpawnSideMargin || eq.X >= 800-constant.SpawnSideMargin {
			t.Errorf("spawn x %f outside margins", eq.X)
		}
		if eq.Speed < constant.EquationSpeedMin || eq.Speed >= constant.EquationSpeedMin+constant.EquationSpeedSpan {
			t.Errorf("speed %f outside range", eq.Speed)
		}
	}
}

func TestSpawnNarrowFieldCenters(t *testing.T) {
	m := NewManager(100, 600, 0, vmath.NewFastRand(1))
	eq, _ := m.Spawn(Level1)
	if eq.X != 50 {
		t.Errorf("narrow field should center spawn, got x=%f", eq.X)
	}
}

func TestSpawnUniqueIDs(t *testing.T) {
	m := newTestManager()
	seen := make(map[uint64]bool)
	for i := 0; i < constant.MaxConcurrentEquations; i++ {
		eq, _ := m.Spawn(Level3)
		if seen[eq.ID] {
			t.Fatalf("duplicate id %d", eq.ID)
		}
		seen[eq.ID] = true
	}
}

func TestAdvanceMovesBySpeed(t *testing.T) {
	m := newTestManager()
	eq, _ := m.Spawn(Level1)
	m.Advance(Level1)

	got, ok := m.Find(eq.ID)
	if !ok {
		t.Fatal("equation lost after advance")
	}
	if got.Y != eq.Y+eq.Speed {
		t.Errorf("y = %f, want %f", got.Y, eq.Y+eq.Speed)
	}
}

// TestAdvanceRecyclesInPlace verifies a crossing replaces the equation at the same index
func TestAdvanceRecyclesInPlace(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 3; i++ {
		m.Spawn(Level1)
	}
	m.equations[1].Y = m.BottomThreshold() - 0.1
	before := m.Equations()

	var crossed []Equation
	m.SetCrossHandler(func(eq Equation) { crossed = append(crossed, eq) })

	n := m.Advance(Level1)
	after := m.Equations()

	if n != 1 || len(crossed) != 1 {
		t.Fatalf("expected one crossing, got %d (callbacks %d)", n, len(crossed))
	}
	if crossed[0].ID != before[1].ID {
		t.Errorf("callback got id %d, want %d", crossed[0].ID, before[1].ID)
	}
	if len(after) != len(before) {
		t.Fatalf("count changed %d -> %d", len(before), len(after))
	}
	if after[1].ID == before[1].ID {
		t.Error("crossed equation must be replaced with a new id")
	}
	if after[1].Y != constant.SpawnY {
		t.Errorf("recycled y = %f, want %f", after[1].Y, constant.SpawnY)
	}
	if after[0].ID != before[0].ID || after[2].ID != before[2].ID {
		t.Error("neighbours must keep their positions")
	}
}

func TestAdvanceStopsWhenCallbackResets(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 4; i++ {
		m.Spawn(Level1)
	}
	for i := range m.equations {
		m.equations[i].Y = m.BottomThreshold()
	}

	calls := 0
	m.SetCrossHandler(func(Equation) {
		calls++
		m.Reset()
	})

	m.Advance(Level1)
	if calls != 1 {
		t.Errorf("expected advance to stop after reset, got %d callbacks", calls)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty set after reset, got %d", m.Len())
	}
}

func TestAdvanceSkipsMatched(t *testing.T) {
	m := newTestManager()
	q := &deferQueue{}
	m.SetDeferrer(q.deferFn)

	eq, _ := m.Spawn(Level1)
	m.equations[0].Y = m.BottomThreshold()
	if _, ok := m.Resolve(itoa(eq.Answer)); !ok {
		t.Fatal("resolve failed")
	}

	if n := m.Advance(Level1); n != 0 {
		t.Error("matched equation must not cross")
	}
	got, _ := m.Find(eq.ID)
	if got.Y != m.BottomThreshold() {
		t.Error("matched equation must not move")
	}
}

// TestResolveFirstMatchWins verifies insertion order decides between equal answers
func TestResolveFirstMatchWins(t *testing.T) {
	m := newTestManager()
	m.equations = append(m.equations,
		Equation{ID: 1, Text: "3 + 4", Answer: 7},
		Equation{ID: 2, Text: "10 - 3", Answer: 7},
	)

	id, ok := m.Resolve("7")
	if !ok || id != 1 {
		t.Fatalf("expected match on id 1, got %d (%v)", id, ok)
	}
	if _, still := m.Find(1); still {
		t.Error("without deferrer the match is removed immediately")
	}

	id, ok = m.Resolve("7")
	if !ok || id != 2 {
		t.Fatalf("second submit should match id 2, got %d", id)
	}
}

func TestResolveDeferredRemoval(t *testing.T) {
	m := newTestManager()
	q := &deferQueue{}
	m.SetDeferrer(q.deferFn)
	m.equations = append(m.equations,
		Equation{ID: 1, Answer: 15},
		Equation{ID: 2, Answer: 15},
	)

	id, ok := m.Resolve("15")
	if !ok || id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	if len(q.delays) != 1 || q.delays[0] != constant.MatchDisplayDelay {
		t.Fatalf("expected removal deferred by %v, got %v", constant.MatchDisplayDelay, q.delays)
	}

	eq, found := m.Find(1)
	if !found || !eq.Matched {
		t.Fatal("matched equation must stay visible until the delay fires")
	}

	// Same answer again skips the matched one
	id, _ = m.Resolve("15")
	if id != 2 {
		t.Errorf("matched equation must not be matched twice, got id %d", id)
	}

	q.flush()
	if m.Len() != 0 {
		t.Errorf("expected both removed after delay, got %d", m.Len())
	}
}

func TestResolveMalformedInput(t *testing.T) {
	m := newTestManager()
	m.equations = append(m.equations, Equation{ID: 1, Answer: 0})

	for _, in := range []string{"", "   ", "abc", "1e", "--1", "NaN", "Inf"} {
		if id, ok := m.Resolve(in); ok {
			t.Errorf("Resolve(%q) matched id %d", in, id)
		}
	}
	if m.Len() != 1 {
		t.Error("malformed input must not remove equations")
	}
}

func TestResolveTruncatesFloat(t *testing.T) {
	m := newTestManager()
	m.equations = append(m.equations, Equation{ID: 5, Answer: 7})
	if id, ok := m.Resolve("7.9"); !ok || id != 5 {
		t.Errorf("7.9 should truncate to 7, got id %d ok %v", id, ok)
	}
}

func TestRemoveUnknownID(t *testing.T) {
	m := newTestManager()
	m.Spawn(Level1)
	if m.Remove(9999) {
		t.Error("removing unknown id must report false")
	}
	if m.Len() != 1 {
		t.Error("unknown removal must not change the set")
	}
}

// TestCountInvariant runs random operation sequences and checks 0 <= len <= max
func TestCountInvariant(t *testing.T) {
	rng := vmath.NewFastRand(77)
	m := NewManager(640, 300, 0, vmath.NewFastRand(78))
	q := &deferQueue{}
	m.SetDeferrer(q.deferFn)

	for step := 0; step < 5000; step++ {
		switch rng.Intn(5) {
		case 0, 1:
			m.Spawn(Level(rng.IntRange(1, 3)))
		case 2:
			m.Advance(Level(rng.IntRange(1, 3)))
		case 3:
			if eqs := m.Equations(); len(eqs) > 0 {
				m.Resolve(itoa(eqs[rng.Intn(len(eqs))].Answer))
			}
		case 4:
			q.flush()
		}
		if n := m.Len(); n < 0 || n > constant.MaxConcurrentEquations {
			t.Fatalf("step %d: count %d violates invariant", step, n)
		}
	}
}

func TestResizeMovesThreshold(t *testing.T) {
	m := NewManager(800, 600, 96, vmath.NewFastRand(1))
	if m.BottomThreshold() != 504 {
		t.Errorf("threshold = %f, want 504", m.BottomThreshold())
	}
	m.Resize(400, 300)
	if w, h := m.Size(); w != 400 || h != 300 {
		t.Errorf("size = %fx%f after resize", w, h)
	}
	if m.BottomThreshold() != 204 {
		t.Errorf("threshold = %f after resize, want 204", m.BottomThreshold())
	}
}
