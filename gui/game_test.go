package gui

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/vmath"
)

type mockMuter struct {
	effects, music int
}

func (m *mockMuter) ToggleEffectMute() bool {
	m.effects++
	return m.effects%2 == 1
}

func (m *mockMuter) ToggleMusicMute() bool {
	m.music++
	return m.music%2 == 1
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestGame(t *testing.T) (*Game, *engine.Scheduler, *mockMuter) {
	t.Helper()
	sched := engine.NewScheduler(epoch)
	session := engine.NewSession(sched, engine.Options{
		Mode: engine.PenaltyDefense,
		Rand: vmath.NewFastRand(11),
	})
	mute := &mockMuter{}
	g := NewGame(sched, engine.NewMockTimeProvider(epoch), session, Options{Mute: mute})
	g.Layout(800, 600)
	return g, sched, mute
}

func TestFieldSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  float64
	}{
		{"regular", 800, 600, 800, 600 - HUDHeight - InputHeight},
		{"too short", 200, 30, 200, 0},
		{"negative", -5, -5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FieldSize(tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FieldSize(%d, %d) = %v, %v; want %v, %v", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestLayoutResizesSession(t *testing.T) {
	g, _, _ := newTestGame(t)

	w, h := g.Layout(1024, 768)
	if w != 1024 || h != 768 {
		t.Fatalf("Layout returned %dx%d", w, h)
	}
	want := float64(768-HUDHeight-InputHeight) - constant.TownHeight
	if got := g.session.BottomThreshold(); got != want {
		t.Errorf("BottomThreshold = %v, want %v", got, want)
	}
}

func TestHandleEscapeTerminates(t *testing.T) {
	g, _, _ := newTestGame(t)
	if err := g.handle(keys{escape: true}, nil); !errors.Is(err, ebiten.Termination) {
		t.Errorf("escape returned %v, want ebiten.Termination", err)
	}
}

func TestHandleStartTypeSubmit(t *testing.T) {
	g, sched, _ := newTestGame(t)

	if err := g.handle(keys{}, []rune("12")); err != nil {
		t.Fatal(err)
	}
	if g.Field().String() != "" {
		t.Errorf("typing while waiting filled the field: %q", g.Field().String())
	}

	g.handle(keys{enter: true}, nil)
	if g.session.Status() != engine.StatusPlaying {
		t.Fatalf("status = %v after enter, want playing", g.session.Status())
	}

	sched.Step(constant.SpawnInterval)
	snap := g.session.Snapshot()
	if len(snap.Equations) == 0 {
		t.Fatal("no equation spawned")
	}
	answer := strconv.Itoa(snap.Equations[0].Answer)

	g.handle(keys{}, []rune(answer))
	if g.Field().String() != answer {
		t.Fatalf("field = %q, want %q", g.Field().String(), answer)
	}
	g.handle(keys{enter: true}, nil)

	if g.Field().String() != "" {
		t.Errorf("field not cleared after submit: %q", g.Field().String())
	}
	if got := g.session.Score(); got != constant.ScoreCorrect {
		t.Errorf("score = %d, want %d", got, constant.ScoreCorrect)
	}
}

func TestHandleEditing(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.handle(keys{enter: true}, nil)

	g.handle(keys{}, []rune("4x2"))
	if got := g.Field().String(); got != "42" {
		t.Fatalf("field = %q, want 42", got)
	}
	g.handle(keys{backspace: true}, nil)
	if got := g.Field().String(); got != "4" {
		t.Errorf("after backspace field = %q, want 4", got)
	}
	g.handle(keys{clear: true}, []rune("u"))
	if got := g.Field().String(); got != "" {
		t.Errorf("after clear field = %q, want empty", got)
	}
}

func TestHandleEndAndRestart(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.handle(keys{enter: true}, nil)

	g.handle(keys{endGame: true}, []rune("e"))
	if g.session.Status() != engine.StatusEnded {
		t.Fatalf("status = %v, want ended", g.session.Status())
	}

	g.handle(keys{enter: true}, nil)
	if g.session.Status() != engine.StatusPlaying {
		t.Errorf("status = %v after play again, want playing", g.session.Status())
	}
}

func TestHandleMute(t *testing.T) {
	g, _, mute := newTestGame(t)

	g.handle(keys{muteFx: true}, []rune("s"))
	g.handle(keys{muteMusic: true}, []rune("g"))
	g.handle(keys{muteMusic: true}, []rune("g"))

	if mute.effects != 1 || mute.music != 2 {
		t.Errorf("toggles effects=%d music=%d, want 1 and 2", mute.effects, mute.music)
	}
}

func TestTownRects(t *testing.T) {
	full := townRects(0, 0, 180, 96, constant.TownHealthMax)
	if len(full) != constant.TownBuildings+1 {
		t.Fatalf("got %d rects, want %d", len(full), constant.TownBuildings+1)
	}
	for i, r := range full[1:] {
		if r.h < 96/12 {
			t.Errorf("building %d height %v looks collapsed at full health", i, r.h)
		}
	}

	ruined := townRects(0, 0, 180, 96, 0)
	for i, r := range ruined[1:] {
		if r.h > 96/8 {
			t.Errorf("building %d still standing at zero health (h=%v)", i, r.h)
		}
	}

	if townRects(0, 0, 0, 96, 50) != nil {
		t.Error("empty strip should produce no rects")
	}
}
