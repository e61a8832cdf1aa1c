package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/input"
	"github.com/lixenwraith/mathfall/logger"
)

// Window layout in pixels
const (
	HUDHeight   = 24
	InputHeight = 28
)

// Muter toggles audio channels; satisfied by *audio.SoundManager
type Muter interface {
	ToggleEffectMute() bool
	ToggleMusicMute() bool
}

// Options configures the windowed frontend
type Options struct {
	Mute Muter
}

// keys is the per-frame key state the game reacts to
type keys struct {
	enter     bool
	backspace bool
	escape    bool
	endGame   bool
	clear     bool
	muteFx    bool
	muteMusic bool
}

// Game implements ebiten.Game
// Update and Draw run on ebiten's game goroutine, which also drives the scheduler
type Game struct {
	sched   *engine.Scheduler
	clock   engine.TimeSource
	session *engine.Session
	mute    Muter
	field   *input.AnswerField
	canvas  *Canvas
	log     *logrus.Entry

	width, height int
	chars         []rune
}

// NewGame creates the frontend; the session is advanced from Update
func NewGame(sched *engine.Scheduler, clock engine.TimeSource, session *engine.Session, opts Options) *Game {
	return &Game{
		sched:   sched,
		clock:   clock,
		session: session,
		mute:    opts.Mute,
		field:   input.NewAnswerField(constant.InputMaxLen),
		log:     logger.Component("gui"),
	}
}

// Update advances the session clock and applies input
func (g *Game) Update() error {
	g.sched.Advance(g.clock.Now())
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	return g.handle(readKeys(), g.chars)
}

func readKeys() keys {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	return keys{
		enter:     inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		backspace: inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		escape:    inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		endGame:   ctrl && inpututil.IsKeyJustPressed(ebiten.KeyE),
		clear:     ctrl && inpututil.IsKeyJustPressed(ebiten.KeyU),
		muteFx:    ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS),
		muteMusic: ctrl && inpututil.IsKeyJustPressed(ebiten.KeyG),
	}
}

// handle applies one frame of input; ebiten.Termination ends the game loop
func (g *Game) handle(k keys, chars []rune) error {
	if k.escape {
		g.log.Info("quit requested")
		return ebiten.Termination
	}
	if k.muteFx && g.mute != nil {
		g.log.WithField("muted", g.mute.ToggleEffectMute()).Info("effects toggled")
	}
	if k.muteMusic && g.mute != nil {
		g.log.WithField("muted", g.mute.ToggleMusicMute()).Info("music toggled")
	}

	if g.session.Status() != engine.StatusPlaying {
		if k.enter {
			g.field.Clear()
			g.session.Start()
		}
		return nil
	}

	switch {
	case k.endGame:
		g.session.End()
		return nil
	case k.clear:
		g.field.Clear()
	case k.backspace:
		g.field.Backspace()
	}
	// Ctrl chords also report their letter as typed input
	if !k.endGame && !k.clear && !k.muteFx && !k.muteMusic {
		for _, r := range chars {
			g.field.Insert(r)
		}
	}
	if k.enter {
		text := g.field.Take()
		if id, ok := g.session.Submit(text); ok {
			g.log.WithFields(logrus.Fields{"equation_id": id, "score": g.session.Score()}).Debug("answer matched")
		}
	}
	return nil
}

// Layout keeps the logical size equal to the window and resizes the field on change
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		w, h := FieldSize(outsideWidth, outsideHeight)
		g.session.Resize(w, h)
		g.log.WithFields(logrus.Fields{"width": w, "height": h}).Debug("resized")
	}
	return outsideWidth, outsideHeight
}

// FieldSize returns the play field between the HUD and the input bar
func FieldSize(width, height int) (float64, float64) {
	return float64(max(width, 0)), float64(max(height-HUDHeight-InputHeight, 0))
}

// Draw renders one frame
func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = NewCanvas()
	}
	snap := g.session.Snapshot()
	fw, fh := FieldSize(g.width, g.height)

	g.canvas.Target(screen, 0, HUDHeight, background(snap.Background))
	g.canvas.Clear()
	if snap.Mode == engine.PenaltyDefense {
		drawTown(screen, 0, HUDHeight+fh-constant.TownHeight, fw, constant.TownHeight, snap.TownHealth)
	}
	g.session.Draw(g.canvas)

	drawHUD(screen, snap, float64(g.width))
	drawInputBar(screen, snap, g.field.String(), float64(g.width), float64(g.height))
	drawOverlay(screen, snap, float64(g.width), float64(g.height))
}

// Field exposes the answer entry for tests and embedding
func (g *Game) Field() *input.AnswerField {
	return g.field
}

var _ ebiten.Game = (*Game)(nil)
