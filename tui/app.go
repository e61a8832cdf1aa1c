// Package tui is the terminal frontend: a tcell screen driving one session through the engine loop
package tui

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/core"
	"github.com/lixenwraith/mathfall/engine"
	"github.com/lixenwraith/mathfall/input"
	"github.com/lixenwraith/mathfall/logger"
	"github.com/lixenwraith/mathfall/render"
)

// Muter toggles audio channels; satisfied by *audio.SoundManager
type Muter interface {
	ToggleEffectMute() bool
	ToggleMusicMute() bool
}

// Options configures the terminal frontend
type Options struct {
	// Pixel size of one terminal cell in field coordinates
	CellWidth  int
	CellHeight int

	// Mute is optional
	Mute Muter
}

// App owns the screen and forwards input to the session on the loop goroutine
// Everything except the event poller runs on the loop goroutine
type App struct {
	screen   tcell.Screen
	loop     *engine.Loop
	session  *engine.Session
	mute     Muter
	renderer *render.Renderer
	machine  *input.Machine
	field    *input.AnswerField
	frame    *engine.Task
	log      *logrus.Entry

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates the frontend for an initialized screen
func New(screen tcell.Screen, loop *engine.Loop, session *engine.Session, opts Options) *App {
	return &App{
		screen:   screen,
		loop:     loop,
		session:  session,
		mute:     opts.Mute,
		renderer: render.NewRenderer(float64(opts.CellWidth), float64(opts.CellHeight)),
		machine:  input.NewMachine(),
		field:    input.NewAnswerField(constant.InputMaxLen),
		log:      logger.Component("tui"),
		quit:     make(chan struct{}),
	}
}

// Run processes terminal events until the player quits
// The loop must be started; the caller finalizes the screen afterwards
func (a *App) Run() error {
	core.SetCrashHook(a.screen.Fini)
	a.screen.HideCursor()

	if err := a.loop.Do(a.attach); err != nil {
		return err
	}
	defer a.loop.Do(a.detach)

	events := make(chan tcell.Event, 64)
	core.Go(func() { a.poll(events) })

	for {
		select {
		case ev := <-events:
			keep := true
			if err := a.loop.Do(func() { keep = a.apply(ev) }); err != nil {
				return err
			}
			if !keep {
				a.stop()
				return nil
			}
		case <-a.quit:
			return nil
		}
	}
}

// Stop makes Run return; safe from any goroutine
func (a *App) Stop() {
	a.stop()
}

func (a *App) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// poll forwards screen events until the screen is finalized or the app stops
func (a *App) poll(events chan<- tcell.Event) {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			a.stop()
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

// attach sizes the field and arms the frame task
func (a *App) attach() {
	a.resize()
	a.frame = a.loop.Scheduler().Every(constant.FrameInterval, a.draw)
	a.draw()
}

func (a *App) detach() {
	a.frame.Cancel()
}

// apply handles one event on the loop goroutine; false means quit
func (a *App) apply(ev tcell.Event) bool {
	a.syncMode()
	intent := a.machine.Process(ev)
	if intent == nil {
		return true
	}

	switch intent.Type {
	case input.IntentQuit:
		a.log.Info("quit requested")
		return false

	case input.IntentResize:
		a.resize()
		a.screen.Sync()

	case input.IntentStart:
		a.field.Clear()
		a.session.Start()

	case input.IntentEndGame:
		a.session.End()

	case input.IntentTextChar:
		a.field.Insert(intent.Char)

	case input.IntentTextBackspace:
		a.field.Backspace()

	case input.IntentTextClear:
		a.field.Clear()

	case input.IntentSubmit:
		text := a.field.Take()
		if id, ok := a.session.Submit(text); ok {
			a.log.WithFields(logrus.Fields{"equation_id": id, "score": a.session.Score()}).Debug("answer matched")
		}

	case input.IntentToggleEffectMute:
		if a.mute != nil {
			a.log.WithField("muted", a.mute.ToggleEffectMute()).Info("effects toggled")
		}

	case input.IntentToggleMusicMute:
		if a.mute != nil {
			a.log.WithField("muted", a.mute.ToggleMusicMute()).Info("music toggled")
		}
	}

	a.syncMode()
	a.draw()
	return true
}

func (a *App) syncMode() {
	if a.session.Status() == engine.StatusPlaying {
		a.machine.SetMode(input.ModeAnswer)
	} else {
		a.machine.SetMode(input.ModeMenu)
	}
}

// resize re-lays the screen and hands the new field size to the session
func (a *App) resize() {
	cols, rows := a.screen.Size()
	w, h := a.renderer.Resize(cols, rows)
	a.session.Resize(w, h)
	a.log.WithFields(logrus.Fields{"cols": cols, "rows": rows, "width": w, "height": h}).Debug("resized")
}

func (a *App) draw() {
	a.renderer.Render(a.session, a.field.String())
	a.renderer.Flush(a.screen)
}
