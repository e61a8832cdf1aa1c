package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine is the input state machine
// Parses tcell events into semantic Intent
type Machine struct {
	mode InputMode
}

// NewMachine creates a new input machine
func NewMachine() *Machine {
	return &Machine{mode: ModeMenu}
}

// SetMode updates the parser's mode context
func (m *Machine) SetMode(mode InputMode) {
	m.mode = mode
}

// Mode returns the parser's mode context
func (m *Machine) Mode() InputMode {
	return m.mode
}

// Process parses a tcell event and returns an Intent
// Returns nil for events with no meaning in the current mode
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	// Global keys
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC, tcell.KeyEscape:
		return &Intent{Type: IntentQuit}
	case tcell.KeyCtrlS:
		return &Intent{Type: IntentToggleEffectMute}
	case tcell.KeyCtrlG:
		return &Intent{Type: IntentToggleMusicMute}
	}

	switch m.mode {
	case ModeMenu:
		return m.processMenu(ev)
	case ModeAnswer:
		return m.processAnswer(ev)
	}
	return nil
}

func (m *Machine) processMenu(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return &Intent{Type: IntentStart}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 's':
			return &Intent{Type: IntentStart}
		case 'q':
			return &Intent{Type: IntentQuit}
		}
	}
	return nil
}

func (m *Machine) processAnswer(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return &Intent{Type: IntentSubmit}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return &Intent{Type: IntentTextBackspace}
	case tcell.KeyCtrlU:
		return &Intent{Type: IntentTextClear}
	case tcell.KeyCtrlE:
		return &Intent{Type: IntentEndGame}
	case tcell.KeyRune:
		return &Intent{Type: IntentTextChar, Char: ev.Rune()}
	}
	return nil
}
