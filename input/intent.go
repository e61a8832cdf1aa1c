package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit             // Ctrl+Q, Ctrl+C, Esc
	IntentToggleEffectMute // Ctrl+S
	IntentToggleMusicMute  // Ctrl+G
	IntentResize           // Terminal resize event

	// Session control
	IntentStart   // Enter on the title or game over screen
	IntentEndGame // Ctrl+E while playing

	// Answer field
	IntentTextChar      // Printable character
	IntentTextBackspace // Backspace
	IntentTextClear     // Ctrl+U
	IntentSubmit        // Enter while playing
)

var intentNames = map[IntentType]string{
	IntentNone:             "none",
	IntentQuit:             "quit",
	IntentToggleEffectMute: "toggle_effect_mute",
	IntentToggleMusicMute:  "toggle_music_mute",
	IntentResize:           "resize",
	IntentStart:            "start",
	IntentEndGame:          "end_game",
	IntentTextChar:         "text_char",
	IntentTextBackspace:    "text_backspace",
	IntentTextClear:        "text_clear",
	IntentSubmit:           "submit",
}

func (t IntentType) String() string {
	if name, ok := intentNames[t]; ok {
		return name
	}
	return "unknown"
}

// Intent is one parsed user action
type Intent struct {
	Type IntentType
	Char rune // IntentTextChar payload
}
