package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer, trading latency for underruns
	AudioBufferDuration = 100 * time.Millisecond
)

// Correct Answer Sound: rising two-note chime
const (
	CorrectNote1Duration = 70 * time.Millisecond
	CorrectNote2Duration = 220 * time.Millisecond
	CorrectAttack        = 5 * time.Millisecond
	CorrectNote1Release  = 30 * time.Millisecond
	CorrectNote2Release  = 160 * time.Millisecond
	CorrectNote1Freq     = 659.25 // E5
	CorrectNote2Freq     = 987.77 // B5
)

// Level Up Sound: major arpeggio
const (
	LevelUpNoteDuration = 110 * time.Millisecond
	LevelUpAttack       = 5 * time.Millisecond
	LevelUpRelease      = 60 * time.Millisecond
)

// LevelUpNotes is C5 E5 G5 C6
var LevelUpNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// Game Over Sound: falling saw sweep
const (
	GameOverDuration  = 900 * time.Millisecond
	GameOverAttack    = 10 * time.Millisecond
	GameOverRelease   = 600 * time.Millisecond
	GameOverStartFreq = 330.0
	GameOverEndFreq   = 55.0
)

// Blast Sound: noise burst over a low thump
const (
	BlastDuration  = 450 * time.Millisecond
	BlastAttack    = 2 * time.Millisecond
	BlastRelease   = 380 * time.Millisecond
	BlastThumpFreq = 60.0
)

// Background Music
const (
	MusicStepDuration = 180 * time.Millisecond
	MusicDroneFreq    = 110.0 // A2
	MusicDroneLevel   = 0.25
	MusicLeadLevel    = 0.35
)

// MusicPattern is a looping A-minor pentatonic figure, 0 is a rest
var MusicPattern = []float64{
	440.00, 0, 523.25, 587.33, 659.25, 0, 587.33, 523.25,
	392.00, 0, 440.00, 523.25, 440.00, 0, 392.00, 0,
}
