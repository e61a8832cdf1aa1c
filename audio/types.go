package audio

import "errors"

// SoundType identifies a one-shot sound cue
type SoundType int

const (
	SoundCorrect  SoundType = iota // Answer matched
	SoundLevelUp                   // Level progressed
	SoundGameOver                  // Session ended
	SoundBlast                     // Crossing blast
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundCorrect:
		return "correct"
	case SoundLevelUp:
		return "level_up"
	case SoundGameOver:
		return "game_over"
	case SoundBlast:
		return "blast"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)
