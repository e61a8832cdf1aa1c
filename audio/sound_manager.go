package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/mathfall/constant"
	"github.com/lixenwraith/mathfall/logger"
)

// SoundManager plays session cues and the background loop through one mixer
// Every method is a no-op until Initialize succeeds, so the game runs silently without a device
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	played      [soundTypeCount]int
	log         *logrus.Entry

	effectsMuted bool
	musicMuted   bool
	musicWanted  bool
}

// NewSoundManager creates an uninitialized sound manager
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   logger.Component("audio"),
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(constant.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.WithField("sample_rate", sm.cfg.SampleRate).Info("audio initialized")
	return nil
}

// Cleanup stops every stream; the speaker stays open for a later Initialize
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.music = nil
	sm.initialized = false
}

// Initialized reports whether sound is audible
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

func (sm *SoundManager) PlayCorrect()  { sm.play(SoundCorrect) }
func (sm *SoundManager) PlayLevelUp()  { sm.play(SoundLevelUp) }
func (sm *SoundManager) PlayGameOver() { sm.play(SoundGameOver) }
func (sm *SoundManager) PlayBlast()    { sm.play(SoundBlast) }

// StartMusic resumes the background loop, creating it on first use
func (sm *SoundManager) StartMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.musicWanted = true
	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if sm.music == nil {
		sm.music = &beep.Ctrl{Streamer: NewMusic(sm.cfg)}
		sm.mixer.Add(sm.music)
	}
	sm.music.Paused = sm.musicMuted
}

// StopMusic pauses the background loop
func (sm *SoundManager) StopMusic() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.musicWanted = false
	if !sm.initialized || sm.music == nil {
		return
	}

	speaker.Lock()
	sm.music.Paused = true
	speaker.Unlock()
}

// ToggleEffectMute silences or restores one-shot cues and returns the new muted state
func (sm *SoundManager) ToggleEffectMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.effectsMuted = !sm.effectsMuted
	return sm.effectsMuted
}

// ToggleMusicMute silences or restores the background loop and returns the new muted state
// Unmuting resumes the loop only while a session wants music
func (sm *SoundManager) ToggleMusicMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.musicMuted = !sm.musicMuted

	if sm.initialized && sm.music != nil {
		speaker.Lock()
		sm.music.Paused = sm.musicMuted || !sm.musicWanted
		speaker.Unlock()
	}
	return sm.musicMuted
}

// MusicPlaying reports whether the loop is audible
func (sm *SoundManager) MusicPlaying() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.music == nil {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !sm.music.Paused
}

// Played returns how many times a cue was mixed in
func (sm *SoundManager) Played(t SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if t < 0 || t >= soundTypeCount {
		return 0
	}
	return sm.played[t]
}

func (sm *SoundManager) play(t SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.effectsMuted {
		return
	}

	streamer := GetSoundEffect(t, sm.cfg)
	if streamer == nil {
		return
	}
	rate := beep.SampleRate(sm.cfg.SampleRate)
	bounded := beep.Take(rate.N(SoundDuration(t)), streamer)

	speaker.Lock()
	sm.mixer.Add(bounded)
	speaker.Unlock()
	sm.played[t]++
}
