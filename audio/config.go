package audio

import (
	"github.com/lixenwraith/mathfall/config"
	"github.com/lixenwraith/mathfall/constant"
)

// AudioConfig is the sound manager configuration
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	MusicVolume   float64
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the stock mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		MusicVolume:  0.3,
		SampleRate:   constant.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundCorrect:  0.8,
			SoundLevelUp:  0.9,
			SoundGameOver: 1.0,
			SoundBlast:    0.6,
		},
	}
}

// FromConfig derives the sound manager configuration from the runtime config
func FromConfig(c config.AudioConfig) *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.Enabled = c.Enabled
	cfg.MasterVolume = c.MasterVolume
	cfg.MusicVolume = c.MusicVolume
	if c.SampleRate > 0 {
		cfg.SampleRate = c.SampleRate
	}
	return cfg
}

// effectVolume is the final gain of a cue
func (c *AudioConfig) effectVolume(t SoundType) float64 {
	return c.EffectVolumes[t] * c.MasterVolume
}
