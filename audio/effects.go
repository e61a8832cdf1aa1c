package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/mathfall/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a wave whose frequency glides exponentially from one value to another
// A constant tone has from == to
type tone struct {
	from, to float64
	phase    float64
	length   int
	pos      int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-frequency wave lasting duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{from: freq, to: freq, length: rate.N(duration), wave: wave, rate: rate}
}

// NewSweep creates a wave gliding from one frequency to another over duration
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &tone{from: from, to: to, length: rate.N(duration), wave: wave, rate: rate}
}

func (t *tone) freq() float64 {
	if t.from == t.to || t.from <= 0 {
		return t.from
	}
	return t.from * math.Pow(t.to/t.from, float64(t.pos)/float64(t.length))
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}
		v := waveSample(t.wave, t.phase)
		samples[i] = [2]float64{v, v}

		t.phase += t.freq() / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// waveSample evaluates one wave cycle at phase in [0, 1)
func waveSample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rand.Float64()*2 - 1
	}
	return 0
}

// envelope ramps a stream in over attack and out over release, cutting it at total
type envelope struct {
	src                    beep.Streamer
	pos                    int
	attack, release, total int
}

// NewEnvelope shapes s with a linear attack and release inside duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att, rel := rate.N(attack), rate.N(release)
	if att+rel > total {
		rel = max(total-att, 0)
	}
	return &envelope{src: s, attack: att, release: rel, total: total}
}

func (e *envelope) gain() float64 {
	switch {
	case e.attack > 0 && e.pos < e.attack:
		return float64(e.pos) / float64(e.attack)
	case e.release > 0 && e.pos >= e.total-e.release:
		return float64(e.total-e.pos) / float64(e.release)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// newVolume scales s linearly by vol; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateCorrectSound generates a rising two-note chime for a matched answer
func CreateCorrectSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(constant.CorrectNote1Freq, constant.CorrectNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, constant.CorrectNote1Duration, constant.CorrectAttack, constant.CorrectNote1Release, rate)

	n2 := NewOscillator(constant.CorrectNote2Freq, constant.CorrectNote2Duration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, constant.CorrectNote2Duration, constant.CorrectAttack, constant.CorrectNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.effectVolume(SoundCorrect))
}

// CreateLevelUpSound generates a square-wave arpeggio
func CreateLevelUpSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	notes := make([]beep.Streamer, 0, len(constant.LevelUpNotes))
	for _, freq := range constant.LevelUpNotes {
		osc := NewOscillator(freq, constant.LevelUpNoteDuration, WaveSquare, rate)
		shaped := NewEnvelope(osc, constant.LevelUpNoteDuration, constant.LevelUpAttack, constant.LevelUpRelease, rate)
		notes = append(notes, newVolume(shaped, 0.5))
	}

	return newVolume(beep.Seq(notes...), cfg.effectVolume(SoundLevelUp))
}

// CreateGameOverSound generates a long falling saw sweep
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	sw := NewSweep(constant.GameOverStartFreq, constant.GameOverEndFreq, constant.GameOverDuration, WaveSaw, rate)
	shaped := NewEnvelope(sw, constant.GameOverDuration, constant.GameOverAttack, constant.GameOverRelease, rate)

	return newVolume(shaped, cfg.effectVolume(SoundGameOver)*0.6)
}

// CreateBlastSound generates a noise burst layered over a low sine thump
func CreateBlastSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, constant.BlastDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, constant.BlastDuration, constant.BlastAttack, constant.BlastRelease, rate)

	layers := []beep.Streamer{newVolume(noiseShaped, 0.6)}
	if sine, err := generators.SineTone(rate, constant.BlastThumpFreq); err == nil {
		thump := beep.Take(rate.N(constant.BlastDuration), sine)
		thumpShaped := NewEnvelope(thump, constant.BlastDuration, constant.BlastAttack, constant.BlastRelease, rate)
		layers = append(layers, newVolume(thumpShaped, 0.8))
	}

	return newVolume(beep.Mix(layers...), cfg.effectVolume(SoundBlast))
}

// GetSoundEffect returns the streamer of a cue, nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundCorrect:
		return CreateCorrectSound(cfg)
	case SoundLevelUp:
		return CreateLevelUpSound(cfg)
	case SoundGameOver:
		return CreateGameOverSound(cfg)
	case SoundBlast:
		return CreateBlastSound(cfg)
	default:
		return nil
	}
}

// SoundDuration is the nominal length of a cue
func SoundDuration(soundType SoundType) time.Duration {
	switch soundType {
	case SoundCorrect:
		return constant.CorrectNote1Duration + constant.CorrectNote2Duration
	case SoundLevelUp:
		return time.Duration(len(constant.LevelUpNotes)) * constant.LevelUpNoteDuration
	case SoundGameOver:
		return constant.GameOverDuration
	case SoundBlast:
		return constant.BlastDuration
	default:
		return 0
	}
}
