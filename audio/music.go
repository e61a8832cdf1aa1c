package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/mathfall/constant"
)

// melody loops a note pattern forever, each step plucked with an exponential decay
type melody struct {
	notes    []float64
	step     int
	stepLen  int
	position int
	phase    float64
	rate     beep.SampleRate
}

// NewMelody creates an endless streamer over notes; zero entries are rests
func NewMelody(notes []float64, rate beep.SampleRate) beep.Streamer {
	return &melody{
		notes:   notes,
		stepLen: rate.N(constant.MusicStepDuration),
		rate:    rate,
	}
}

func (m *melody) Stream(samples [][2]float64) (n int, ok bool) {
	if len(m.notes) == 0 || m.stepLen == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}

	for i := range samples {
		freq := m.notes[m.step]
		var val float64
		if freq > 0 {
			decay := math.Exp(-4 * float64(m.position) / float64(m.stepLen))
			val = math.Sin(2*math.Pi*m.phase) * decay
			m.phase += freq / float64(m.rate)
			m.phase -= math.Floor(m.phase)
		}
		samples[i][0] = val
		samples[i][1] = val

		m.position++
		if m.position >= m.stepLen {
			m.position = 0
			m.step = (m.step + 1) % len(m.notes)
		}
	}
	return len(samples), true
}

func (m *melody) Err() error { return nil }

// NewMusic builds the background loop: melody over a sine drone
func NewMusic(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	layers := []beep.Streamer{
		newVolume(NewMelody(constant.MusicPattern, rate), constant.MusicLeadLevel),
	}
	if drone, err := generators.SineTone(rate, constant.MusicDroneFreq); err == nil {
		layers = append(layers, newVolume(drone, constant.MusicDroneLevel))
	}

	return newVolume(beep.Mix(layers...), cfg.MusicVolume*cfg.MasterVolume)
}
