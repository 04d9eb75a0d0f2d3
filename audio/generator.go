package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// toneStreamer generates a fixed-length waveform with an attack/release
// envelope. Implements beep.Streamer
type toneStreamer struct {
	waveType int
	freq     float64
	gain     float64

	sampleRate     beep.SampleRate
	total          int
	attackSamples  int
	releaseSamples int

	pos   int
	phase float64
}

// newTone builds a streamer for the given waveform
func newTone(sr beep.SampleRate, waveType int, freq, durationSec, gain float64) *toneStreamer {
	total := int(float64(sr) * durationSec)
	attack := int(float64(sr) * 0.005)
	release := int(float64(sr) * 0.030)
	if attack+release > total {
		attack = total / 4
		release = total / 4
	}
	return &toneStreamer{
		waveType:       waveType,
		freq:           freq,
		gain:           gain,
		sampleRate:     sr,
		total:          total,
		attackSamples:  attack,
		releaseSamples: release,
	}
}

// Stream implements beep.Streamer
func (t *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	phaseInc := t.freq / float64(t.sampleRate)
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}

		var v float64
		switch t.waveType {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			if t.phase < 0.5 {
				v = 1.0
			} else {
				v = -1.0
			}
		case waveSaw:
			v = 2.0 * (t.phase - 0.5)
		case waveNoise:
			v = rand.Float64()*2 - 1
		}

		v *= t.envelope() * t.gain
		samples[i][0] = v
		samples[i][1] = v

		t.phase += phaseInc
		if t.phase >= 1.0 {
			t.phase -= 1.0
		}
		t.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (t *toneStreamer) Err() error { return nil }

// envelope returns the attack/release gain at the current position
func (t *toneStreamer) envelope() float64 {
	if t.pos < t.attackSamples && t.attackSamples > 0 {
		return float64(t.pos) / float64(t.attackSamples)
	}
	releaseStart := t.total - t.releaseSamples
	if t.pos >= releaseStart && t.releaseSamples > 0 {
		return float64(t.total-t.pos) / float64(t.releaseSamples)
	}
	return 1.0
}
