package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Earcon identifies a short UI sound
type Earcon uint8

const (
	EarconMove Earcon = iota
	EarconActivate
	EarconDismiss
	EarconError
	EarconStartup
)

// earconSpec describes how to synthesize each earcon
type earconSpec struct {
	waveType int
	freq     float64
	duration float64
	gain     float64
}

var earconSpecs = map[Earcon]earconSpec{
	EarconMove:     {waveSine, 660, 0.05, 0.5},
	EarconActivate: {waveSine, 880, 0.10, 0.6},
	EarconDismiss:  {waveSaw, 330, 0.08, 0.4},
	EarconError:    {waveSquare, 196, 0.15, 0.5},
	EarconStartup:  {waveSine, 523, 0.20, 0.6},
}

// Player plays synthesized earcons through the system speaker.
// A failed backend degrades to a silent no-op player rather than an error
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates an uninitialized player
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. On failure the player stays silent and
// Play becomes a no-op; no error is surfaced to callers
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return nil // Silent mode, not an error
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues an earcon. Unknown earcons and uninitialized players are
// silent no-ops
func (p *Player) Play(e Earcon) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	spec, ok := earconSpecs[e]
	if !ok {
		return
	}

	tone := newTone(sampleRate, spec.waveType, spec.freq, spec.duration, spec.gain*p.volume)
	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
}

// SetVolume scales subsequent earcons, clamped to 0.0-1.0
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
}

// Enabled reports whether the backend opened
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Cleanup silences the mixer. The speaker itself has no close in beep
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
