package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/gravity/parameter"
)

// Manager plays a short ping when particles pass close to a source
// Pitch identifies the source, loudness grows with the number of approaches
type Manager struct {
	mu          sync.Mutex
	cfg         *Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	hasPlayed   bool
	lastCue     uint64
	played      int
}

// NewManager creates a cue manager; Initialize must succeed before cues play
func NewManager(cfg *Config) *Manager {
	return &Manager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.rate, m.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	m.initialized = false
}

// Played returns the number of cues started
func (m *Manager) Played() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.played
}

// Cue plays a ping for count approaches to source during frame
// Returns false when muted, uninitialized, rate limited or nothing to report
func (m *Manager) Cue(frame uint64, source, count int) bool {
	if count <= 0 || source < 0 {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return false
	}
	if m.hasPlayed && frame < m.lastCue+m.cfg.CooldownFrames {
		return false
	}

	volume, silent := cueVolume(count, m.cfg.MasterVolume)
	if silent {
		return false
	}

	streamer, err := cueStreamer(m.rate, source, volume)
	if err != nil {
		return false
	}

	speaker.Lock()
	m.mixer.Add(streamer)
	speaker.Unlock()

	m.hasPlayed = true
	m.lastCue = frame
	m.played++
	return true
}

// cueFrequency returns the ping pitch for a source index
func cueFrequency(source int) float64 {
	return parameter.CueBaseFrequency + parameter.CueFrequencyStep*float64(source)
}

// cueVolume maps approach count and master volume to a base-2 exponent
// One approach plays at CueMinVolume, each doubling adds one step up to CueMaxVolume
func cueVolume(count int, master float64) (volume float64, silent bool) {
	if master <= 0 || count <= 0 {
		return 0, true
	}
	volume = min(parameter.CueMinVolume+math.Log2(float64(count)), parameter.CueMaxVolume)
	return volume + math.Log2(min(master, 1)), false
}

// cueStreamer builds one enveloped sine ping
func cueStreamer(rate beep.SampleRate, source int, volume float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, cueFrequency(source))
	if err != nil {
		return nil, fmt.Errorf("sine tone: %w", err)
	}

	length := rate.N(parameter.CueDuration)
	ping := newDecayEnvelope(beep.Take(length, tone), length)

	return &effects.Volume{
		Streamer: ping,
		Base:     2,
		Volume:   volume,
	}, nil
}
