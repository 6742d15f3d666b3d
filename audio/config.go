package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/gravity/parameter"
)

// Config holds proximity cue settings
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0.0 - 1.0
	SampleRate   int
	// CooldownFrames is the minimum frame gap between two cues
	CooldownFrames uint64
}

// DefaultConfig returns cue settings with audio disabled
func DefaultConfig() *Config {
	return &Config{
		Enabled:        false,
		MasterVolume:   0.5,
		SampleRate:     parameter.AudioSampleRate,
		CooldownFrames: parameter.CueCooldownFrames,
	}
}

// LoadConfig applies GRAVITY_AUDIO_* environment variables over the defaults
// Unparseable values are ignored
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("GRAVITY_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv("GRAVITY_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if sampleRate := os.Getenv("GRAVITY_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
