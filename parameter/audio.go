package parameter

import "time"

// Proximity Cue
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// CueDuration is the length of one proximity ping
	CueDuration = 60 * time.Millisecond

	// CueCooldownFrames is the minimum number of frames between two pings
	CueCooldownFrames = 6

	// CueBaseFrequency is the ping pitch for source 0; each further source raises it by CueFrequencyStep
	CueBaseFrequency = 440.0
	CueFrequencyStep = 110.0

	// CueMaxVolume caps the exponential volume boost derived from approach count
	CueMaxVolume = 0.0
	CueMinVolume = -3.0
)
