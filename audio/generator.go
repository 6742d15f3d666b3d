package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// decayEnvelope fades a streamer out exponentially over its length to avoid clicks
type decayEnvelope struct {
	src    beep.Streamer
	length int
	pos    int
}

// newDecayEnvelope wraps src, which is expected to end after length samples
func newDecayEnvelope(src beep.Streamer, length int) beep.Streamer {
	return &decayEnvelope{src: src, length: max(length, 1)}
}

func (e *decayEnvelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(e.pos) / float64(e.length)
		// Short linear attack then exponential decay
		env := math.Exp(-t * 5)
		if attack := float64(e.pos) / (0.05 * float64(e.length)); attack < 1 {
			env *= attack
		}
		samples[i][0] *= env
		samples[i][1] *= env
		e.pos++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error {
	return e.src.Err()
}
