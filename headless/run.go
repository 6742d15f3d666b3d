// Package headless drives a simulation without any display or frame cap
package headless

import (
	"context"
	"log"

	"github.com/lixenwraith/gravity/engine"
)

// Run steps sim until it has completed frames frames (0 runs until cancelled)
// Cancellation is delivered to the state machine as a close request, so the
// simulation always ends CLOSED
func Run(ctx context.Context, sim *engine.Simulation, frames uint64) engine.FrameStats {
	var last engine.FrameStats
	for {
		done := ctx.Err() != nil || (frames > 0 && sim.FrameNumber() >= frames)

		stats, state := sim.Frame(done)
		if state == engine.StateClosed {
			log.Printf("Headless run finished: %s", sim)
			return last
		}
		last = stats
	}
}
