package terminal

import (
	"context"
	"time"

	"github.com/lixenwraith/gravity/engine"
)

// Run drives the frame loop at the configured frame rate until the simulation closes
// Each frame drains input, steps physics, renders and presents
// Context cancellation is treated as a close request
func Run(ctx context.Context, sim *engine.Simulation, scr *Screen) error {
	interval := time.Second / time.Duration(sim.Config().FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	scr.StartPolling()

	for {
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}

		closeRequested := scr.Drain() || ctx.Err() != nil
		if _, state := sim.Frame(closeRequested); state == engine.StateClosed {
			return nil
		}

		sim.Draw(scr)
		scr.Show()
	}
}
