package engine

// FrameStats summarizes one frame
type FrameStats struct {
	// Frame is the number of physics frames completed so far
	Frame uint64
	// Approaches counts particles that entered a source's capture radius this frame
	Approaches int
	// ApproachSource is the source with the most approaches this frame, -1 when none
	ApproachSource int
	// NonFinite is the number of particles whose state is NaN or Inf
	NonFinite int
	// NewlyNonFinite is the number of particles that turned non-finite this frame
	NewlyNonFinite int
}

// Observer is notified after every physics frame, on the frame loop goroutine
type Observer interface {
	OnFrame(sim *Simulation, stats FrameStats)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(sim *Simulation, stats FrameStats)

// OnFrame calls f
func (f ObserverFunc) OnFrame(sim *Simulation, stats FrameStats) {
	f(sim, stats)
}
