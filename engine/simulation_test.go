package engine

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/gravity/config"
	"github.com/lixenwraith/gravity/physics"
	"github.com/lixenwraith/gravity/render"
)

func smallConfig(particles int) *config.Config {
	cfg := config.Default()
	cfg.Particles = particles
	return cfg
}

func mustNew(t *testing.T, cfg *config.Config) *Simulation {
	t.Helper()
	sim, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return sim
}

func TestNewBuildsReferenceScene(t *testing.T) {
	sim := mustNew(t, config.Default())

	if got := len(sim.Sources()); got != 2 {
		t.Fatalf("Expected 2 sources, got %d", got)
	}
	if got := sim.Sources()[1].Position(); got != (r2.Vec{X: 1200, Y: 500}) {
		t.Errorf("Expected second source at (1200,500), got %v", got)
	}

	particles := sim.Particles()
	if len(particles) != 2000 {
		t.Fatalf("Expected 2000 particles, got %d", len(particles))
	}

	first, last := particles[0], particles[1999]
	if first.Pos != (r2.Vec{X: 600, Y: 700}) || first.Vel != (r2.Vec{X: 4, Y: 0.2}) {
		t.Errorf("Unexpected first particle %v %v", first.Pos, first.Vel)
	}
	wantVY := 0.2 + (0.1/2000.0)*1999
	if last.Vel.Y != wantVY {
		t.Errorf("Expected last vy %v, got %v", wantVY, last.Vel.Y)
	}
	if first.Color() != render.RGBBlue {
		t.Errorf("Expected first particle blue, got %v", first.Color())
	}
	if c := particles[1000].Color(); c != render.RGBGreen {
		t.Errorf("Expected middle particle green, got %v", c)
	}
	if sim.State() != StateRunning || sim.FrameNumber() != 0 {
		t.Errorf("Expected fresh running state, got %v at %d", sim.State(), sim.FrameNumber())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.FPS = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
}

func TestFrameStateMachine(t *testing.T) {
	sim := mustNew(t, smallConfig(10))

	_, state := sim.Frame(false)
	if state != StateRunning || sim.FrameNumber() != 1 {
		t.Fatalf("Expected running after one frame, got %v at %d", state, sim.FrameNumber())
	}

	before := sim.Digest()
	_, state = sim.Frame(true)
	if state != StateClosed {
		t.Fatalf("Expected CLOSED after close request, got %v", state)
	}
	if sim.Digest() != before || sim.FrameNumber() != 1 {
		t.Error("Expected close frame not to step physics")
	}

	// Closed is terminal even without further close requests
	_, state = sim.Frame(false)
	if state != StateClosed || sim.FrameNumber() != 1 || sim.Digest() != before {
		t.Error("Expected frames after CLOSED to be no-ops")
	}
}

func TestFrameMatchesPhysicsAdvance(t *testing.T) {
	cfg := smallConfig(25)
	sim := mustNew(t, cfg)

	ref := mustNew(t, smallConfig(25))
	particles := append([]physics.Particle(nil), ref.Particles()...)

	for i := 0; i < 60; i++ {
		sim.Frame(false)
		physics.Advance(particles, ref.Sources(), physics.Sequential, 0)
	}

	for i, p := range sim.Particles() {
		if p.Pos != particles[i].Pos {
			t.Fatalf("Particle %d diverged from sequential advance: %v vs %v", i, p.Pos, particles[i].Pos)
		}
	}
}

func TestDigestDeterminism(t *testing.T) {
	run := func(cfg *config.Config, frames int) uint64 {
		sim := mustNew(t, cfg)
		for i := 0; i < frames; i++ {
			sim.Frame(false)
		}
		return sim.Digest()
	}

	a := run(smallConfig(200), 300)
	b := run(smallConfig(200), 300)
	if a != b {
		t.Errorf("Expected identical digests, got %x and %x", a, b)
	}

	if c := run(smallConfig(200), 301); c == a {
		t.Error("Expected digest to change with one more frame")
	}

	simultaneous := smallConfig(200)
	simultaneous.Scheme = physics.Simultaneous.String()
	if d := run(simultaneous, 300); d == a {
		t.Error("Expected simultaneous scheme to produce a different digest")
	}
}

func TestNonFiniteTracking(t *testing.T) {
	tests := []struct {
		name        string
		minDistance float64
		wantNew     int
	}{
		{"Unguarded corrupts every particle", 0, 5},
		{"Softened stays finite", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig(5)
			// Source sits exactly on the spawn point
			cfg.Sources = []config.Source{{X: cfg.Spawn.X, Y: cfg.Spawn.Y, Strength: 7000}}
			cfg.MinDistance = tt.minDistance
			sim := mustNew(t, cfg)

			stats, _ := sim.Frame(false)
			if stats.NewlyNonFinite != tt.wantNew || stats.NonFinite != tt.wantNew {
				t.Fatalf("Expected %d non-finite, got new=%d total=%d", tt.wantNew, stats.NewlyNonFinite, stats.NonFinite)
			}

			stats, _ = sim.Frame(false)
			if stats.NewlyNonFinite != 0 || stats.NonFinite != tt.wantNew {
				t.Errorf("Expected stable count %d, got new=%d total=%d", tt.wantNew, stats.NewlyNonFinite, stats.NonFinite)
			}
		})
	}
}

func TestApproachCounting(t *testing.T) {
	cfg := smallConfig(4)
	cfg.Spawn.VelYSpread = 0
	cfg.CaptureRadius = 12
	// Zero-strength source two units ahead of the first step
	cfg.Sources = []config.Source{
		{X: 100, Y: 100, Strength: 0},
		{X: cfg.Spawn.X + 6, Y: cfg.Spawn.Y, Strength: 0},
	}
	sim := mustNew(t, cfg)

	stats, _ := sim.Frame(false)
	if stats.Approaches != 4 || stats.ApproachSource != 1 {
		t.Fatalf("Expected 4 approaches at source 1, got %d at %d", stats.Approaches, stats.ApproachSource)
	}

	stats, _ = sim.Frame(false)
	if stats.Approaches != 0 || stats.ApproachSource != -1 {
		t.Errorf("Expected no new approaches while inside radius, got %d at %d", stats.Approaches, stats.ApproachSource)
	}
}

func TestObserversNotified(t *testing.T) {
	sim := mustNew(t, smallConfig(3))

	var frames []uint64
	sim.AddObserver(ObserverFunc(func(s *Simulation, stats FrameStats) {
		if s != sim {
			t.Error("Expected observer to receive the simulation")
		}
		frames = append(frames, stats.Frame)
	}))

	sim.Frame(false)
	sim.Frame(false)
	sim.Frame(true)
	sim.Frame(false)

	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Errorf("Expected observer calls for frames 1 and 2, got %v", frames)
	}
}

type drawCall struct {
	radius float64
	color  render.RGB
}

type recordingSurface struct {
	clears int
	calls  []drawCall
}

func (s *recordingSurface) Clear(render.RGB) { s.clears++ }

func (s *recordingSurface) FillCircle(_ r2.Vec, radius float64, c render.RGB) {
	s.calls = append(s.calls, drawCall{radius, c})
}

func (s *recordingSurface) Bounds() (float64, float64) { return 1600, 1000 }

func TestDrawOrderSourcesThenParticles(t *testing.T) {
	sim := mustNew(t, smallConfig(3))
	surf := &recordingSurface{}

	sim.Draw(surf)

	if surf.clears != 1 {
		t.Errorf("Expected one clear, got %d", surf.clears)
	}
	if len(surf.calls) != 5 {
		t.Fatalf("Expected 5 markers, got %d", len(surf.calls))
	}
	for i := 0; i < 2; i++ {
		if surf.calls[i] != (drawCall{10, render.RGBWhite}) {
			t.Errorf("Call %d: expected source marker, got %v", i, surf.calls[i])
		}
	}
	for i := 2; i < 5; i++ {
		if surf.calls[i].radius != 8 {
			t.Errorf("Call %d: expected particle marker, got %v", i, surf.calls[i])
		}
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "RUNNING" || StateClosed.String() != "CLOSED" {
		t.Error("Unexpected state names")
	}
}
