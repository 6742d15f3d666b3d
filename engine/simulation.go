package engine

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/gravity/config"
	"github.com/lixenwraith/gravity/physics"
	"github.com/lixenwraith/gravity/render"
)

// Simulation owns every source and particle for the lifetime of the process
// All methods must be called from the frame loop goroutine
type Simulation struct {
	cfg *config.Config

	sources   []physics.GravitySource
	particles []physics.Particle

	scheme        physics.Scheme
	minDist       float64
	captureRadius float64

	state State
	frame uint64

	// Per-particle tracking for FrameStats
	near      []bool
	nonFinite []bool
	nonCount  int
	approach  []int // per-source scratch

	orchestrator *render.Orchestrator
	observers    []Observer
}

// New builds the scene described by cfg
func New(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:           cfg,
		scheme:        cfg.IntegrationScheme(),
		minDist:       cfg.MinDistance,
		captureRadius: cfg.CaptureRadius,
		state:         StateRunning,
		orchestrator:  render.NewOrchestrator(render.RGBBlack),
	}

	s.sources = make([]physics.GravitySource, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		s.sources = append(s.sources, physics.NewGravitySource(src.X, src.Y, src.Strength).WithRadius(cfg.SourceRadius))
	}

	n := cfg.Particles
	s.particles = make([]physics.Particle, n)
	for i := range s.particles {
		vy := cfg.Spawn.VelY + (cfg.Spawn.VelYSpread/float64(n))*float64(i)
		p := physics.NewParticle(cfg.Spawn.X, cfg.Spawn.Y, cfg.Spawn.VelX, vy)
		p.SetColor(render.ValueToColor(float64(i) / float64(n)))
		p.SetRadius(cfg.ParticleRadius)
		s.particles[i] = p
	}

	s.near = make([]bool, n)
	s.nonFinite = make([]bool, n)
	s.approach = make([]int, len(s.sources))

	s.orchestrator.Register(sourceLayer{s}, render.PrioritySources)
	s.orchestrator.Register(particleLayer{s}, render.PriorityParticles)

	return s, nil
}

// AddObserver registers o to receive FrameStats after each physics frame
func (s *Simulation) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Register adds an extra drawable to the render pipeline (e.g. an overlay)
func (s *Simulation) Register(d render.Drawable, priority render.RenderPriority) {
	s.orchestrator.Register(d, priority)
}

// Frame advances the state machine by one frame
// A close request moves Running to Closed without stepping physics; Closed is terminal
func (s *Simulation) Frame(closeRequested bool) (FrameStats, State) {
	if s.state == StateClosed {
		return FrameStats{Frame: s.frame, ApproachSource: -1, NonFinite: s.nonCount}, s.state
	}
	if closeRequested {
		s.state = StateClosed
		log.Printf("Close requested after %d frames", s.frame)
		return FrameStats{Frame: s.frame, ApproachSource: -1, NonFinite: s.nonCount}, s.state
	}

	physics.Advance(s.particles, s.sources, s.scheme, s.minDist)
	s.frame++

	stats := s.collectStats()
	for _, o := range s.observers {
		o.OnFrame(s, stats)
	}
	return stats, s.state
}

// collectStats updates approach and non-finite tracking after a step
func (s *Simulation) collectStats() FrameStats {
	stats := FrameStats{Frame: s.frame, ApproachSource: -1}
	clear(s.approach)

	for i := range s.particles {
		p := &s.particles[i]

		if !s.nonFinite[i] && !p.Finite() {
			s.nonFinite[i] = true
			s.nonCount++
			stats.NewlyNonFinite++
			log.Printf("Particle %d became non-finite at frame %d (pos=%v vel=%v)", i, s.frame, p.Pos, p.Vel)
		}
		if s.nonFinite[i] {
			s.near[i] = false
			continue
		}

		idx, dist := physics.Nearest(p.Pos, s.sources)
		isNear := idx >= 0 && dist < s.captureRadius
		if isNear && !s.near[i] {
			stats.Approaches++
			s.approach[idx]++
		}
		s.near[i] = isNear
	}

	best := 0
	for i, c := range s.approach {
		if c > best {
			best = c
			stats.ApproachSource = i
		}
	}

	stats.NonFinite = s.nonCount
	return stats
}

// Draw clears the surface and renders all sources, then all particles
func (s *Simulation) Draw(surf render.Surface) {
	s.orchestrator.RenderFrame(surf)
}

// State returns the current loop state
func (s *Simulation) State() State {
	return s.state
}

// FrameNumber returns the number of physics frames completed
func (s *Simulation) FrameNumber() uint64 {
	return s.frame
}

// Config returns the configuration the scene was built from
func (s *Simulation) Config() *config.Config {
	return s.cfg
}

// Sources returns the sources in application order. Callers must not modify the slice
func (s *Simulation) Sources() []physics.GravitySource {
	return s.sources
}

// Particles returns the live particle slice. Callers must not modify it
func (s *Simulation) Particles() []physics.Particle {
	return s.particles
}

// Digest hashes the IEEE-754 bits of every particle position and velocity
// Identical configs stepped the same number of frames produce identical digests
func (s *Simulation) Digest() uint64 {
	d := xxhash.New()
	var buf [32]byte
	for i := range s.particles {
		p := &s.particles[i]
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(p.Pos.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(p.Pos.Y))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(p.Vel.X))
		binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(p.Vel.Y))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// String summarizes the simulation for logs
func (s *Simulation) String() string {
	return fmt.Sprintf("%s frame=%d particles=%d sources=%d scheme=%s digest=%016x",
		s.state, s.frame, len(s.particles), len(s.sources), s.scheme, s.Digest())
}

type sourceLayer struct{ s *Simulation }

func (l sourceLayer) Draw(surf render.Surface) {
	for _, src := range l.s.sources {
		src.Draw(surf)
	}
}

type particleLayer struct{ s *Simulation }

func (l particleLayer) Draw(surf render.Surface) {
	for i := range l.s.particles {
		l.s.particles[i].Draw(surf)
	}
}
