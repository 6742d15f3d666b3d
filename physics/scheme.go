package physics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Scheme selects how multiple sources combine within one frame
type Scheme int

const (
	// Sequential applies sources one after another; each update reads the position
	// left by the previous one, so trajectories depend on source order
	Sequential Scheme = iota
	// Simultaneous sums every source's pull at the pre-frame position, then takes one step
	Simultaneous
)

var schemeNames = map[Scheme]string{
	Sequential:   "sequential",
	Simultaneous: "simultaneous",
}

// String returns the config name of the scheme
func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme resolves a config name, empty selects Sequential
func ParseScheme(name string) (Scheme, error) {
	if name == "" {
		return Sequential, nil
	}
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return Sequential, fmt.Errorf("unknown integration scheme %q", name)
}

// Advance moves every particle by one frame against all sources
// Sources are applied in slice order, particles in slice order within each source
func Advance(particles []Particle, sources []GravitySource, scheme Scheme, minDist float64) {
	switch scheme {
	case Simultaneous:
		for i := range particles {
			accel := NetAcceleration(particles[i].Pos, sources, minDist)
			particles[i].Step(accel)
		}
	default:
		for _, src := range sources {
			for i := range particles {
				particles[i].UpdateSoftened(src, minDist)
			}
		}
	}
}

// Nearest returns the index of the closest source and the distance to it, -1 when there are none
func Nearest(pos r2.Vec, sources []GravitySource) (int, float64) {
	best, bestDist := -1, 0.0
	for i, src := range sources {
		d := r2.Norm(r2.Sub(src.pos, pos))
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
