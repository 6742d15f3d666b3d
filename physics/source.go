package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/gravity/parameter"
	"github.com/lixenwraith/gravity/render"
)

// GravitySource is a fixed point exerting inverse-square pull on particles
// Position and strength never change after construction
// Strength 0 exerts no force, negative strength repels
type GravitySource struct {
	pos      r2.Vec
	strength float64
	marker   render.Marker
}

// NewGravitySource creates a source at (x, y) with the given strength
func NewGravitySource(x, y, strength float64) GravitySource {
	pos := r2.Vec{X: x, Y: y}
	return GravitySource{
		pos:      pos,
		strength: strength,
		marker:   render.NewMarker(parameter.SourceRadius, render.RGBWhite, pos),
	}
}

// WithRadius returns a copy drawn with a different marker radius
func (s GravitySource) WithRadius(radius float64) GravitySource {
	s.marker.Radius = radius
	return s
}

// Position returns the source location
func (s GravitySource) Position() r2.Vec {
	return s.pos
}

// Strength returns the pull strength (acceleration at unit distance)
func (s GravitySource) Strength() float64 {
	return s.strength
}

// Draw renders the source marker
func (s GravitySource) Draw(surf render.Surface) {
	s.marker.Draw(surf)
}
