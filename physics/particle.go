package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/gravity/parameter"
	"github.com/lixenwraith/gravity/render"
)

// Particle is a mobile point advanced by explicit Euler integration, one unit step per call
type Particle struct {
	Pos    r2.Vec
	Vel    r2.Vec
	marker render.Marker
}

// NewParticle creates a white particle at (x, y) moving with (vx, vy)
func NewParticle(x, y, vx, vy float64) Particle {
	pos := r2.Vec{X: x, Y: y}
	return Particle{
		Pos:    pos,
		Vel:    r2.Vec{X: vx, Y: vy},
		marker: render.NewMarker(parameter.ParticleRadius, render.RGBWhite, pos),
	}
}

// SetColor sets the fill color used when drawing
func (p *Particle) SetColor(c render.RGB) {
	p.marker.Color = c
}

// Color returns the fill color
func (p *Particle) Color() render.RGB {
	return p.marker.Color
}

// SetRadius sets the marker radius used when drawing
func (p *Particle) SetRadius(radius float64) {
	p.marker.Radius = radius
}

// Update applies one source: v += a(src); p += v
// Unguarded: a particle exactly on the source becomes non-finite for the rest of the run
func (p *Particle) Update(src GravitySource) {
	p.UpdateSoftened(src, 0)
}

// UpdateSoftened is Update with the inverse-square distance clamped to minDist
func (p *Particle) UpdateSoftened(src GravitySource, minDist float64) {
	p.Step(Acceleration(p.Pos, src, minDist))
}

// Step performs one explicit Euler step with the given acceleration
func (p *Particle) Step(accel r2.Vec) {
	p.Vel = r2.Add(p.Vel, accel)
	p.Pos = r2.Add(p.Pos, p.Vel)
}

// Finite reports whether position and velocity are free of NaN and Inf
func (p *Particle) Finite() bool {
	return render.IsFinite(p.Pos) && render.IsFinite(p.Vel)
}

// Draw renders the particle at its current position
func (p *Particle) Draw(s render.Surface) {
	p.marker.SetPosition(p.Pos)
	p.marker.Draw(s)
}
