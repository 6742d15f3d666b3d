package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Marker is a fixed-size filled circle with settable position
type Marker struct {
	Center r2.Vec
	Radius float64
	Color  RGB
}

// NewMarker creates a marker at the given position
func NewMarker(radius float64, color RGB, center r2.Vec) Marker {
	return Marker{Center: center, Radius: radius, Color: color}
}

// SetPosition moves the marker
func (m *Marker) SetPosition(center r2.Vec) {
	m.Center = center
}

// Draw renders the marker; skipped when the center is not finite
func (m Marker) Draw(s Surface) {
	if !IsFinite(m.Center) {
		return
	}
	s.FillCircle(m.Center, m.Radius, m.Color)
}

// IsFinite reports whether both components are neither NaN nor infinite
func IsFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
