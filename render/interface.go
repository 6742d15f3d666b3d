package render

import "gonum.org/v1/gonum/spatial/r2"

// Surface is the drawing capability a backend exposes to the scene
// Coordinates are world units; backends scale to their own resolution
type Surface interface {
	// Clear fills the whole surface with c
	Clear(c RGB)
	// FillCircle draws a filled disk; non-finite centers are ignored by callers
	FillCircle(center r2.Vec, radius float64, c RGB)
	// Bounds returns the world extent the surface maps
	Bounds() (width, height float64)
}

// Drawable is implemented by anything with visual output
type Drawable interface {
	Draw(s Surface)
}

// VisibilityToggle is optionally implemented for runtime enable/disable
type VisibilityToggle interface {
	IsVisible() bool
}
