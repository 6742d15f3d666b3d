package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Acceleration returns the pull of src on a point at pos
// a = (d/|d|) * strength * (1/|d|)^2 where d points from pos to the source
// minDist <= 0 leaves the law unguarded: |d| == 0 yields NaN components
// minDist > 0 clamps |d| from below and returns zero for coincident points,
// capping the magnitude at |strength|/minDist^2
func Acceleration(pos r2.Vec, src GravitySource, minDist float64) r2.Vec {
	d := r2.Sub(src.pos, pos)
	dist := math.Sqrt(d.X*d.X + d.Y*d.Y)

	if minDist > 0 {
		if dist == 0 {
			return r2.Vec{}
		}
		if dist < minDist {
			// Direction still from true distance, falloff from clamped one
			dir := r2.Scale(1/dist, d)
			inv := 1 / minDist
			return r2.Scale(src.strength*inv*inv, dir)
		}
	}

	inv := 1 / dist
	dir := r2.Scale(inv, d)
	dropoff := inv * inv

	return r2.Vec{
		X: dir.X * src.strength * dropoff,
		Y: dir.Y * src.strength * dropoff,
	}
}

// NetAcceleration returns the superposition of every source's pull at pos
func NetAcceleration(pos r2.Vec, sources []GravitySource, minDist float64) r2.Vec {
	var sum r2.Vec
	for _, src := range sources {
		sum = r2.Add(sum, Acceleration(pos, src, minDist))
	}
	return sum
}
