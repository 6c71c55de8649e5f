// Package physics provides overlap tests, distances and steering helpers.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Within reports whether two points are strictly closer than radius.
func Within(x1, y1, x2, y2, radius float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Toward returns a velocity of the given speed pointing from (x1,y1) to (x2,y2).
// Coincident points yield a zero vector.
func Toward(x1, y1, x2, y2, speed float64) (vx, vy float64) {
	dx := x2 - x1
	dy := y2 - y1
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	angle := math.Atan2(dy, dx)
	return math.Cos(angle) * speed, math.Sin(angle) * speed
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
