package reed

import "math"

// Point is a bare 2D coordinate. Post-process smoothing yields Points:
// the final geometry is presentation-only and carries no timestamps.
type Point struct {
	X, Y float64
}

// PointerPoint is a single timestamped input sample from a pointer, stylus,
// or touch stream. Timestamp comes from a caller-supplied monotonic clock in
// milliseconds. Coordinates are in whatever unit space the caller renders in
// (typically canvas pixels).
//
// Pressure is optional; HasPressure reports whether the source device
// supplied one. The typical range is 0-1 but no range is enforced.
type PointerPoint struct {
	X, Y        float64
	Timestamp   float64
	Pressure    float64
	HasPressure bool
}

// Pos returns the sample's coordinate as a bare Point.
func (p PointerPoint) Pos() Point {
	return Point{X: p.X, Y: p.Y}
}

// dist is the Euclidean distance between (ax, ay) and (bx, by).
func dist(ax, ay, bx, by float64) float64 {
	dx := bx - ax
	dy := by - ay
	return math.Sqrt(dx*dx + dy*dy)
}
