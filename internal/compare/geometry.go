package compare

import "math"

// DefaultAngleTolerance is the angle window, in degrees, used when callers
// have no configured value.
const DefaultAngleTolerance = 5.0

// Point is a position on the drawing canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// NormalizeAngle maps degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// AngleDifference returns the smallest separation between a and b in
// degrees, accounting for wraparound. The result lies in [0, 180].
func AngleDifference(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	return math.Min(d, 360-d)
}

// AnglesSimilar reports whether a and b differ by at most tolerance degrees.
func AnglesSimilar(a, b, tolerance float64) bool {
	return AngleDifference(a, b) <= tolerance
}
