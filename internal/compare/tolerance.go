// Package compare holds the tolerance, angle, distance and unit comparisons
// the validation engine scores answers with.
package compare

import "math"

// ToleranceKind selects how a tolerance bound is interpreted.
type ToleranceKind string

const (
	Absolute ToleranceKind = "absolute"
	Percent  ToleranceKind = "percent"
)

// Valid reports whether k is a known tolerance kind.
func (k ToleranceKind) Valid() bool {
	return k == Absolute || k == Percent
}

// ApproximatelyEqual reports whether value is within tolerance of expected.
// For a percent tolerance against an expected value of zero, the tolerance
// is used as an absolute bound on |value|.
func ApproximatelyEqual(value, expected, tolerance float64, kind ToleranceKind) bool {
	if kind == Percent {
		if expected == 0 {
			return math.Abs(value) <= tolerance
		}
		return math.Abs(value-expected)/math.Abs(expected)*100 <= tolerance
	}
	return math.Abs(value-expected) <= tolerance
}

// PercentError returns |value-expected| as a percentage of |expected|.
// Against zero it is 0 for an exact match and +Inf otherwise.
func PercentError(value, expected float64) float64 {
	if expected == 0 {
		if value == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs(value-expected) / math.Abs(expected) * 100
}

// SameSign reports whether value and expected agree in sign. Zero agrees
// with everything.
func SameSign(value, expected float64) bool {
	if value == 0 || expected == 0 {
		return true
	}
	return (value > 0) == (expected > 0)
}
