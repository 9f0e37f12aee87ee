package random

import "math"

// InRange draws a value on the lattice min, min+step, ... that does not
// exceed max. When (max-min) is not a whole number of steps the trailing
// partial step is unreachable: the step count is floored.
func InRange(min, max, step float64, rng func() float64) float64 {
	if step <= 0 || max <= min {
		return min
	}
	steps := math.Floor((max - min) / step)
	k := math.Floor(rng() * (steps + 1))
	return min + k*step
}

// RoundTo rounds value to the given number of decimal places. The result is
// display grade: ordinary binary floating point artifacts still apply.
func RoundTo(value float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}
