package geo

import "math"

// epsilon is the machine epsilon for float64 (the gap between 1.0 and the
// next representable value).
const epsilon = 0x1p-52

// Round snaps v to the device pixel grid using fn (math.Floor, math.Ceil or
// math.Round). When scale is greater than 1, v is scaled up so that rounding
// happens at pixel resolution rather than layout-unit resolution.
func Round(v, scale float64, fn func(float64) float64) float64 {
	if scale > 1 {
		return fn(v*scale) / scale
	}
	return fn(v)
}

// ApproxEqual reports whether a and b differ by at most machine epsilon.
// Use it to decide whether layout actually moved an element, ignoring
// floating-point noise.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}
