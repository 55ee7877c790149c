// Package float provides ULP-aware floating-point comparison helpers.
//
// Conversion maps are composed from several rounded products, so results are
// compared against tolerances proportional to the magnitude of the operands
// rather than with ==.
//
// Example Usage:
//
//	tol := float.Tolerance(3, expected, actual)
//	if !float.Equals(expected, actual, tol) {
//		// ...
//	}
package float

import (
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Equals reports whether |a - b| <= tolerance.
func Equals(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	return scalar.EqualWithinAbs(a, b, tolerance)
}

// ULP returns the gap between |x| and the next representable float64 above it.
func ULP(x float64) float64 {
	if gomath.IsNaN(x) {
		return gomath.NaN()
	}
	x = gomath.Abs(x)
	if gomath.IsInf(x, 0) {
		return gomath.Inf(1)
	}
	if x == gomath.MaxFloat64 {
		return x - gomath.Nextafter(x, 0)
	}
	return gomath.Nextafter(x, gomath.Inf(1)) - x
}

// Tolerance returns n ULPs at the largest magnitude among values.
func Tolerance(n float64, values ...float64) float64 {
	var largest float64
	for _, v := range values {
		if a := gomath.Abs(v); a > largest {
			largest = a
		}
	}
	return n * ULP(largest)
}

// EqualWithinULPs reports whether a and b are within n ULPs of the larger
// magnitude of the two.
func EqualWithinULPs(a, b, n float64) bool {
	return Equals(a, b, Tolerance(n, a, b))
}

// Validate checks if a number is finite.
func Validate(x float64, name string) error {
	if gomath.IsNaN(x) {
		return fmt.Errorf("%s is NaN", name)
	}
	if gomath.IsInf(x, 0) {
		return fmt.Errorf("%s is infinite", name)
	}
	return nil
}
