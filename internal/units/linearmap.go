package units

import (
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/AgentOS/units/internal/shared/float"
)

// LinearMap is an affine transform y = x*Factor + Offset
type LinearMap struct {
	Factor float64
	Offset float64
}

// Identity maps every value to itself
var Identity = LinearMap{Factor: 1}

// NewLinearMap creates a map
func NewLinearMap(factor, offset float64) LinearMap {
	return LinearMap{Factor: factor, Offset: offset}
}

// Evaluate applies the map with a single rounding
func (m LinearMap) Evaluate(x float64) float64 {
	return gomath.FMA(x, m.Factor, m.Offset)
}

// Compose returns the map that applies m first, then next
func (m LinearMap) Compose(next LinearMap) LinearMap {
	return LinearMap{
		Factor: m.Factor * next.Factor,
		Offset: gomath.FMA(m.Offset, next.Factor, next.Offset),
	}
}

// Invert returns the inverse transform. Factor must be non-zero.
func (m LinearMap) Invert() LinearMap {
	return LinearMap{
		Factor: 1 / m.Factor,
		Offset: -m.Offset / m.Factor,
	}
}

func (m LinearMap) IsIdentity() bool { return m.Factor == 1 && m.Offset == 0 }
func (m LinearMap) HasOffset() bool  { return m.Offset != 0 }

// Equal compares factors and offsets within n ULPs of their magnitudes
func (m LinearMap) Equal(other LinearMap, n float64) bool {
	return float.EqualWithinULPs(m.Factor, other.Factor, n) &&
		float.EqualWithinULPs(m.Offset, other.Offset, n)
}

func (m LinearMap) String() string {
	return fmt.Sprintf("x*%g%+g", m.Factor, m.Offset)
}
