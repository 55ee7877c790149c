package units

import (
	"fmt"
	"math"
	"math/big"

	"github.com/GriffinCanCode/AgentOS/units/internal/shared/float"
)

// maxRatBits bounds the exact representation of a composed map
const maxRatBits = 1 << 16

// ratMap is a LinearMap carried in exact rationals while a definition chain is
// being composed. It is rounded to float64 once, by float.
type ratMap struct {
	factor *big.Rat
	offset *big.Rat
}

func identityRat() ratMap {
	return ratMap{factor: big.NewRat(1, 1), offset: new(big.Rat)}
}

// ratFromItem builds the map (value + off) * num/den
func ratFromItem(num, den, off float64) (ratMap, error) {
	for _, v := range []struct {
		x    float64
		name string
	}{{num, "numerator"}, {den, "denominator"}, {off, "offset"}} {
		if err := float.Validate(v.x, v.name); err != nil {
			return ratMap{}, err
		}
	}
	if num == 0 {
		return ratMap{}, fmt.Errorf("numerator is zero")
	}
	if den == 0 {
		return ratMap{}, fmt.Errorf("denominator is zero")
	}

	n := new(big.Rat).SetFloat64(num)
	d := new(big.Rat).SetFloat64(den)
	factor := n.Quo(n, d)
	offset := new(big.Rat).SetFloat64(off)
	return ratMap{factor: factor, offset: offset.Mul(offset, factor)}, nil
}

func (m ratMap) hasOffset() bool {
	return m.offset.Sign() != 0
}

func (m ratMap) isIdentity() bool {
	return !m.hasOffset() && m.factor.Cmp(big.NewRat(1, 1)) == 0
}

// compose applies m first, then next
func (m ratMap) compose(next ratMap) ratMap {
	f := new(big.Rat).Mul(m.factor, next.factor)
	o := new(big.Rat).Mul(m.offset, next.factor)
	o.Add(o, next.offset)
	return ratMap{factor: f, offset: o}
}

// multiply combines two offset-free maps as a product of units
func (m ratMap) multiply(other ratMap) (ratMap, bool) {
	if m.hasOffset() || other.hasOffset() {
		return ratMap{}, false
	}
	return ratMap{factor: new(big.Rat).Mul(m.factor, other.factor), offset: new(big.Rat)}, true
}

// raise returns the map of a unit raised to power n. Only offset-free maps can
// be raised to a power other than 1.
func (m ratMap) raise(n int) (ratMap, bool) {
	switch {
	case n == 1:
		return m, true
	case n == 0:
		return identityRat(), true
	case m.hasOffset():
		return ratMap{}, false
	}

	base := m.factor
	if n < 0 {
		base = new(big.Rat).Inv(m.factor)
		n = -n
	}
	e := big.NewInt(int64(n))
	num := new(big.Int).Exp(base.Num(), e, nil)
	den := new(big.Int).Exp(base.Denom(), e, nil)
	return ratMap{factor: new(big.Rat).SetFrac(num, den), offset: new(big.Rat)}, true
}

// bits is the size of the exact factor and offset
func (m ratMap) bits() int {
	return m.factor.Num().BitLen() + m.factor.Denom().BitLen() +
		m.offset.Num().BitLen() + m.offset.Denom().BitLen()
}

// canRaise reports whether raising m to n stays within maxRatBits
func (m ratMap) canRaise(n int) bool {
	if n < 0 {
		n = -n
	}
	return n <= 1 || m.bits() <= maxRatBits/n
}

// between returns the map converting values of from into values of to, given
// both maps to a common base: x_to = (x_from*ff + of - ot) / ft
func between(from, to ratMap) ratMap {
	f := new(big.Rat).Quo(from.factor, to.factor)
	o := new(big.Rat).Sub(from.offset, to.offset)
	o.Quo(o, to.factor)
	return ratMap{factor: f, offset: o}
}

// check rejects maps whose rounded factor or offset leaves the float64 range
func (m ratMap) check() error {
	f, _ := m.factor.Float64()
	if f == 0 || math.IsInf(f, 0) {
		return fmt.Errorf("factor of magnitude 2^%d is outside the float64 range", magnitude(m.factor))
	}
	if o, _ := m.offset.Float64(); math.IsInf(o, 0) {
		return fmt.Errorf("offset of magnitude 2^%d is outside the float64 range", magnitude(m.offset))
	}
	return nil
}

func magnitude(r *big.Rat) int {
	return r.Num().BitLen() - r.Denom().BitLen()
}

func (m ratMap) float() LinearMap {
	f, _ := m.factor.Float64()
	o, _ := m.offset.Float64()
	return LinearMap{Factor: f, Offset: o}
}
