package units

import (
	gomath "math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearMapEvaluate(t *testing.T) {
	m := NewLinearMap(1.8, 32)
	assert.Equal(t, 212.0, m.Evaluate(100))
	assert.Equal(t, -40.0, m.Evaluate(-40))
	assert.Equal(t, 5.0, Identity.Evaluate(5))
	assert.True(t, gomath.IsNaN(m.Evaluate(gomath.NaN())))
}

func TestLinearMapCompose(t *testing.T) {
	toFahrenheit := NewLinearMap(1.8, 32)
	double := NewLinearMap(2, 0)

	composed := toFahrenheit.Compose(double)
	assert.Equal(t, NewLinearMap(3.6, 64), composed)
	assert.Equal(t, double.Evaluate(toFahrenheit.Evaluate(10)), composed.Evaluate(10))

	assert.Equal(t, toFahrenheit, Identity.Compose(toFahrenheit))
	assert.Equal(t, toFahrenheit, toFahrenheit.Compose(Identity))
}

func TestLinearMapInvert(t *testing.T) {
	m := NewLinearMap(4, 8)
	inv := m.Invert()
	assert.Equal(t, NewLinearMap(0.25, -2), inv)
	assert.Equal(t, 3.0, inv.Evaluate(m.Evaluate(3)))
	assert.True(t, m.Compose(inv).IsIdentity())
}

func TestLinearMapPredicates(t *testing.T) {
	assert.True(t, Identity.IsIdentity())
	assert.False(t, Identity.HasOffset())
	assert.True(t, NewLinearMap(1, 273.15).HasOffset())
	assert.False(t, NewLinearMap(1, 273.15).IsIdentity())
	assert.True(t, NewLinearMap(0.1+0.2, 0).Equal(NewLinearMap(0.3, 0), 1))
	assert.False(t, NewLinearMap(0.3, 0).Equal(NewLinearMap(0.31, 0), 3))
	assert.Equal(t, "x*1.8+32", NewLinearMap(1.8, 32).String())
	assert.Equal(t, "x*2-1", NewLinearMap(2, -1).String())
}

func TestRatMap(t *testing.T) {
	t.Run("from item", func(t *testing.T) {
		m, err := ratFromItem(5, 9, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, m.factor.Cmp(big.NewRat(5, 9)))
		assert.False(t, m.hasOffset())

		shifted, err := ratFromItem(5, 9, -32)
		require.NoError(t, err)
		assert.Equal(t, 0, shifted.offset.Cmp(big.NewRat(-160, 9)))

		_, err = ratFromItem(1, 0, 0)
		assert.ErrorContains(t, err, "denominator is zero")
		_, err = ratFromItem(0, 1, 0)
		assert.ErrorContains(t, err, "numerator is zero")
		_, err = ratFromItem(gomath.Inf(1), 1, 0)
		assert.ErrorContains(t, err, "numerator is infinite")
		_, err = ratFromItem(1, 1, gomath.NaN())
		assert.ErrorContains(t, err, "offset is NaN")
	})

	t.Run("compose keeps thirds exact", func(t *testing.T) {
		third, _ := ratFromItem(1, 3, 0)
		three, _ := ratFromItem(3, 1, 0)
		assert.True(t, third.compose(three).isIdentity())
	})

	t.Run("raise", func(t *testing.T) {
		m, _ := ratFromItem(10, 1, 0)
		sq, ok := m.raise(2)
		require.True(t, ok)
		assert.Equal(t, 100.0, sq.float().Factor)

		inv, ok := m.raise(-3)
		require.True(t, ok)
		assert.Equal(t, 0, inv.factor.Cmp(big.NewRat(1, 1000)))

		zero, ok := m.raise(0)
		require.True(t, ok)
		assert.True(t, zero.isIdentity())

		shifted, _ := ratFromItem(1, 1, 273.15)
		same, ok := shifted.raise(1)
		require.True(t, ok)
		assert.True(t, same.hasOffset())
		_, ok = shifted.raise(2)
		assert.False(t, ok)
		_, ok = shifted.raise(-1)
		assert.False(t, ok)
		none, ok := shifted.raise(0)
		require.True(t, ok)
		assert.True(t, none.isIdentity())
	})

	t.Run("raise large powers", func(t *testing.T) {
		km, _ := ratFromItem(1000, 1, 0)
		p, ok := km.raise(-64)
		require.True(t, ok)
		want := new(big.Rat).SetFrac(big.NewInt(1), new(big.Int).Exp(big.NewInt(1000), big.NewInt(64), nil))
		assert.Equal(t, 0, p.factor.Cmp(want))
		assert.True(t, km.canRaise(64))

		tiny, _ := ratFromItem(1e-300, 1, 0)
		assert.False(t, tiny.canRaise(64))
		assert.False(t, tiny.canRaise(-64))
		assert.True(t, tiny.canRaise(1))
		assert.True(t, tiny.canRaise(-1))
	})

	t.Run("check range", func(t *testing.T) {
		huge, _ := ratFromItem(1e300, 1, 0)
		assert.NoError(t, huge.check())
		sq, _ := huge.raise(2)
		assert.ErrorContains(t, sq.check(), "factor of magnitude")
		inv, _ := huge.raise(-2)
		assert.ErrorContains(t, inv.check(), "outside the float64 range")

		shifted, _ := ratFromItem(1, 1, 1e300)
		scale, _ := ratFromItem(1e-10, 1, 0)
		assert.ErrorContains(t, between(shifted, scale).check(), "offset of magnitude")
	})

	t.Run("multiply rejects offsets", func(t *testing.T) {
		a, _ := ratFromItem(2, 1, 0)
		b, _ := ratFromItem(3, 1, 0)
		c, _ := ratFromItem(1, 1, 1)

		p, ok := a.multiply(b)
		require.True(t, ok)
		assert.Equal(t, 6.0, p.float().Factor)
		_, ok = a.multiply(c)
		assert.False(t, ok)
		_, ok = c.multiply(a)
		assert.False(t, ok)
	})

	t.Run("between", func(t *testing.T) {
		celsius, _ := ratFromItem(1, 1, 273.15)
		kelvin := identityRat()
		assert.Equal(t, NewLinearMap(1, 273.15), between(celsius, kelvin).float())
		assert.Equal(t, NewLinearMap(1, -273.15), between(kelvin, celsius).float())
	})
}
