// Package units resolves conversions between units of a schema context.
//
// A unit is defined as a product of other units and constants raised to
// integer powers, scaled by a numerator/denominator ratio and optionally
// shifted by an offset. Resolution reduces both units of a request to the
// base units of their phenomena, checks that the two reductions have the
// same dimension and the same base units, and folds the chain into a single
// LinearMap:
//
//	m, err := units.NewConverter(ctx).Resolve(from, to)
//	if err != nil {
//		return err
//	}
//	y := m.Evaluate(x)
//
// Scales are composed in exact rational arithmetic and rounded once. A unit
// with an offset (CELSIUS, FAHRENHEIT) cannot be raised to a power other than
// 1 or multiplied with other terms.
package units
