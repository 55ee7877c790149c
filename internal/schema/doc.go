// Package schema provides the immutable unit catalog model and the registry
// that owns loaded schemas.
//
// Item Types:
//   - Phenomenon: a physical quantity kind (LENGTH, TIME, VELOCITY)
//   - UnitSystem: a classification tag (SI, IMPERIAL)
//   - Unit: a measurement unit defined in terms of other units
//   - Constant: a numeric factor usable inside unit definitions
//
// Items are dispatched on ItemType, never on their concrete shape. They are
// built once through a Builder and never mutated; variants are derived with
// Props and the matching constructor.
//
// References between items are stored as raw reference strings and resolved
// through the Context by key on every lookup, so replacing a schema never
// leaves a stale binding behind.
//
// Example Usage:
//
//	s, err := schema.NewBuilder("Units").
//		Alias("u").
//		Phenomenon(schema.PhenomenonProps{Name: "LENGTH", Definition: "LENGTH"}).
//		UnitSystem(schema.UnitSystemProps{Name: "SI"}).
//		Unit(schema.UnitProps{Name: "M", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "M"}).
//		Build()
//
//	ctx := schema.NewContext(logger)
//	err = ctx.AddSchema(s)
package schema
