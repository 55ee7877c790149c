// Package catalog builds the standard Units schema: base and derived
// phenomena, the common unit systems, SI prefixes and the everyday units of
// length, time, mass, temperature, angle, area, volume, velocity,
// acceleration, force and pressure.
package catalog

import (
	"fmt"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"go.uber.org/zap"
)

const (
	// SchemaName is the name the catalog schema is registered under
	SchemaName = "Units"
	// Alias qualifies catalog references from other schemas, e.g. "u:M"
	Alias = "u"
)

var f = schema.Float

var phenomena = []schema.PhenomenonProps{
	{Name: "LENGTH", Label: "Length", Definition: "LENGTH"},
	{Name: "TIME", Label: "Time", Definition: "TIME"},
	{Name: "MASS", Label: "Mass", Definition: "MASS"},
	{Name: "TEMPERATURE", Label: "Temperature", Definition: "TEMPERATURE"},
	{Name: "TEMPERATURE_CHANGE", Label: "Temperature Change", Definition: "TEMPERATURE_CHANGE"},
	{Name: "ANGLE", Label: "Angle", Definition: "ANGLE"},
	{Name: "NUMBER", Label: "Number", Definition: "ONE"},
	{Name: "AREA", Label: "Area", Definition: "LENGTH(2)"},
	{Name: "VOLUME", Label: "Volume", Definition: "LENGTH(3)"},
	{Name: "VELOCITY", Label: "Velocity", Definition: "LENGTH*TIME(-1)"},
	{Name: "ACCELERATION", Label: "Acceleration", Definition: "LENGTH*TIME(-2)"},
	{Name: "FORCE", Label: "Force", Definition: "MASS*ACCELERATION"},
	{Name: "PRESSURE", Label: "Pressure", Definition: "FORCE*AREA(-1)"},
}

var systems = []schema.UnitSystemProps{
	{Name: "SI", Label: "International System of Units"},
	{Name: "METRIC", Label: "Metric"},
	{Name: "IMPERIAL", Label: "Imperial"},
	{Name: "USCUSTOM", Label: "US Customary"},
	{Name: "INTERNATIONAL", Label: "International"},
	{Name: "STATISTICS", Label: "Statistics"},
}

var constants = []schema.ConstantProps{
	{Name: "GIGA", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(1e9)},
	{Name: "MEGA", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(1e6)},
	{Name: "KILO", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(1e3)},
	{Name: "HECTO", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(100)},
	{Name: "DECA", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(10)},
	{Name: "DECI", Phenomenon: "NUMBER", Definition: "ONE", Denominator: f(10)},
	{Name: "CENTI", Phenomenon: "NUMBER", Definition: "ONE", Denominator: f(100)},
	{Name: "MILLI", Phenomenon: "NUMBER", Definition: "ONE", Denominator: f(1e3)},
	{Name: "MICRO", Phenomenon: "NUMBER", Definition: "ONE", Denominator: f(1e6)},
	{Name: "PI", Label: "π", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(3.141592653589793)},
	{Name: "STD_G", Label: "g₀", Phenomenon: "ACCELERATION", Definition: "M*S(-2)", Numerator: f(9.80665),
		Description: "Standard acceleration of gravity"},
}

var units = []schema.UnitProps{
	// Length
	{Name: "M", Label: "m", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "M"},
	{Name: "KM", Label: "km", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "[KILO]*M"},
	{Name: "CM", Label: "cm", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "[CENTI]*M"},
	{Name: "MM", Label: "mm", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "[MILLI]*M"},
	{Name: "UM", Label: "µm", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "[MICRO]*M"},
	{Name: "IN", Label: "in", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "MM", Numerator: f(25.4)},
	{Name: "FT", Label: "ft", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "IN", Numerator: f(12)},
	{Name: "YRD", Label: "yd", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "FT", Numerator: f(3)},
	{Name: "MILE", Label: "mi", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "YRD", Numerator: f(1760)},
	{Name: "NAUT_MILE", Label: "nmi", Phenomenon: "LENGTH", UnitSystem: "INTERNATIONAL", Definition: "M", Numerator: f(1852)},

	// Time
	{Name: "S", Label: "s", Phenomenon: "TIME", UnitSystem: "SI", Definition: "S"},
	{Name: "MS", Label: "ms", Phenomenon: "TIME", UnitSystem: "SI", Definition: "[MILLI]*S"},
	{Name: "MIN", Label: "min", Phenomenon: "TIME", UnitSystem: "INTERNATIONAL", Definition: "S", Numerator: f(60)},
	{Name: "HR", Label: "h", Phenomenon: "TIME", UnitSystem: "INTERNATIONAL", Definition: "MIN", Numerator: f(60)},
	{Name: "DAY", Label: "d", Phenomenon: "TIME", UnitSystem: "INTERNATIONAL", Definition: "HR", Numerator: f(24)},
	{Name: "WEEK", Label: "wk", Phenomenon: "TIME", UnitSystem: "INTERNATIONAL", Definition: "DAY", Numerator: f(7)},

	// Mass
	{Name: "KG", Label: "kg", Phenomenon: "MASS", UnitSystem: "SI", Definition: "KG"},
	{Name: "G", Label: "g", Phenomenon: "MASS", UnitSystem: "SI", Definition: "[MILLI]*KG"},
	{Name: "MG", Label: "mg", Phenomenon: "MASS", UnitSystem: "SI", Definition: "[MILLI]*G"},
	{Name: "TONNE", Label: "t", Phenomenon: "MASS", UnitSystem: "METRIC", Definition: "[KILO]*KG"},
	{Name: "LBM", Label: "lb", Phenomenon: "MASS", UnitSystem: "USCUSTOM", Definition: "KG", Numerator: f(0.45359237)},
	{Name: "OZM", Label: "oz", Phenomenon: "MASS", UnitSystem: "USCUSTOM", Definition: "LBM", Denominator: f(16)},

	// Temperature
	{Name: "K", Label: "K", Phenomenon: "TEMPERATURE", UnitSystem: "SI", Definition: "K"},
	{Name: "CELSIUS", Label: "°C", Phenomenon: "TEMPERATURE", UnitSystem: "METRIC", Definition: "K", Offset: f(273.15)},
	{Name: "RANKINE", Label: "°R", Phenomenon: "TEMPERATURE", UnitSystem: "USCUSTOM", Definition: "K", Numerator: f(5), Denominator: f(9)},
	{Name: "FAHRENHEIT", Label: "°F", Phenomenon: "TEMPERATURE", UnitSystem: "USCUSTOM", Definition: "RANKINE", Offset: f(459.67)},

	// Temperature change
	{Name: "DELTA_KELVIN", Label: "Δ K", Phenomenon: "TEMPERATURE_CHANGE", UnitSystem: "SI", Definition: "DELTA_KELVIN"},
	{Name: "DELTA_CELSIUS", Label: "Δ °C", Phenomenon: "TEMPERATURE_CHANGE", UnitSystem: "METRIC", Definition: "DELTA_KELVIN"},
	{Name: "DELTA_RANKINE", Label: "Δ °R", Phenomenon: "TEMPERATURE_CHANGE", UnitSystem: "USCUSTOM", Definition: "DELTA_KELVIN", Numerator: f(5), Denominator: f(9)},
	{Name: "DELTA_FAHRENHEIT", Label: "Δ °F", Phenomenon: "TEMPERATURE_CHANGE", UnitSystem: "USCUSTOM", Definition: "DELTA_RANKINE"},

	// Angle
	{Name: "RAD", Label: "rad", Phenomenon: "ANGLE", UnitSystem: "SI", Definition: "RAD"},
	{Name: "DEG", Label: "°", Phenomenon: "ANGLE", UnitSystem: "METRIC", Definition: "[PI]*RAD", Denominator: f(180)},
	{Name: "ARC_MINUTE", Label: "'", Phenomenon: "ANGLE", UnitSystem: "METRIC", Definition: "DEG", Denominator: f(60)},
	{Name: "ARC_SECOND", Label: "\"", Phenomenon: "ANGLE", UnitSystem: "METRIC", Definition: "ARC_MINUTE", Denominator: f(60)},
	{Name: "REVOLUTION", Label: "r", Phenomenon: "ANGLE", UnitSystem: "METRIC", Definition: "[PI]*RAD", Numerator: f(2)},

	// Number
	{Name: "ONE", Label: "one", Phenomenon: "NUMBER", UnitSystem: "INTERNATIONAL", Definition: "ONE"},
	{Name: "PERCENT", Label: "%", Phenomenon: "NUMBER", UnitSystem: "STATISTICS", Definition: "ONE", Denominator: f(100)},
	{Name: "PPM", Label: "ppm", Phenomenon: "NUMBER", UnitSystem: "STATISTICS", Definition: "ONE", Denominator: f(1e6)},

	// Area
	{Name: "SQ_M", Label: "m²", Phenomenon: "AREA", UnitSystem: "SI", Definition: "M(2)"},
	{Name: "SQ_KM", Label: "km²", Phenomenon: "AREA", UnitSystem: "SI", Definition: "KM(2)"},
	{Name: "SQ_CM", Label: "cm²", Phenomenon: "AREA", UnitSystem: "SI", Definition: "CM(2)"},
	{Name: "SQ_IN", Label: "in²", Phenomenon: "AREA", UnitSystem: "USCUSTOM", Definition: "IN(2)"},
	{Name: "SQ_FT", Label: "ft²", Phenomenon: "AREA", UnitSystem: "USCUSTOM", Definition: "FT(2)"},
	{Name: "SQ_MILE", Label: "mi²", Phenomenon: "AREA", UnitSystem: "USCUSTOM", Definition: "MILE(2)"},
	{Name: "ACRE", Label: "ac", Phenomenon: "AREA", UnitSystem: "USCUSTOM", Definition: "SQ_FT", Numerator: f(43560)},
	{Name: "HECTARE", Label: "ha", Phenomenon: "AREA", UnitSystem: "METRIC", Definition: "[HECTO](2)*M(2)"},

	// Volume
	{Name: "CUB_M", Label: "m³", Phenomenon: "VOLUME", UnitSystem: "SI", Definition: "M(3)"},
	{Name: "CUB_CM", Label: "cm³", Phenomenon: "VOLUME", UnitSystem: "SI", Definition: "CM(3)"},
	{Name: "CUB_IN", Label: "in³", Phenomenon: "VOLUME", UnitSystem: "USCUSTOM", Definition: "IN(3)"},
	{Name: "CUB_FT", Label: "ft³", Phenomenon: "VOLUME", UnitSystem: "USCUSTOM", Definition: "FT(3)"},
	{Name: "LITRE", Label: "L", Phenomenon: "VOLUME", UnitSystem: "METRIC", Definition: "[DECI](3)*M(3)"},
	{Name: "MILLILITRE", Label: "mL", Phenomenon: "VOLUME", UnitSystem: "METRIC", Definition: "[MILLI]*LITRE"},
	{Name: "GALLON", Label: "gal", Phenomenon: "VOLUME", UnitSystem: "USCUSTOM", Definition: "IN(3)", Numerator: f(231)},
	{Name: "GALLON_IMPERIAL", Label: "gal (UK)", Phenomenon: "VOLUME", UnitSystem: "IMPERIAL", Definition: "LITRE", Numerator: f(4.54609)},

	// Velocity
	{Name: "M/SEC", Label: "m/s", Phenomenon: "VELOCITY", UnitSystem: "SI", Definition: "M*S(-1)"},
	{Name: "KM/HR", Label: "km/h", Phenomenon: "VELOCITY", UnitSystem: "METRIC", Definition: "KM*HR(-1)"},
	{Name: "FT/SEC", Label: "ft/s", Phenomenon: "VELOCITY", UnitSystem: "USCUSTOM", Definition: "FT*S(-1)"},
	{Name: "MPH", Label: "mph", Phenomenon: "VELOCITY", UnitSystem: "USCUSTOM", Definition: "MILE*HR(-1)"},
	{Name: "KNOT", Label: "kn", Phenomenon: "VELOCITY", UnitSystem: "INTERNATIONAL", Definition: "NAUT_MILE*HR(-1)"},

	// Acceleration
	{Name: "M/SEC2", Label: "m/s²", Phenomenon: "ACCELERATION", UnitSystem: "SI", Definition: "M*S(-2)"},
	{Name: "FT/SEC2", Label: "ft/s²", Phenomenon: "ACCELERATION", UnitSystem: "USCUSTOM", Definition: "FT*S(-2)"},
	{Name: "STD_GRAVITY", Label: "g", Phenomenon: "ACCELERATION", UnitSystem: "INTERNATIONAL", Definition: "[STD_G]"},

	// Force
	{Name: "N", Label: "N", Phenomenon: "FORCE", UnitSystem: "SI", Definition: "KG*M*S(-2)"},
	{Name: "KN", Label: "kN", Phenomenon: "FORCE", UnitSystem: "SI", Definition: "[KILO]*N"},
	{Name: "DYNE", Label: "dyn", Phenomenon: "FORCE", UnitSystem: "METRIC", Definition: "G*CM*S(-2)"},
	{Name: "LBF", Label: "lbf", Phenomenon: "FORCE", UnitSystem: "USCUSTOM", Definition: "[STD_G]*LBM"},

	// Pressure
	{Name: "PA", Label: "Pa", Phenomenon: "PRESSURE", UnitSystem: "SI", Definition: "N*M(-2)"},
	{Name: "KPA", Label: "kPa", Phenomenon: "PRESSURE", UnitSystem: "SI", Definition: "[KILO]*PA"},
	{Name: "MEGAPASCAL", Label: "MPa", Phenomenon: "PRESSURE", UnitSystem: "SI", Definition: "[MEGA]*PA"},
	{Name: "BAR", Label: "bar", Phenomenon: "PRESSURE", UnitSystem: "METRIC", Definition: "PA", Numerator: f(1e5)},
	{Name: "ATM", Label: "atm", Phenomenon: "PRESSURE", UnitSystem: "INTERNATIONAL", Definition: "PA", Numerator: f(101325)},
	{Name: "PSI", Label: "psi", Phenomenon: "PRESSURE", UnitSystem: "USCUSTOM", Definition: "LBF*IN(-2)"},
}

// New builds a fresh copy of the standard schema
func New() (*schema.Schema, error) {
	b := schema.NewBuilder(SchemaName).Alias(Alias)

	// 1. Phenomena and unit systems
	for _, p := range phenomena {
		b.Phenomenon(p)
	}
	for _, s := range systems {
		b.UnitSystem(s)
	}

	// 2. Prefixes and physical constants
	for _, c := range constants {
		b.Constant(c)
	}

	// 3. Units
	for _, u := range units {
		b.Unit(u)
	}

	return b.Build()
}

// MustNew is like New but panics if the schema cannot be built
func MustNew() *schema.Schema {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
}

// NewContext returns a schema context with the standard schema registered
func NewContext(logger *zap.Logger) (*schema.Context, error) {
	s, err := New()
	if err != nil {
		return nil, err
	}

	ctx := schema.NewContext(logger)
	if err := ctx.AddSchema(s); err != nil {
		return nil, fmt.Errorf("failed to register %s schema: %w", SchemaName, err)
	}
	return ctx, nil
}

// Key returns the key of a catalog item
func Key(name string) schema.ItemKey {
	return schema.NewItemKey(SchemaName, name)
}
