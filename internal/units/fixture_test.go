package units

import (
	"sync"
	"testing"
	"time"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"github.com/stretchr/testify/require"
)

var f = schema.Float

func unitsSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.NewBuilder("Units").
		Alias("u").
		Phenomenon(schema.PhenomenonProps{Name: "LENGTH", Definition: "LENGTH"}).
		Phenomenon(schema.PhenomenonProps{Name: "TIME", Definition: "TIME"}).
		Phenomenon(schema.PhenomenonProps{Name: "TEMPERATURE", Definition: "TEMPERATURE"}).
		Phenomenon(schema.PhenomenonProps{Name: "NUMBER", Definition: "ONE"}).
		Phenomenon(schema.PhenomenonProps{Name: "VELOCITY", Definition: "LENGTH*TIME(-1)"}).
		Phenomenon(schema.PhenomenonProps{Name: "AREA", Definition: "LENGTH(2)"}).
		UnitSystem(schema.UnitSystemProps{Name: "SI"}).
		UnitSystem(schema.UnitSystemProps{Name: "USCUSTOM"}).
		Constant(schema.ConstantProps{Name: "KILO", Phenomenon: "NUMBER", Definition: "ONE", Numerator: f(1000)}).
		Constant(schema.ConstantProps{Name: "CENTI", Phenomenon: "NUMBER", Definition: "ONE", Denominator: f(100)}).
		Unit(schema.UnitProps{Name: "M", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "M"}).
		Unit(schema.UnitProps{Name: "KM", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "[KILO]*M"}).
		Unit(schema.UnitProps{Name: "CM", Phenomenon: "LENGTH", UnitSystem: "SI", Definition: "[CENTI]*M"}).
		Unit(schema.UnitProps{Name: "IN", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "CM", Numerator: f(2.54)}).
		Unit(schema.UnitProps{Name: "FT", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "IN", Numerator: f(12)}).
		Unit(schema.UnitProps{Name: "YRD", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "FT", Numerator: f(3)}).
		Unit(schema.UnitProps{Name: "MILE", Phenomenon: "LENGTH", UnitSystem: "USCUSTOM", Definition: "YRD", Numerator: f(1760)}).
		Unit(schema.UnitProps{Name: "S", Phenomenon: "TIME", UnitSystem: "SI", Definition: "S"}).
		Unit(schema.UnitProps{Name: "MIN", Phenomenon: "TIME", UnitSystem: "SI", Definition: "S", Numerator: f(60)}).
		Unit(schema.UnitProps{Name: "HR", Phenomenon: "TIME", UnitSystem: "SI", Definition: "MIN", Numerator: f(60)}).
		Unit(schema.UnitProps{Name: "K", Phenomenon: "TEMPERATURE", UnitSystem: "SI", Definition: "K"}).
		Unit(schema.UnitProps{Name: "CELSIUS", Phenomenon: "TEMPERATURE", UnitSystem: "SI", Definition: "K", Offset: f(273.15)}).
		Unit(schema.UnitProps{Name: "RANKINE", Phenomenon: "TEMPERATURE", UnitSystem: "USCUSTOM", Definition: "K", Numerator: f(5), Denominator: f(9)}).
		Unit(schema.UnitProps{Name: "FAHRENHEIT", Phenomenon: "TEMPERATURE", UnitSystem: "USCUSTOM", Definition: "RANKINE", Offset: f(459.67)}).
		Unit(schema.UnitProps{Name: "M/SEC", Phenomenon: "VELOCITY", UnitSystem: "SI", Definition: "M*S(-1)"}).
		Unit(schema.UnitProps{Name: "KM/HR", Phenomenon: "VELOCITY", UnitSystem: "SI", Definition: "KM*HR(-1)"}).
		Unit(schema.UnitProps{Name: "MPH", Phenomenon: "VELOCITY", UnitSystem: "USCUSTOM", Definition: "MILE*HR(-1)"}).
		Unit(schema.UnitProps{Name: "SQ_M", Phenomenon: "AREA", UnitSystem: "SI", Definition: "M(2)"}).
		Unit(schema.UnitProps{Name: "SQ_FT", Phenomenon: "AREA", UnitSystem: "USCUSTOM", Definition: "FT(2)"}).
		Unit(schema.UnitProps{Name: "ONE", Phenomenon: "NUMBER", UnitSystem: "SI", Definition: "ONE"}).
		Unit(schema.UnitProps{Name: "PERCENT", Phenomenon: "NUMBER", UnitSystem: "SI", Definition: "ONE", Denominator: f(100)}).
		Build()
	require.NoError(t, err)
	return s
}

func brokenSchema(t *testing.T) *schema.Schema {
	t.Helper()
	unit := func(name, phenomenon, definition string) schema.UnitProps {
		return schema.UnitProps{Name: name, Phenomenon: phenomenon, UnitSystem: "u:SI", Definition: definition}
	}
	withOffset := unit("OFFSET_SQ", "u:AREA", "u:M(2)")
	withOffset.Offset = f(3)
	zeroDen := unit("ZERO_DEN", "u:LENGTH", "M")
	zeroDen.Denominator = f(0)
	zeroNum := unit("ZERO_NUM", "u:LENGTH", "M")
	zeroNum.Numerator = f(0)
	scaledBase := unit("SCALED_BASE", "u:LENGTH", "SCALED_BASE")
	scaledBase.Numerator = f(2)
	foot := unit("FOOT", "u:LENGTH", "FOOT_BASE")
	foot.Numerator = f(0.3048)
	huge := unit("HUGE_M", "u:LENGTH", "u:M")
	huge.Numerator = f(1e300)
	tiny := unit("TINY_M", "u:LENGTH", "u:M")
	tiny.Numerator = f(1e-300)
	fromCelsius := unit("FAHRENHEIT_C", "u:TEMPERATURE", "u:CELSIUS")
	fromCelsius.Numerator = f(5)
	fromCelsius.Denominator = f(9)
	fromCelsius.Offset = f(-32)

	s, err := schema.NewBuilder("Broken").
		Reference("Units").
		Phenomenon(schema.PhenomenonProps{Name: "CYCLIC", Definition: "CYCLIC*u:LENGTH"}).
		Unit(unit("SELF", "u:LENGTH", "SELF*M")).
		Unit(unit("LOOP_A", "u:LENGTH", "LOOP_B")).
		Unit(unit("LOOP_B", "u:LENGTH", "LOOP_A")).
		Unit(unit("GHOST", "u:LENGTH", "NOWHERE")).
		Unit(unit("GHOST_PHEN", "NOWHERE", "M")).
		Unit(unit("SQ_C", "u:TEMPERATURE", "u:CELSIUS(2)")).
		Unit(unit("C_M", "u:TEMPERATURE", "u:CELSIUS*u:M")).
		Unit(unit("C_TO_F", "u:TEMPERATURE", "FAHRENHEIT")).
		Unit(withOffset).
		Unit(zeroDen).
		Unit(zeroNum).
		Unit(scaledBase).
		Unit(unit("FOOT_BASE", "u:LENGTH", "FOOT_BASE")).
		Unit(foot).
		Unit(unit("HUGE_POWER", "u:LENGTH", "u:KM(200000)")).
		Unit(huge).
		Unit(tiny).
		Unit(fromCelsius).
		Unit(unit("HUGE_SQ", "u:AREA", "HUGE_M(2)")).
		Unit(unit("TINY_POW", "u:LENGTH", "TINY_M(64)*u:M(-63)")).
		Unit(unit("MISMATCH", "u:LENGTH", "u:S")).
		Unit(unit("BAD_SYNTAX", "u:LENGTH", "M*(2)")).
		Unit(unit("PHEN_TERM", "u:LENGTH", "u:LENGTH")).
		Unit(unit("CYCLE_PHEN", "CYCLIC", "M")).
		Unit(schema.UnitProps{Name: "NO_SYSTEM", Phenomenon: "u:LENGTH", UnitSystem: "NOPE", Definition: "M"}).
		Unit(schema.UnitProps{Name: "SYSTEM_IS_UNIT", Phenomenon: "u:LENGTH", UnitSystem: "M", Definition: "M"}).
		Build()
	require.NoError(t, err)
	return s
}

func newTestContext(t *testing.T) *schema.Context {
	t.Helper()
	ctx := schema.NewContext(nil)
	require.NoError(t, ctx.AddSchema(unitsSchema(t)))
	require.NoError(t, ctx.AddSchema(brokenSchema(t)))
	return ctx
}

func key(name string) schema.ItemKey {
	return schema.NewItemKey("Units", name)
}

func broken(name string) schema.ItemKey {
	return schema.NewItemKey("Broken", name)
}

type countingRecorder struct {
	mu       sync.Mutex
	hits     int
	misses   int
	statuses map[string]int
	kinds    map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{statuses: map[string]int{}, kinds: map[string]int{}}
}

func (r *countingRecorder) RecordCacheHit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits++
}

func (r *countingRecorder) RecordCacheMiss() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses++
}

func (r *countingRecorder) RecordResolution(status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[status]++
}

func (r *countingRecorder) RecordConversionError(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind]++
}
