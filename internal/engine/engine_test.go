package engine

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/AgentOS/units/internal/catalog"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"github.com/GriffinCanCode/AgentOS/units/internal/units"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(t *testing.T, cfg *config.Config, opts ...Option) (*Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	opts = append([]Option{WithLogger(&logging.Logger{Logger: zap.New(core)})}, opts...)

	e, err := New(cfg, nil, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, logs
}

func TestNewDefaults(t *testing.T) {
	e, logs := newEngine(t, nil)

	assert.Equal(t, config.Default(), e.Config())
	assert.Equal(t, 1, e.Context().Len())
	assert.NotNil(t, e.Converter().Cache())
	require.NotNil(t, e.Metrics())
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().SchemasLoaded))

	ready := logs.FilterMessage("Conversion engine ready").All()
	require.Len(t, ready, 1)
	assert.Equal(t, int64(64), ready[0].ContextMap()["max_depth"])
}

func TestConvert(t *testing.T) {
	e, _ := newEngine(t, nil)

	v, err := e.Convert(catalog.Key("MILE"), catalog.Key("KM"), 1)
	require.NoError(t, err)
	assert.True(t, e.Equal(1.609344, v))

	v, err = e.ConvertNamed("Units.CELSIUS", "units:k", 0)
	require.NoError(t, err)
	assert.Equal(t, 273.15, v)

	out, err := e.ConvertMany(catalog.Key("KM/HR"), catalog.Key("M/SEC"), []float64{0, 36, 100})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, 0.0, out[0])
	assert.True(t, e.Equal(10, out[1]))
	assert.InDelta(t, 27.7778, out[2], 1e-4)

	m, err := e.Resolve(catalog.Key("M"), catalog.Key("M"))
	require.NoError(t, err)
	assert.Equal(t, units.Identity, m)
}

func TestConvertErrors(t *testing.T) {
	e, logs := newEngine(t, nil)

	_, err := e.Convert(catalog.Key("M"), catalog.Key("S"), 1)
	assert.ErrorIs(t, err, units.ErrIncompatibleUnits)

	_, err = e.ConvertNamed("MILE", "Units.KM", 1)
	require.Error(t, err)
	_, err = e.ConvertNamed("Units.MILE", "", 1)
	require.Error(t, err)

	_, err = e.ConvertNamed("Units.FURLONG", "Units.KM", 1)
	assert.ErrorIs(t, err, units.ErrUnknownReference)

	assert.Equal(t, 2, logs.FilterMessage("Conversion failed").Len())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, _ := newEngine(t, nil, WithRegisterer(reg))

	for i := 0; i < 3; i++ {
		_, err := e.Convert(catalog.Key("FT"), catalog.Key("M"), 1)
		require.NoError(t, err)
	}
	_, err := e.Convert(catalog.Key("FT"), catalog.Key("S"), 1)
	require.Error(t, err)

	m := e.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionsResolved.WithLabelValues("resolved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConversionsResolved.WithLabelValues("cached")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionErrors.WithLabelValues("incompatible_units")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheMisses))

	stats := e.Stats()
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Equal(t, int64(2), stats.Cached)
	assert.Equal(t, int64(1), stats.Errors)

	count, err := testutil.GatherAndCount(reg, "units_resolution_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConfigOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Units.CacheEnabled = false
	cfg.Units.MaxDepth = 3
	cfg.Metrics.Enabled = false

	e, _ := newEngine(t, cfg)
	assert.Nil(t, e.Converter().Cache())
	assert.Nil(t, e.Metrics())
	assert.Equal(t, int64(0), e.Stats().Resolved)

	_, err := e.Convert(catalog.Key("M"), catalog.Key("CM"), 1)
	require.NoError(t, err)

	_, err = e.Convert(catalog.Key("MILE"), catalog.Key("M"), 1)
	assert.ErrorIs(t, err, units.ErrCircularDefinition)
}

func TestULPTolerance(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false
	cfg.Units.ULPTolerance = 0

	e, _ := newEngine(t, cfg)
	assert.True(t, e.Equal(0.3, 0.3))
	assert.False(t, e.Equal(0.3, 0.1+0.2))

	cfg.Units.ULPTolerance = 1
	assert.True(t, e.Equal(0.3, 0.1+0.2))
}

func TestInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Units.MaxDepth = 0
	_, err := New(cfg, nil)
	assert.ErrorContains(t, err, "invalid engine config")

	cfg = config.Default()
	cfg.Logging.Level = "loud"
	_, err = New(cfg, nil)
	assert.ErrorContains(t, err, "failed to create logger")
}

func TestSchemaLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	e, _ := newEngine(t, nil, WithRegisterer(reg))

	build := func(numerator float64) *schema.Schema {
		s, err := schema.NewBuilder("Nautical").
			Alias("n").
			Reference(catalog.SchemaName).
			Unit(schema.UnitProps{
				Name:       "CABLE",
				Label:      "cable",
				Phenomenon: "u:LENGTH",
				UnitSystem: "u:INTERNATIONAL",
				Definition: "NAUT_MILE",
				Numerator:  schema.Float(numerator),
			}).
			Build()
		require.NoError(t, err)
		return s
	}

	require.NoError(t, e.LoadSchema(build(0.1)))
	assert.Equal(t, 2.0, testutil.ToFloat64(e.Metrics().SchemasLoaded))

	cable := schema.NewItemKey("Nautical", "CABLE")
	v, err := e.Convert(cable, catalog.Key("M"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 185.2, v, 1e-9)

	assert.ErrorIs(t, e.LoadSchema(build(0.1)), schema.ErrDuplicateSchema)

	require.NoError(t, e.ReplaceSchema(build(0.2)))
	v, err = e.Convert(cable, catalog.Key("M"), 1)
	require.NoError(t, err)
	assert.InDelta(t, 370.4, v, 1e-9)

	require.NoError(t, e.RemoveSchema(schema.NewSchemaKey("nautical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.Metrics().SchemasLoaded))
	_, err = e.Convert(cable, catalog.Key("M"), 1)
	assert.ErrorIs(t, err, units.ErrUnknownReference)

	assert.ErrorIs(t, e.RemoveSchema(schema.NewSchemaKey("nautical")), schema.ErrSchemaNotFound)
}

func TestExternalContext(t *testing.T) {
	ctx := schema.NewContext(nil)
	cfg := config.Default()
	cfg.Metrics.Enabled = false

	e, err := New(cfg, ctx, WithLogger(logging.NewNop()))
	require.NoError(t, err)
	assert.Same(t, ctx, e.Context())

	_, err = e.Convert(catalog.Key("M"), catalog.Key("KM"), 1)
	assert.ErrorIs(t, err, units.ErrUnknownReference)

	require.NoError(t, e.LoadSchema(catalog.MustNew()))
	v, err := e.Convert(catalog.Key("M"), catalog.Key("KM"), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.001, v)

	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
}

func TestWarm(t *testing.T) {
	e, _ := newEngine(t, nil)

	pairs := []units.Pair{
		{From: catalog.Key("PSI"), To: catalog.Key("KPA")},
		{From: catalog.Key("LBF"), To: catalog.Key("N")},
	}
	require.NoError(t, e.Warm(context.Background(), pairs))
	assert.Equal(t, 2, e.Converter().Cache().Len())

	_, err := e.Convert(catalog.Key("PSI"), catalog.Key("KPA"), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.Stats().Cached)
}
