// Package engine wires configuration, logging, metrics and the standard
// catalog around a units.Converter.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/AgentOS/units/internal/catalog"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/config"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AgentOS/units/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"github.com/GriffinCanCode/AgentOS/units/internal/shared/float"
	"github.com/GriffinCanCode/AgentOS/units/internal/units"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Engine converts values between units of a schema context
type Engine struct {
	cfg       *config.Config
	logger    *logging.Logger
	registry  prometheus.Registerer
	metrics   *monitoring.Metrics
	schemas   *schema.Context
	converter *units.Converter
	closeOnce sync.Once
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger injects a logger instead of building one from configuration
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRegisterer registers metrics with reg instead of a private registry
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.registry = reg }
}

// New creates an engine. A nil cfg uses config.Default(); nil schemas loads
// the standard catalog.
func New(cfg *config.Config, schemas *schema.Context, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	// 1. Logging
	if e.logger == nil {
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		logCfg.Development = cfg.Logging.Development

		logger, err := logging.New(logCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		e.logger = logger
	}

	// 2. Schemas
	if schemas == nil {
		ctx, err := catalog.NewContext(e.logger.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load standard catalog: %w", err)
		}
		schemas = ctx
	}
	e.schemas = schemas

	// 3. Metrics
	if cfg.Metrics.Enabled {
		if e.registry == nil {
			e.registry = prometheus.NewRegistry()
		}
		e.metrics = monitoring.NewMetrics(cfg.Metrics.Namespace, e.registry)
		e.metrics.SetSchemasLoaded(schemas.Len())
	}

	// 4. Converter
	convOpts := []units.Option{
		units.WithLogger(e.logger.Logger),
		units.WithMaxDepth(cfg.Units.MaxDepth),
	}
	if e.metrics != nil {
		convOpts = append(convOpts, units.WithRecorder(e.metrics))
	}
	if !cfg.Units.CacheEnabled {
		convOpts = append(convOpts, units.WithoutCache())
	}
	e.converter = units.NewConverter(schemas, convOpts...)

	e.logger.Info("Conversion engine ready",
		zap.Int("schemas", schemas.Len()),
		zap.Bool("cache", cfg.Units.CacheEnabled),
		zap.Int("max_depth", cfg.Units.MaxDepth),
		zap.Bool("metrics", cfg.Metrics.Enabled),
	)
	return e, nil
}

// Resolve returns the map converting values of from into values of to
func (e *Engine) Resolve(from, to schema.ItemKey) (units.LinearMap, error) {
	return e.converter.Resolve(from, to)
}

// Convert converts value from one unit to another
func (e *Engine) Convert(from, to schema.ItemKey, value float64) (float64, error) {
	return e.converter.Convert(from, to, value)
}

// ConvertMany converts every value with a single resolution
func (e *Engine) ConvertMany(from, to schema.ItemKey, values []float64) ([]float64, error) {
	return e.converter.ConvertMany(from, to, values)
}

// ConvertNamed converts between units written as "Schema.Name" or
// "Schema:Name"
func (e *Engine) ConvertNamed(from, to string, value float64) (float64, error) {
	fromKey, err := schema.ParseItemKey(from)
	if err != nil {
		return 0, err
	}
	toKey, err := schema.ParseItemKey(to)
	if err != nil {
		return 0, err
	}
	return e.Convert(fromKey, toKey, value)
}

// Warm resolves pairs ahead of use so they are served from the cache
func (e *Engine) Warm(ctx context.Context, pairs []units.Pair) error {
	return e.converter.Warm(ctx, pairs)
}

// Equal compares two converted values within the configured ULP tolerance
func (e *Engine) Equal(expected, actual float64) bool {
	return float.EqualWithinULPs(expected, actual, e.cfg.Units.ULPTolerance)
}

// LoadSchema registers an additional schema
func (e *Engine) LoadSchema(s *schema.Schema) error {
	if err := e.schemas.AddSchema(s); err != nil {
		return err
	}
	e.metrics.SetSchemasLoaded(e.schemas.Len())
	return nil
}

// ReplaceSchema swaps a registered schema for a new version. Cached
// conversions resolved under the old version are not reused.
func (e *Engine) ReplaceSchema(s *schema.Schema) error {
	if err := e.schemas.ReplaceSchema(s); err != nil {
		return err
	}
	e.metrics.SetSchemasLoaded(e.schemas.Len())
	return nil
}

// RemoveSchema unregisters a schema
func (e *Engine) RemoveSchema(key schema.SchemaKey) error {
	if err := e.schemas.RemoveSchema(key); err != nil {
		return err
	}
	e.metrics.SetSchemasLoaded(e.schemas.Len())
	return nil
}

func (e *Engine) Context() *schema.Context     { return e.schemas }
func (e *Engine) Converter() *units.Converter  { return e.converter }
func (e *Engine) Metrics() *monitoring.Metrics { return e.metrics }
func (e *Engine) Config() *config.Config       { return e.cfg }

// Stats returns the current metric values, zero when metrics are disabled
func (e *Engine) Stats() monitoring.MetricsSnapshot {
	return e.metrics.Snapshot()
}

// Close flushes the logger. It is safe to call more than once.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.logger.Info("Conversion engine stopped")
		err = e.logger.Sync()
	})
	return err
}
