package units

import (
	"fmt"
	"time"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds definition nesting
const DefaultMaxDepth = 64

// Recorder receives resolution metrics
type Recorder interface {
	RecordCacheHit()
	RecordCacheMiss()
	RecordResolution(status string, duration time.Duration)
	RecordConversionError(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheHit()                        {}
func (nopRecorder) RecordCacheMiss()                       {}
func (nopRecorder) RecordResolution(string, time.Duration) {}
func (nopRecorder) RecordConversionError(string)           {}

// Converter resolves conversions between units of a schema context. It is
// safe for concurrent use.
type Converter struct {
	ctx      *schema.Context
	cache    *Cache
	logger   *zap.Logger
	recorder Recorder
	maxDepth int
}

// Option configures a Converter
type Option func(*Converter)

// WithCache uses the given cache instead of a private one
func WithCache(cache *Cache) Option {
	return func(c *Converter) { c.cache = cache }
}

// WithoutCache resolves every request from scratch
func WithoutCache() Option {
	return func(c *Converter) { c.cache = nil }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(c *Converter) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithMaxDepth bounds definition nesting
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// NewConverter creates a converter over ctx
func NewConverter(ctx *schema.Context, opts ...Option) *Converter {
	c := &Converter{
		ctx:      ctx,
		cache:    NewCache(),
		logger:   zap.NewNop(),
		recorder: nopRecorder{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Context returns the schema context the converter reads from
func (c *Converter) Context() *schema.Context {
	return c.ctx
}

// Cache returns the converter's cache, nil when caching is disabled
func (c *Converter) Cache() *Cache {
	return c.cache
}

// Resolve returns the map converting values of from into values of to
func (c *Converter) Resolve(from, to schema.ItemKey) (LinearMap, error) {
	start := time.Now()
	generation := c.ctx.Generation()

	if c.cache != nil {
		if m, ok := c.cache.Get(from, to, generation); ok {
			c.recorder.RecordCacheHit()
			c.recorder.RecordResolution("cached", time.Since(start))
			return m, nil
		}
		c.recorder.RecordCacheMiss()
	}

	m, err := c.resolve(from, to)
	if err != nil {
		kind := KindOf(err)
		c.recorder.RecordConversionError(string(kind))
		c.recorder.RecordResolution("error", time.Since(start))
		c.logger.Debug("Conversion failed",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return LinearMap{}, err
	}

	if c.cache != nil {
		m = c.cache.Put(from, to, generation, m)
	}
	c.recorder.RecordResolution("resolved", time.Since(start))
	c.logger.Debug("Conversion resolved",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Float64("factor", m.Factor),
		zap.Float64("offset", m.Offset),
	)
	return m, nil
}

func (c *Converter) resolve(from, to schema.ItemKey) (LinearMap, error) {
	w := newWalker(c.ctx, c.maxDepth)

	src, err := c.reduceUnit(w, from)
	if err != nil {
		return LinearMap{}, withRequest(err, from, to)
	}
	dst, err := c.reduceUnit(w, to)
	if err != nil {
		return LinearMap{}, withRequest(err, from, to)
	}

	if !src.dimension.Equal(dst.dimension) {
		return LinearMap{}, &Error{
			Op:     "resolve",
			Kind:   KindIncompatibleUnits,
			From:   from,
			To:     to,
			Detail: fmt.Sprintf("cannot convert %s to %s", src.dimension, dst.dimension),
		}
	}
	if !src.terms.Equal(dst.terms) {
		return LinearMap{}, &Error{
			Op:     "resolve",
			Kind:   KindIncompatibleUnits,
			From:   from,
			To:     to,
			Detail: fmt.Sprintf("%s reduces to %s but %s reduces to %s", from, src.terms, to, dst.terms),
		}
	}
	if from.Equals(to) {
		return Identity, nil
	}

	m := between(src.toBase, dst.toBase)
	if err := m.check(); err != nil {
		return LinearMap{}, &Error{
			Op:     "resolve",
			Kind:   KindInvalidDefinition,
			From:   from,
			To:     to,
			Detail: err.Error(),
		}
	}
	return m.float(), nil
}

// Convert converts value from one unit to another
func (c *Converter) Convert(from, to schema.ItemKey, value float64) (float64, error) {
	m, err := c.Resolve(from, to)
	if err != nil {
		return 0, err
	}
	return m.Evaluate(value), nil
}

// ConvertMany converts every value with a single resolution
func (c *Converter) ConvertMany(from, to schema.ItemKey, values []float64) ([]float64, error) {
	m, err := c.Resolve(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = m.Evaluate(v)
	}
	return out, nil
}

// ToBase returns the map from unit into the base unit of its phenomenon
func (c *Converter) ToBase(unit schema.ItemKey) (LinearMap, error) {
	r, err := c.reduceUnit(newWalker(c.ctx, c.maxDepth), unit)
	if err != nil {
		return LinearMap{}, err
	}
	return r.toBase.float(), nil
}

// Decompose reduces any phenomenon, unit or constant to base items
func (c *Converter) Decompose(key schema.ItemKey) (Decomposition, error) {
	item, ok := c.ctx.GetItem(key)
	if !ok {
		return Decomposition{}, newError(KindUnknownReference, key, "%s not found", key)
	}
	r, err := newWalker(c.ctx, c.maxDepth).reduce(item)
	if err != nil {
		return Decomposition{}, err
	}
	return r.decomposition(item.Key()), nil
}

// Signature returns the base-phenomenon signature of a unit
func (c *Converter) Signature(unit schema.ItemKey) (Signature, error) {
	r, err := c.reduceUnit(newWalker(c.ctx, c.maxDepth), unit)
	if err != nil {
		return Signature{}, err
	}
	return r.dimension, nil
}

// IsCompatible reports whether two units measure the same dimension in the
// same base units
func (c *Converter) IsCompatible(a, b schema.ItemKey) (bool, error) {
	w := newWalker(c.ctx, c.maxDepth)
	ra, err := c.reduceUnit(w, a)
	if err != nil {
		return false, err
	}
	rb, err := c.reduceUnit(w, b)
	if err != nil {
		return false, err
	}
	return ra.dimension.Equal(rb.dimension) && ra.terms.Equal(rb.terms), nil
}

func (c *Converter) reduceUnit(w *walker, key schema.ItemKey) (*reduction, error) {
	item, ok := c.ctx.GetItem(key)
	if !ok {
		return nil, newError(KindUnknownReference, key, "unit %s not found", key)
	}
	if item.ItemType() != schema.ItemTypeUnit {
		return nil, newError(KindUnknownReference, key, "%s is a %s, not a Unit", key, item.ItemType())
	}
	return w.reduce(item)
}
