package units

import (
	"context"
	"runtime"

	"github.com/GriffinCanCode/AgentOS/units/internal/schema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Pair names a conversion request
type Pair struct {
	From schema.ItemKey
	To   schema.ItemKey
}

// Warm resolves pairs concurrently so later requests are served from the
// cache. It stops at the first failing pair or when ctx is cancelled and
// returns that error. Warm is a no-op without a cache.
func (c *Converter) Warm(ctx context.Context, pairs []Pair) error {
	if c.cache == nil || len(pairs) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, p := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := c.Resolve(p.From, p.To)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	c.logger.Debug("Conversion cache warmed", zap.Int("pairs", len(pairs)))
	return nil
}
