package transit

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/idir-jpg/study-success-matching/pkg/logger"
)

// Batch estimates origin to each destination with at most limit lookups in
// flight. Result i belongs to destinations[i] and is nil when that lookup
// failed or was skipped.
func Batch(ctx context.Context, est Estimator, origin string, destinations []string, departure time.Time, limit int, log *slog.Logger) []*int {
	out := make([]*int, len(destinations))
	if est == nil || len(destinations) == 0 {
		return out
	}
	if limit <= 0 {
		limit = 1
	}
	if log == nil {
		log = logger.Nop()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, dest := range destinations {
		if dest == "" {
			continue
		}
		g.Go(func() error {
			minutes, err := est.Minutes(gctx, origin, dest, departure)
			if err != nil {
				log.DebugContext(gctx, "transit lookup failed",
					logger.Component("transit"),
					slog.String("destination", dest),
					logger.Error(err),
				)
				return nil
			}
			out[i] = &minutes
			return nil
		})
	}
	_ = g.Wait()
	return out
}
