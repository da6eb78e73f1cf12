package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

const maxBackoff = 30 * time.Second

// Reloader re-reads durable state. *store.Store implements it.
type Reloader interface {
	Reload(ctx context.Context) (bool, error)
}

// StartResync launches a goroutine that calls Reload every interval, so a
// process catches up even if a slot notification was lost. Failures back
// off exponentially up to maxBackoff. A non-positive interval disables it.
// It returns immediately.
func StartResync(ctx context.Context, r Reloader, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		return
	}
	if logger == nil {
		logger = log.Default()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			changed, err := r.Reload(ctx)
			switch {
			case err != nil:
				failures++
				logger.Warn("resync failed", "err", err, "failures", failures)
			case changed:
				failures = 0
				logger.Debug("resync picked up a missed change")
			default:
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure and
// caps it at maxBackoff. A base above the cap is never shortened.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
