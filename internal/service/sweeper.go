package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// IdleSessionStore deletes sessions that have not been used recently.
type IdleSessionStore interface {
	DeleteIdle(ctx context.Context, before time.Time) []string
}

// CartClearer drops the cart of a removed session.
type CartClearer interface {
	Clear(ctx context.Context, session string)
}

// StartSessionSweeper removes sessions idle for longer than idle, together
// with their carts, every interval until ctx is done.
func StartSessionSweeper(
	ctx context.Context,
	sessions IdleSessionStore,
	carts CartClearer,
	interval time.Duration,
	idle time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed := sessions.DeleteIdle(ctx, time.Now().Add(-idle))
				for _, id := range removed {
					carts.Clear(ctx, id)
				}
				if len(removed) > 0 {
					log.Info("swept idle sessions", zap.Int("removed", len(removed)))
				}
			}
		}
	}()
}
