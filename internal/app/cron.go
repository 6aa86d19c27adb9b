package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alwasl/core/internal/pkg/cron"
	"github.com/alwasl/core/internal/pkg/session"
)

func (a *App) registerJobs() {
	a.cron.Register(cron.Job{
		Name:        "purge-expired-sessions",
		Description: "Delete login sessions past their expiry",
		Interval:    6 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := session.PurgeExpired(a.db)
			if err != nil {
				return err
			}
			if n > 0 {
				a.log.Info("purged expired sessions", zap.Int64("count", n))
			}
			return nil
		},
	})
}
