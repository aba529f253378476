package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"maspatas/internal/usecase/commands"

	"go.uber.org/fx"
)

// purgeInterval paces the background sweep of expired request ids. Claims
// also reap their own key on replay, so the sweep only has to keep the
// table from accumulating keys nobody retries.
const purgeInterval = time.Hour

var MaintenanceModule = fx.Module("maintenance",
	fx.Invoke(startRequestIDPurger),
)

func startRequestIDPurger(lc fx.Lifecycle, maintenance commands.MaintenanceCommands) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(purgeInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						purged, err := maintenance.PurgeExpiredRequestIDs(ctx)
						if err != nil {
							slog.Error("failed to purge expired request ids", "error", err.Error())
							continue
						}
						if purged > 0 {
							slog.Info("purged expired request ids", "count", purged)
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
