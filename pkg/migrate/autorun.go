package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/receipt-processor/pkg/config"
	"github.com/angelmondragon/receipt-processor/pkg/db"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
)

// MaybeRun applies the embedded migrations at boot when the auto-migrate flag
// is on, so the receipts table exists before the first request.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": client.Dialect()})
	logg.Info(ctx, "running goose migrations")

	if err := Run(ctx, sqlDB, client.Dialect(), DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
