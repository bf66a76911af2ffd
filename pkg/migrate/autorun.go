package migrate

import (
	"context"
	"fmt"

	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/config"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/db"
	"github.com/kleytondigital/shopflow-catalog-ai-sub007/pkg/logger"
)

// MaybeRunDev applies the pricing schema on API startup when running in dev with
// SHOPFLOW_AUTO_MIGRATE enabled. Other environments migrate through cmd/migrate.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if client == nil {
		return fmt.Errorf("db client required for auto-migrate")
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"dir":           DefaultDir,
		"version_table": VersionTable,
	})
	logg.Info(ctx, "applying pricing schema migrations")

	if err := ValidateDir(DefaultDir); err != nil {
		return fmt.Errorf("validating pricing migrations: %w", err)
	}
	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("applying pricing migrations: %w", err)
	}

	logg.Info(ctx, "pricing schema up to date")
	return nil
}
