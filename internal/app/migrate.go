package app

import (
	"context"
	"os"

	"go.uber.org/zap"

	"nanny-match/internal/config"
	"nanny-match/internal/database"
	"nanny-match/internal/database/migration"
	"nanny-match/internal/database/seeder"
	"nanny-match/migrations"
)

// MigrationRunner prefers the configured directory when it exists on disk
// and falls back to the migrations compiled into the binary.
func MigrationRunner(cfg config.DatabaseConfig, logger *zap.Logger) migration.Runner {
	r := migration.Runner{Source: migrations.FS, Logger: logger}
	if cfg.MigrationsDir != "" {
		if st, err := os.Stat(cfg.MigrationsDir); err == nil && st.IsDir() {
			r.Dir = cfg.MigrationsDir
		}
	}
	return r
}

// Prepare applies migrations and seeders according to the database config.
func Prepare(ctx context.Context, cfg config.DatabaseConfig, db database.DB, logger *zap.Logger) error {
	if cfg.RunMigrations {
		n, err := MigrationRunner(cfg, logger.Named("migration")).Run(ctx, db.SQLDB())
		if err != nil {
			return err
		}
		logger.Info("migrations applied", zap.Int("count", n))
	}
	if cfg.RunSeeders {
		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger.Named("seeder")}
		if err := r.Run(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
