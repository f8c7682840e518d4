// Package cli implements the nannyctl maintenance commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nanny-match/internal/config"
	"nanny-match/internal/database"
	dbpostgres "nanny-match/internal/database/postgres"
	"nanny-match/internal/logger"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:           "nannyctl",
	Short:         "Maintenance commands for the nanny-match database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// env is what database commands need: config, a logger and an open pool.
type env struct {
	cfg config.Config
	log *zap.Logger
	db  database.DB
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	db, err := dbpostgres.Connect(ctx, cfg.Database, dbpostgres.WithQueryLogger(lg.Named("db"), cfg.Database.SlowQuery))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &env{cfg: cfg, log: lg, db: db}, nil
}

func (e *env) close() {
	_ = e.db.Close()
	_ = e.log.Sync()
}
