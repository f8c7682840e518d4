package usecase

import (
	"context"
	"time"

	"nanny-match/internal/catalog"
	"nanny-match/internal/config"
	"nanny-match/internal/database"
	"nanny-match/internal/pkg/apperr"
	"nanny-match/internal/query"
	"nanny-match/internal/repository"
)

type DatabaseInfo struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Name     string `json:"name"`
	User     string `json:"user"`
	SSLMode  string `json:"ssl_mode"`
	MaxConns int32  `json:"max_conns"`
}

type DatabaseTest struct {
	Connected   bool             `json:"connected"`
	Version     string           `json:"version"`
	Database    string           `json:"database"`
	ServerTime  time.Time        `json:"server_time"`
	TableCounts map[string]int64 `json:"table_counts"`
}

type DevUsecase interface {
	DatabaseInfo() DatabaseInfo
	DatabaseTest(ctx context.Context) (DatabaseTest, error)
}

type Dev struct {
	cfg    config.DatabaseConfig
	db     database.DB
	tables repository.TableRepository
}

func NewDevUsecase(cfg config.DatabaseConfig, db database.DB, tables repository.TableRepository) *Dev {
	return &Dev{cfg: cfg, db: db, tables: tables}
}

// DatabaseInfo reports the connection target. The password is never part of
// the result.
func (u *Dev) DatabaseInfo() DatabaseInfo {
	return DatabaseInfo{
		Host:     u.cfg.DBHost,
		Port:     u.cfg.DBPort,
		Name:     u.cfg.DBName,
		User:     u.cfg.DBUser,
		SSLMode:  u.cfg.DBSSLMode,
		MaxConns: u.cfg.PoolMaxConns,
	}
}

func countedTables() []*query.Descriptor {
	out := make([]*query.Descriptor, 0, 5)
	for _, name := range []string{"profiles", "user_roles"} {
		if d, ok := catalog.Lookup(name); ok {
			out = append(out, d)
		}
	}
	return append(out, catalog.OnboardingConfigs, catalog.OnboardingSteps, catalog.OnboardingFields)
}

func (u *Dev) DatabaseTest(ctx context.Context) (DatabaseTest, error) {
	const op = "dev.database_test"

	var res DatabaseTest
	if err := u.db.QueryRow(ctx, `SELECT version(), current_database(), now()`).Scan(&res.Version, &res.Database, &res.ServerTime); err != nil {
		return DatabaseTest{}, apperr.Storage(op, err)
	}
	res.Connected = true
	res.ServerTime = res.ServerTime.UTC()

	res.TableCounts = make(map[string]int64)
	for _, d := range countedTables() {
		n, err := u.tables.Count(ctx, d)
		if err != nil {
			return DatabaseTest{}, apperr.Storage(op, err)
		}
		res.TableCounts[d.Name()] = n
	}
	return res, nil
}
