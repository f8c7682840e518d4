package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestQueryTracer(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := newQueryTracer(zap.New(core), 100*time.Millisecond)

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return clock }

	run := func(sql string, took time.Duration, err error) {
		ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: sql})
		clock = clock.Add(took)
		tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: err})
	}

	run("SELECT 1", time.Millisecond, nil)
	run("SELECT 1", time.Millisecond, pgx.ErrNoRows)
	if logs.Len() != 0 {
		t.Fatalf("expected fast and no-rows queries to stay quiet, got %d entries", logs.Len())
	}

	run("SELECT\n\t*  FROM profiles", 200*time.Millisecond, nil)
	run("INSERT INTO x", time.Millisecond, errors.New("boom"))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Message != "slow query" || entries[0].ContextMap()["sql"] != "SELECT * FROM profiles" {
		t.Fatalf("unexpected slow entry: %+v", entries[0])
	}
	if entries[1].Message != "query failed" {
		t.Fatalf("unexpected failure entry: %+v", entries[1])
	}
}
