package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// queryTracer implements pgx.QueryTracer.
type queryTracer struct {
	logger *zap.Logger
	slow   time.Duration
	now    func() time.Time
}

func newQueryTracer(logger *zap.Logger, slow time.Duration) *queryTracer {
	return &queryTracer{logger: logger, slow: slow, now: time.Now}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: t.now()})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)
	fields := []zap.Field{
		zap.String("sql", compactSQL(start.sql)),
		zap.Duration("elapsed", elapsed),
	}

	switch {
	case data.Err != nil && !errors.Is(data.Err, pgx.ErrNoRows) && !errors.Is(data.Err, context.Canceled):
		t.logger.Warn("query failed", append(fields, zap.Error(data.Err))...)
	case t.slow > 0 && elapsed >= t.slow:
		t.logger.Warn("slow query", append(fields, zap.Int64("rows", data.CommandTag.RowsAffected()))...)
	}
}

func compactSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
