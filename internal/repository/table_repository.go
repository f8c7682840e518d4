package repository

import (
	"context"

	"nanny-match/internal/database"
	"nanny-match/internal/query"
)

type TableListParams struct {
	Predicates []query.Predicate
	Order      *query.Order
	Limit      int
}

type TableRepository interface {
	List(ctx context.Context, d *query.Descriptor, p TableListParams) ([]query.Row, query.Compiled, error)
	Count(ctx context.Context, d *query.Descriptor) (int64, error)
}

type PostgresTableRepository struct {
	db database.DB
}

func NewPostgresTableRepository(db database.DB) *PostgresTableRepository {
	return &PostgresTableRepository{db: db}
}

// List reads rows of d. It never writes and never projects columns d does
// not declare. The limit is validated before the database is touched.
func (r *PostgresTableRepository) List(ctx context.Context, d *query.Descriptor, p TableListParams) ([]query.Row, query.Compiled, error) {
	sql, args, compiled, err := query.Select(d, p.Predicates, p.Order, p.Limit)
	if err != nil {
		return nil, query.Compiled{}, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, compiled, err
	}
	defer rows.Close()

	out := make([]query.Row, 0)
	for rows.Next() {
		row, err := d.ScanRow(rows)
		if err != nil {
			return nil, compiled, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, compiled, err
	}
	return out, compiled, nil
}

func (r *PostgresTableRepository) Count(ctx context.Context, d *query.Descriptor) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+d.QuotedName()).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
