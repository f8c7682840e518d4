package usecase

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nanny-match/internal/catalog"
	"nanny-match/internal/pkg/apperr"
	"nanny-match/internal/query"
	"nanny-match/internal/repository"
)

// TableQuery is a generic listing request as received from the query string.
// Filters maps "<column>__<op>" keys to raw operands.
type TableQuery struct {
	Table   string
	Filters map[string]string
	OrderBy string
	Limit   string
}

type TableUsecase interface {
	List(ctx context.Context, q TableQuery) ([]query.Row, error)
	Entities() []string
}

type Tables struct {
	repo   repository.TableRepository
	logger *zap.Logger
}

func NewTableUsecase(repo repository.TableRepository, logger *zap.Logger) *Tables {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tables{repo: repo, logger: logger}
}

func (u *Tables) Entities() []string { return catalog.Names() }

func (u *Tables) List(ctx context.Context, q TableQuery) ([]query.Row, error) {
	const op = "tables.list"

	d, ok := catalog.Lookup(strings.TrimSpace(q.Table))
	if !ok {
		return nil, apperr.NotFound(op, "unknown entity %q", q.Table)
	}

	limit := query.DefaultLimit
	if raw := strings.TrimSpace(q.Limit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.Validation(op, "limit must be an integer")
		}
		limit = n
	}
	if err := query.ValidateLimit(limit); err != nil {
		return nil, err
	}

	params := repository.TableListParams{
		Predicates: query.ParseFilters(q.Filters),
		Limit:      limit,
	}
	if o, ok := query.ParseOrder(q.OrderBy); ok {
		params.Order = &o
	}

	rows, compiled, err := u.repo.List(ctx, d, params)
	if err != nil {
		err = classify(op, err)
		if apperr.IsStorage(err) {
			u.logger.Error("table read failed", zap.String("table", d.Name()), zap.Error(err))
		}
		return nil, err
	}
	if len(compiled.Ignored) > 0 {
		u.logger.Debug("ignored filter columns", zap.String("table", d.Name()), zap.Strings("columns", compiled.Ignored))
	}
	return rows, nil
}
