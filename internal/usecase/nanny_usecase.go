package usecase

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nanny-match/internal/domain/user"
	"nanny-match/internal/pkg/apperr"
)

const (
	DefaultNannyLimit = 3
	MaxNannyLimit     = 10
)

type NannyUsecase interface {
	// Simple lists available nannies, newest first. rawLimit is the query
	// string value; empty means DefaultNannyLimit.
	Simple(ctx context.Context, rawLimit string) ([]user.NannySummary, error)
}

type Nannies struct {
	dir    user.Directory
	logger *zap.Logger
}

func NewNannyUsecase(dir user.Directory, logger *zap.Logger) *Nannies {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Nannies{dir: dir, logger: logger}
}

func (u *Nannies) Simple(ctx context.Context, rawLimit string) ([]user.NannySummary, error) {
	const op = "nannies.simple"

	limit := DefaultNannyLimit
	if raw := strings.TrimSpace(rawLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.Validation(op, "limit must be an integer")
		}
		limit = n
	}
	if limit < 1 || limit > MaxNannyLimit {
		return nil, apperr.Validation(op, "limit must be between 1 and %d", MaxNannyLimit)
	}

	out, err := u.dir.ActiveNannies(ctx, limit)
	if err != nil {
		u.logger.Error("nanny listing failed", zap.Error(err))
		return nil, classify(op, err)
	}
	return out, nil
}
