package usecase

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"nanny-match/internal/pkg/apperr"
)

// classify keeps errors that already carry an apperr kind and reports
// everything else as a storage failure.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.KindOf(err); ok {
		return err
	}
	return apperr.Storage(op, err)
}

func optionalBool(op, name, raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperr.Validation(op, "%s must be true or false", name)
	}
	return &b, nil
}

func optionalUUID(op, name, raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.Validation(op, "%s must be a uuid", name)
	}
	return &id, nil
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
