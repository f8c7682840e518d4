package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/pkg/apperr"
	"nanny-match/internal/query"
)

// ConfigQuery, StepQuery and FieldQuery carry the raw query-string values of
// the registry listing endpoints. Empty means "not filtered".
type ConfigQuery struct {
	TargetRole string
	IsDefault  string
	IsActive   string
}

type StepQuery struct {
	ConfigID string
	IsActive string
	OrderBy  string
}

type FieldQuery struct {
	// StepID is a single id or a comma separated list.
	StepID   string
	IsActive string
	OrderBy  string
}

type OnboardingUsecase interface {
	Configurations(ctx context.Context, q ConfigQuery) ([]onboarding.Configuration, error)
	DefaultConfigurations(ctx context.Context, role string) ([]onboarding.Configuration, error)
	Steps(ctx context.Context, q StepQuery) ([]onboarding.Step, error)
	StepsByRole(ctx context.Context, role string) ([]onboarding.Step, error)
	Fields(ctx context.Context, q FieldQuery) ([]onboarding.Field, error)
	ActiveFields(ctx context.Context, stepID string) ([]onboarding.Field, error)
}

type Onboarding struct {
	registry onboarding.Registry
	logger   *zap.Logger
}

func NewOnboardingUsecase(registry onboarding.Registry, logger *zap.Logger) *Onboarding {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Onboarding{registry: registry, logger: logger}
}

func (u *Onboarding) Configurations(ctx context.Context, q ConfigQuery) ([]onboarding.Configuration, error) {
	const op = "onboarding.configurations"

	isDefault, err := optionalBool(op, "is_default", q.IsDefault)
	if err != nil {
		return nil, err
	}
	isActive, err := optionalBool(op, "is_active", q.IsActive)
	if err != nil {
		return nil, err
	}

	out, err := u.registry.Configurations(ctx, onboarding.ConfigFilter{
		TargetRole: optionalString(q.TargetRole),
		IsDefault:  isDefault,
		IsActive:   isActive,
	})
	if err != nil {
		return nil, u.fail(op, err)
	}
	return out, nil
}

// DefaultConfigurations returns the role's default configuration as a list of
// zero or one element.
func (u *Onboarding) DefaultConfigurations(ctx context.Context, role string) ([]onboarding.Configuration, error) {
	const op = "onboarding.default_configuration"

	cfg, err := u.registry.DefaultConfiguration(ctx, strings.TrimSpace(role))
	if err != nil {
		return nil, u.fail(op, err)
	}
	if cfg == nil {
		return []onboarding.Configuration{}, nil
	}
	return []onboarding.Configuration{*cfg}, nil
}

func (u *Onboarding) Steps(ctx context.Context, q StepQuery) ([]onboarding.Step, error) {
	const op = "onboarding.steps"

	configID, err := optionalUUID(op, "config_id", q.ConfigID)
	if err != nil {
		return nil, err
	}
	isActive, err := optionalBool(op, "is_active", q.IsActive)
	if err != nil {
		return nil, err
	}

	out, err := u.registry.Steps(ctx, onboarding.StepFilter{
		ConfigID: configID,
		IsActive: isActive,
		OrderBy:  q.OrderBy,
	})
	if err != nil {
		return nil, u.fail(op, err)
	}
	return out, nil
}

func (u *Onboarding) StepsByRole(ctx context.Context, role string) ([]onboarding.Step, error) {
	out, err := u.registry.StepsByRole(ctx, strings.TrimSpace(role))
	if err != nil {
		return nil, u.fail("onboarding.steps_by_role", err)
	}
	return out, nil
}

func (u *Onboarding) Fields(ctx context.Context, q FieldQuery) ([]onboarding.Field, error) {
	const op = "onboarding.fields"

	var stepIDs []uuid.UUID
	for _, raw := range query.SplitList(q.StepID) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.Validation(op, "step_id %q is not a uuid", raw)
		}
		stepIDs = append(stepIDs, id)
	}
	if strings.TrimSpace(q.StepID) != "" && len(stepIDs) == 0 {
		return nil, apperr.Validation(op, "step_id must list at least one uuid")
	}
	isActive, err := optionalBool(op, "is_active", q.IsActive)
	if err != nil {
		return nil, err
	}

	out, err := u.registry.Fields(ctx, onboarding.FieldFilter{
		StepIDs:  stepIDs,
		IsActive: isActive,
		OrderBy:  q.OrderBy,
	})
	if err != nil {
		return nil, u.fail(op, err)
	}
	return out, nil
}

func (u *Onboarding) ActiveFields(ctx context.Context, stepID string) ([]onboarding.Field, error) {
	const op = "onboarding.active_fields"

	id, err := uuid.Parse(strings.TrimSpace(stepID))
	if err != nil {
		return nil, apperr.Validation(op, "step_id must be a uuid")
	}
	out, err := u.registry.ActiveFieldsByStep(ctx, id)
	if err != nil {
		return nil, u.fail(op, err)
	}
	return out, nil
}

func (u *Onboarding) fail(op string, err error) error {
	err = classify(op, err)
	if apperr.IsStorage(err) {
		u.logger.Error("registry read failed", zap.String("op", op), zap.Error(err))
	}
	return err
}
