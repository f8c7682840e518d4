package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/pkg/apperr"
)

func TestOnboarding_Configurations_ParsesFilters(t *testing.T) {
	reg := &mockRegistry{configs: []onboarding.Configuration{{Name: "Parent onboarding"}}}
	uc := NewOnboardingUsecase(reg, nil)

	out, err := uc.Configurations(context.Background(), ConfigQuery{TargetRole: "parent", IsDefault: "true"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 configuration, got %d", len(out))
	}
	f := reg.lastConfigFilter
	if f.TargetRole == nil || *f.TargetRole != "parent" || f.IsDefault == nil || !*f.IsDefault || f.IsActive != nil {
		t.Fatalf("unexpected filter: %+v", f)
	}

	if _, err := uc.Configurations(context.Background(), ConfigQuery{IsActive: "maybe"}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOnboarding_DefaultConfigurations(t *testing.T) {
	reg := &mockRegistry{}
	uc := NewOnboardingUsecase(reg, nil)

	out, err := uc.DefaultConfigurations(context.Background(), "nanny")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", out)
	}

	reg.defaultCfg = &onboarding.Configuration{ID: uuid.New(), TargetRole: "nanny"}
	out, err = uc.DefaultConfigurations(context.Background(), "nanny")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 || out[0].ID != reg.defaultCfg.ID {
		t.Fatalf("expected the default configuration, got %#v", out)
	}
}

func TestOnboarding_Steps(t *testing.T) {
	reg := &mockRegistry{}
	uc := NewOnboardingUsecase(reg, nil)
	cfgID := uuid.New()

	if _, err := uc.Steps(context.Background(), StepQuery{ConfigID: cfgID.String(), OrderBy: "step_number:desc"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reg.lastStepFilter.ConfigID == nil || *reg.lastStepFilter.ConfigID != cfgID || reg.lastStepFilter.OrderBy != "step_number:desc" {
		t.Fatalf("unexpected filter: %+v", reg.lastStepFilter)
	}
	if _, err := uc.Steps(context.Background(), StepQuery{ConfigID: "cfg-1"}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOnboarding_Fields_StepIDList(t *testing.T) {
	reg := &mockRegistry{}
	uc := NewOnboardingUsecase(reg, nil)
	a, b := uuid.New(), uuid.New()

	if _, err := uc.Fields(context.Background(), FieldQuery{StepID: a.String() + ", " + b.String()}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ids := reg.lastFieldFilter.StepIDs
	if len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Fatalf("unexpected step ids: %v", ids)
	}
	if _, err := uc.Fields(context.Background(), FieldQuery{StepID: a.String() + ",nope"}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := uc.ActiveFields(context.Background(), "nope"); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOnboarding_Fields_EmptyStepIDListRejected(t *testing.T) {
	reg := &mockRegistry{}
	uc := NewOnboardingUsecase(reg, nil)

	for _, raw := range []string{",,", " , "} {
		reg.lastFieldFilter = onboarding.FieldFilter{}
		if _, err := uc.Fields(context.Background(), FieldQuery{StepID: raw}); !apperr.IsValidation(err) {
			t.Fatalf("step_id=%q: expected validation error, got %v", raw, err)
		}
	}
	if _, err := uc.Fields(context.Background(), FieldQuery{}); err != nil {
		t.Fatalf("absent step_id must list all fields, got %v", err)
	}
	if reg.lastFieldFilter.StepIDs != nil {
		t.Fatalf("expected no step filter, got %v", reg.lastFieldFilter.StepIDs)
	}
}

func TestOnboarding_StorageErrorsAreClassified(t *testing.T) {
	reg := &mockRegistry{err: errors.New("connection reset")}
	uc := NewOnboardingUsecase(reg, nil)

	if _, err := uc.StepsByRole(context.Background(), "parent"); !apperr.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}

	reg.err = apperr.Validation("query.compile", "bad operand")
	if _, err := uc.Steps(context.Background(), StepQuery{}); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error to pass through, got %v", err)
	}
}
