package onboarding

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrFieldNotFound = errors.New("onboarding field not found")

// Registry is the read-only view of the config -> step -> field hierarchy.
type Registry interface {
	Configurations(ctx context.Context, f ConfigFilter) ([]Configuration, error)
	// DefaultConfiguration returns the newest active default configuration
	// for role, or nil when there is none.
	DefaultConfiguration(ctx context.Context, role string) (*Configuration, error)

	Steps(ctx context.Context, f StepFilter) ([]Step, error)
	StepsByRole(ctx context.Context, role string) ([]Step, error)

	Fields(ctx context.Context, f FieldFilter) ([]Field, error)
	ActiveFieldsByStep(ctx context.Context, stepID uuid.UUID) ([]Field, error)

	// ResolveField returns ErrFieldNotFound when the reference matches nothing.
	ResolveField(ctx context.Context, ref FieldRef) (Field, error)
}
