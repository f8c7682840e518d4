package onboarding

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Configuration is a named, versioned questionnaire for one target role.
type Configuration struct {
	ID         uuid.UUID
	TargetRole string
	Name       string
	IsDefault  bool
	IsActive   bool
	Version    int
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
}

// Step is an ordered section of a configuration. ConfigName is only filled
// by role lookups, which join the owning configuration.
type Step struct {
	ID          uuid.UUID
	ConfigID    uuid.UUID
	ConfigName  string
	StepNumber  int
	StepKey     string
	Title       string
	Description *string
	IsRequired  bool
	IsActive    bool
	CreatedAt   *time.Time
}

type Field struct {
	ID                    uuid.UUID
	StepID                uuid.UUID
	GroupID               *uuid.UUID
	FieldKey              string
	FieldType             FieldType
	Label                 string
	Description           *string
	Placeholder           *string
	HelpText              *string
	ReferenceCategoryCode *string
	IsRequired            bool
	IsActive              bool
	FieldOrder            int
	AllowCustomValues     bool
	ValidationRules       json.RawMessage
	FieldConfig           json.RawMessage
	CreatedAt             *time.Time
	UpdatedAt             *time.Time
}

type ConfigFilter struct {
	TargetRole *string
	IsDefault  *bool
	IsActive   *bool
}

// StepFilter narrows Steps. OrderBy uses the `column[:asc|desc]` form; an
// empty value orders by step_number.
type StepFilter struct {
	ConfigID *uuid.UUID
	IsActive *bool
	OrderBy  string
}

// FieldFilter narrows Fields. Several StepIDs select fields of every listed
// step; rows are ordered by OrderBy only, so fields of different steps may
// interleave.
type FieldFilter struct {
	StepIDs  []uuid.UUID
	IsActive *bool
	OrderBy  string
}

// FieldRef addresses a field the way answers do: by configuration and the
// step and field keys.
type FieldRef struct {
	ConfigID uuid.UUID
	StepKey  string
	FieldKey string
}
