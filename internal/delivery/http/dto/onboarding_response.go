package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nanny-match/internal/domain/onboarding"
)

type ConfigurationResponse struct {
	ID         uuid.UUID  `json:"id"`
	TargetRole string     `json:"target_role"`
	Name       string     `json:"name"`
	IsDefault  bool       `json:"is_default"`
	IsActive   bool       `json:"is_active"`
	Version    int        `json:"version"`
	CreatedAt  *time.Time `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type StepResponse struct {
	ID          uuid.UUID  `json:"id"`
	ConfigID    uuid.UUID  `json:"config_id"`
	ConfigName  string     `json:"config_name,omitempty"`
	StepNumber  int        `json:"step_number"`
	StepKey     string     `json:"step_key"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsRequired  bool       `json:"is_required"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *time.Time `json:"created_at"`
}

type FieldResponse struct {
	ID                    uuid.UUID       `json:"id"`
	StepID                uuid.UUID       `json:"step_id"`
	GroupID               *uuid.UUID      `json:"group_id"`
	FieldKey              string          `json:"field_key"`
	FieldType             string          `json:"field_type"`
	Label                 string          `json:"label"`
	Description           *string         `json:"description"`
	Placeholder           *string         `json:"placeholder"`
	HelpText              *string         `json:"help_text"`
	ReferenceCategoryCode *string         `json:"reference_category_code"`
	IsRequired            bool            `json:"is_required"`
	IsActive              bool            `json:"is_active"`
	FieldOrder            int             `json:"field_order"`
	AllowCustomValues     bool            `json:"allow_custom_values"`
	ValidationRules       json.RawMessage `json:"validation_rules"`
	FieldConfig           json.RawMessage `json:"field_config"`
	CreatedAt             *time.Time      `json:"created_at"`
	UpdatedAt             *time.Time      `json:"updated_at"`
}

func NewConfigurationResponses(in []onboarding.Configuration) []ConfigurationResponse {
	out := make([]ConfigurationResponse, 0, len(in))
	for _, c := range in {
		out = append(out, ConfigurationResponse{
			ID:         c.ID,
			TargetRole: c.TargetRole,
			Name:       c.Name,
			IsDefault:  c.IsDefault,
			IsActive:   c.IsActive,
			Version:    c.Version,
			CreatedAt:  utc(c.CreatedAt),
			UpdatedAt:  utc(c.UpdatedAt),
		})
	}
	return out
}

func NewStepResponses(in []onboarding.Step) []StepResponse {
	out := make([]StepResponse, 0, len(in))
	for _, s := range in {
		out = append(out, StepResponse{
			ID:          s.ID,
			ConfigID:    s.ConfigID,
			ConfigName:  s.ConfigName,
			StepNumber:  s.StepNumber,
			StepKey:     s.StepKey,
			Title:       s.Title,
			Description: s.Description,
			IsRequired:  s.IsRequired,
			IsActive:    s.IsActive,
			CreatedAt:   utc(s.CreatedAt),
		})
	}
	return out
}

func NewFieldResponses(in []onboarding.Field) []FieldResponse {
	out := make([]FieldResponse, 0, len(in))
	for _, f := range in {
		out = append(out, FieldResponse{
			ID:                    f.ID,
			StepID:                f.StepID,
			GroupID:               f.GroupID,
			FieldKey:              f.FieldKey,
			FieldType:             string(f.FieldType),
			Label:                 f.Label,
			Description:           f.Description,
			Placeholder:           f.Placeholder,
			HelpText:              f.HelpText,
			ReferenceCategoryCode: f.ReferenceCategoryCode,
			IsRequired:            f.IsRequired,
			IsActive:              f.IsActive,
			FieldOrder:            f.FieldOrder,
			AllowCustomValues:     f.AllowCustomValues,
			ValidationRules:       nullJSON(f.ValidationRules),
			FieldConfig:           nullJSON(f.FieldConfig),
			CreatedAt:             utc(f.CreatedAt),
			UpdatedAt:             utc(f.UpdatedAt),
		})
	}
	return out
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// nullJSON keeps an absent document rendering as null instead of failing
// the encoder on an empty RawMessage.
func nullJSON(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
