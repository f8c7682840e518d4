package seeder

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"nanny-match/internal/database"
	"nanny-match/internal/database/postgres"
	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/domain/user"
)

//go:embed questionnaire.yaml
var defaultQuestionnaire []byte

type Questionnaire struct {
	Configurations []ConfigSeed `yaml:"configurations"`
}

type ConfigSeed struct {
	TargetRole string     `yaml:"target_role"`
	Name       string     `yaml:"name"`
	Version    int        `yaml:"version"`
	Steps      []StepSeed `yaml:"steps"`
}

type StepSeed struct {
	StepNumber  int         `yaml:"step_number"`
	StepKey     string      `yaml:"step_key"`
	Title       string      `yaml:"title"`
	Description *string     `yaml:"description"`
	IsRequired  *bool       `yaml:"is_required"`
	Fields      []FieldSeed `yaml:"fields"`
}

type FieldSeed struct {
	FieldKey              string         `yaml:"field_key"`
	FieldType             string         `yaml:"field_type"`
	Label                 string         `yaml:"label"`
	Description           *string        `yaml:"description"`
	Placeholder           *string        `yaml:"placeholder"`
	HelpText              *string        `yaml:"help_text"`
	ReferenceCategoryCode *string        `yaml:"reference_category_code"`
	IsRequired            bool           `yaml:"is_required"`
	AllowCustomValues     bool           `yaml:"allow_custom_values"`
	ValidationRules       map[string]any `yaml:"validation_rules"`
	FieldConfig           map[string]any `yaml:"field_config"`
}

// ParseQuestionnaire decodes and validates a questionnaire document.
func ParseQuestionnaire(b []byte) (Questionnaire, error) {
	var q Questionnaire
	if err := yaml.Unmarshal(b, &q); err != nil {
		return Questionnaire{}, fmt.Errorf("parse questionnaire: %w", err)
	}
	if len(q.Configurations) == 0 {
		return Questionnaire{}, errors.New("questionnaire has no configurations")
	}

	for ci := range q.Configurations {
		c := &q.Configurations[ci]
		if !user.ValidRole(c.TargetRole) {
			return Questionnaire{}, fmt.Errorf("configuration %q: unknown target role %q", c.Name, c.TargetRole)
		}
		if c.Name == "" {
			return Questionnaire{}, fmt.Errorf("configuration for %s has no name", c.TargetRole)
		}
		if c.Version <= 0 {
			c.Version = 1
		}

		steps := map[string]struct{}{}
		for si := range c.Steps {
			s := &c.Steps[si]
			if s.StepKey == "" || s.Title == "" {
				return Questionnaire{}, fmt.Errorf("configuration %q: step %d needs step_key and title", c.Name, s.StepNumber)
			}
			if _, dup := steps[s.StepKey]; dup {
				return Questionnaire{}, fmt.Errorf("configuration %q: duplicate step %q", c.Name, s.StepKey)
			}
			steps[s.StepKey] = struct{}{}

			fields := map[string]struct{}{}
			for _, f := range s.Fields {
				if f.FieldKey == "" || f.Label == "" {
					return Questionnaire{}, fmt.Errorf("step %q: field needs field_key and label", s.StepKey)
				}
				if !onboarding.FieldType(f.FieldType).Known() {
					return Questionnaire{}, fmt.Errorf("step %q field %q: unknown field type %q", s.StepKey, f.FieldKey, f.FieldType)
				}
				if _, dup := fields[f.FieldKey]; dup {
					return Questionnaire{}, fmt.Errorf("step %q: duplicate field %q", s.StepKey, f.FieldKey)
				}
				fields[f.FieldKey] = struct{}{}
			}
		}
	}
	return q, nil
}

// QuestionnaireSeeder installs the default questionnaire per role. A
// configuration is matched by role, name and version; steps and fields are
// upserted by key, so reruns refresh labels without duplicating rows.
type QuestionnaireSeeder struct {
	// Source overrides the embedded questionnaire when set.
	Source []byte
}

func (QuestionnaireSeeder) Name() string { return "questionnaire" }

func (s QuestionnaireSeeder) Run(ctx context.Context, db database.DB) error {
	src := s.Source
	if len(src) == 0 {
		src = defaultQuestionnaire
	}
	q, err := ParseQuestionnaire(src)
	if err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, c := range q.Configurations {
			if err := seedConfiguration(ctx, tx, c); err != nil {
				return fmt.Errorf("configuration %q: %w", c.Name, err)
			}
		}
		return nil
	})
}

func seedConfiguration(ctx context.Context, tx database.Tx, c ConfigSeed) error {
	var cfgID uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM onboarding_configs WHERE target_role = $1 AND name = $2 AND version = $3
		 ORDER BY created_at DESC LIMIT 1`,
		c.TargetRole, c.Name, c.Version,
	).Scan(&cfgID)
	switch {
	case err == nil:
	case postgres.IsNoRows(err):
		if err := tx.QueryRow(ctx,
			`INSERT INTO onboarding_configs (target_role, name, is_default, is_active, version)
			 VALUES ($1, $2, TRUE, TRUE, $3)
			 RETURNING id`,
			c.TargetRole, c.Name, c.Version,
		).Scan(&cfgID); err != nil {
			return err
		}
	default:
		return err
	}

	for _, st := range c.Steps {
		required := true
		if st.IsRequired != nil {
			required = *st.IsRequired
		}

		var stepID uuid.UUID
		if err := tx.QueryRow(ctx,
			`INSERT INTO onboarding_steps (config_id, step_number, step_key, title, description, is_required)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (config_id, step_key) DO UPDATE SET
			   step_number = EXCLUDED.step_number,
			   title = EXCLUDED.title,
			   description = EXCLUDED.description,
			   is_required = EXCLUDED.is_required
			 RETURNING id`,
			cfgID, st.StepNumber, st.StepKey, st.Title, st.Description, required,
		).Scan(&stepID); err != nil {
			return fmt.Errorf("step %s: %w", st.StepKey, err)
		}

		for i, f := range st.Fields {
			rules, err := jsonOrNil(f.ValidationRules)
			if err != nil {
				return err
			}
			fieldCfg, err := jsonOrNil(f.FieldConfig)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(ctx,
				`INSERT INTO onboarding_fields (
				   step_id, field_key, field_type, label, description, placeholder, help_text,
				   reference_category_code, is_required, field_order, allow_custom_values,
				   validation_rules, field_config
				 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				 ON CONFLICT (step_id, field_key) DO UPDATE SET
				   field_type = EXCLUDED.field_type,
				   label = EXCLUDED.label,
				   description = EXCLUDED.description,
				   placeholder = EXCLUDED.placeholder,
				   help_text = EXCLUDED.help_text,
				   reference_category_code = EXCLUDED.reference_category_code,
				   is_required = EXCLUDED.is_required,
				   field_order = EXCLUDED.field_order,
				   allow_custom_values = EXCLUDED.allow_custom_values,
				   validation_rules = EXCLUDED.validation_rules,
				   field_config = EXCLUDED.field_config,
				   updated_at = NOW()`,
				stepID, f.FieldKey, f.FieldType, f.Label, f.Description, f.Placeholder, f.HelpText,
				f.ReferenceCategoryCode, f.IsRequired, i+1, f.AllowCustomValues,
				rules, fieldCfg,
			); err != nil {
				return fmt.Errorf("field %s.%s: %w", st.StepKey, f.FieldKey, err)
			}
		}
	}
	return nil
}

// jsonOrNil encodes m for a JSONB parameter; an empty map becomes SQL NULL.
func jsonOrNil(m map[string]any) ([]byte, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}
