package repository

import (
	"context"
	"strconv"
	"strings"

	"nanny-match/internal/catalog"
	"nanny-match/internal/database"
	"nanny-match/internal/database/postgres"
	"nanny-match/internal/domain/onboarding"
	"nanny-match/internal/query"

	"github.com/google/uuid"
)

type PostgresOnboardingRepository struct {
	db database.DB
}

var _ onboarding.Registry = (*PostgresOnboardingRepository)(nil)

func NewPostgresOnboardingRepository(db database.DB) *PostgresOnboardingRepository {
	return &PostgresOnboardingRepository{db: db}
}

const configColumns = `id, target_role, name, is_default, is_active, version, created_at, updated_at`

const stepColumns = `id, config_id, step_number, step_key, title, description, is_required, is_active, created_at`

func fieldColumns(alias string) string {
	cols := []string{
		"id", "step_id", "group_id", "field_key", "field_type", "label", "description",
		"placeholder", "help_text", "reference_category_code", "is_required", "is_active",
		"field_order", "allow_custom_values", "validation_rules", "field_config",
		"created_at", "updated_at",
	}
	if alias == "" {
		return strings.Join(cols, ", ")
	}
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

func boolOperand(b bool) string { return strconv.FormatBool(b) }

func (r *PostgresOnboardingRepository) Configurations(ctx context.Context, f onboarding.ConfigFilter) ([]onboarding.Configuration, error) {
	preds := make([]query.Predicate, 0, 3)
	if f.TargetRole != nil {
		preds = append(preds, query.Eq("target_role", *f.TargetRole))
	}
	if f.IsDefault != nil {
		preds = append(preds, query.Eq("is_default", boolOperand(*f.IsDefault)))
	}
	if f.IsActive != nil {
		preds = append(preds, query.Eq("is_active", boolOperand(*f.IsActive)))
	}

	c, err := query.Compile(catalog.OnboardingConfigs, preds, &query.Order{Column: "created_at", Dir: query.Desc})
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT `+configColumns+` FROM onboarding_configs`+c.Where()+c.OrderBy(), c.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]onboarding.Configuration, 0)
	for rows.Next() {
		cfg, err := scanConfiguration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOnboardingRepository) DefaultConfiguration(ctx context.Context, role string) (*onboarding.Configuration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+configColumns+`
		 FROM onboarding_configs
		 WHERE target_role = $1 AND is_default = TRUE AND is_active = TRUE
		 ORDER BY created_at DESC
		 LIMIT 1`,
		role,
	)
	cfg, err := scanConfiguration(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *PostgresOnboardingRepository) Steps(ctx context.Context, f onboarding.StepFilter) ([]onboarding.Step, error) {
	preds := make([]query.Predicate, 0, 2)
	if f.ConfigID != nil {
		preds = append(preds, query.Eq("config_id", f.ConfigID.String()))
	}
	if f.IsActive != nil {
		preds = append(preds, query.Eq("is_active", boolOperand(*f.IsActive)))
	}

	orderBy := f.OrderBy
	if strings.TrimSpace(orderBy) == "" {
		orderBy = "step_number"
	}
	var order *query.Order
	if o, ok := query.ParseOrder(orderBy); ok {
		order = &o
	}

	c, err := query.Compile(catalog.OnboardingSteps, preds, order)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT `+stepColumns+` FROM onboarding_steps`+c.Where()+c.OrderBy(), c.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]onboarding.Step, 0)
	for rows.Next() {
		var s onboarding.Step
		if err := rows.Scan(
			&s.ID, &s.ConfigID, &s.StepNumber, &s.StepKey, &s.Title,
			&s.Description, &s.IsRequired, &s.IsActive, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOnboardingRepository) StepsByRole(ctx context.Context, role string) ([]onboarding.Step, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.config_id, c.name, s.step_number, s.step_key, s.title, s.description,
		        s.is_required, s.is_active, s.created_at
		 FROM onboarding_steps s
		 JOIN onboarding_configs c ON c.id = s.config_id
		 WHERE c.target_role = $1 AND s.is_active = TRUE
		 ORDER BY s.step_number ASC`,
		role,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]onboarding.Step, 0)
	for rows.Next() {
		var s onboarding.Step
		if err := rows.Scan(
			&s.ID, &s.ConfigID, &s.ConfigName, &s.StepNumber, &s.StepKey, &s.Title,
			&s.Description, &s.IsRequired, &s.IsActive, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresOnboardingRepository) Fields(ctx context.Context, f onboarding.FieldFilter) ([]onboarding.Field, error) {
	preds := make([]query.Predicate, 0, 2)
	switch len(f.StepIDs) {
	case 0:
	case 1:
		preds = append(preds, query.Eq("step_id", f.StepIDs[0].String()))
	default:
		ids := make([]string, 0, len(f.StepIDs))
		for _, id := range f.StepIDs {
			ids = append(ids, id.String())
		}
		preds = append(preds, query.In("step_id", ids...))
	}
	if f.IsActive != nil {
		preds = append(preds, query.Eq("is_active", boolOperand(*f.IsActive)))
	}

	orderBy := f.OrderBy
	if strings.TrimSpace(orderBy) == "" {
		orderBy = "field_order"
	}
	var order *query.Order
	if o, ok := query.ParseOrder(orderBy); ok {
		order = &o
	}

	c, err := query.Compile(catalog.OnboardingFields, preds, order)
	if err != nil {
		return nil, err
	}
	return r.queryFields(ctx, `SELECT `+fieldColumns("")+` FROM onboarding_fields`+c.Where()+c.OrderBy(), c.Args...)
}

func (r *PostgresOnboardingRepository) ActiveFieldsByStep(ctx context.Context, stepID uuid.UUID) ([]onboarding.Field, error) {
	return r.queryFields(ctx,
		`SELECT `+fieldColumns("")+`
		 FROM onboarding_fields
		 WHERE step_id = $1 AND is_active = TRUE
		 ORDER BY field_order ASC`,
		stepID,
	)
}

func (r *PostgresOnboardingRepository) ResolveField(ctx context.Context, ref onboarding.FieldRef) (onboarding.Field, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+fieldColumns("f")+`
		 FROM onboarding_fields f
		 JOIN onboarding_steps s ON s.id = f.step_id
		 WHERE s.config_id = $1 AND s.step_key = $2 AND f.field_key = $3
		 ORDER BY f.is_active DESC, f.created_at DESC
		 LIMIT 1`,
		ref.ConfigID, ref.StepKey, ref.FieldKey,
	)
	fld, err := scanField(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return onboarding.Field{}, onboarding.ErrFieldNotFound
		}
		return onboarding.Field{}, err
	}
	return fld, nil
}

func (r *PostgresOnboardingRepository) queryFields(ctx context.Context, sql string, args ...any) ([]onboarding.Field, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]onboarding.Field, 0)
	for rows.Next() {
		fld, err := scanField(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fld)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanConfiguration(row database.Row) (onboarding.Configuration, error) {
	var c onboarding.Configuration
	err := row.Scan(&c.ID, &c.TargetRole, &c.Name, &c.IsDefault, &c.IsActive, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanField(row database.Row) (onboarding.Field, error) {
	var (
		f         onboarding.Field
		fieldType string
		rules     []byte
		config    []byte
	)
	err := row.Scan(
		&f.ID, &f.StepID, &f.GroupID, &f.FieldKey, &fieldType, &f.Label, &f.Description,
		&f.Placeholder, &f.HelpText, &f.ReferenceCategoryCode, &f.IsRequired, &f.IsActive,
		&f.FieldOrder, &f.AllowCustomValues, &rules, &config,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return onboarding.Field{}, err
	}
	f.FieldType = onboarding.FieldType(fieldType)
	if rules != nil {
		f.ValidationRules = rules
	}
	if config != nil {
		f.FieldConfig = config
	}
	return f, nil
}
