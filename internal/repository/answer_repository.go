package repository

import (
	"context"
	"fmt"
	"time"

	"nanny-match/internal/database"
	"nanny-match/internal/domain/answer"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PostgresAnswerRepository struct {
	db database.DB
}

var _ answer.Store = (*PostgresAnswerRepository)(nil)

func NewPostgresAnswerRepository(db database.DB) *PostgresAnswerRepository {
	return &PostgresAnswerRepository{db: db}
}

// valueColumns holds one nullable slot per answer kind. Exactly one is
// non-nil for a valid value.
type valueColumns struct {
	Text    *string
	Number  *float64
	Boolean *bool
	Date    *time.Time
	Time    pgtype.Time
	JSON    []byte
	Custom  []string
}

func columnsOf(v answer.Value) (valueColumns, error) {
	var c valueColumns
	switch v.Kind() {
	case answer.KindText:
		s, _ := v.Text()
		c.Text = &s
	case answer.KindNumber:
		n, _ := v.Number()
		c.Number = &n
	case answer.KindBoolean:
		b, _ := v.Bool()
		c.Boolean = &b
	case answer.KindDate:
		d, _ := v.Date()
		c.Date = &d
	case answer.KindTime:
		d, _ := v.TimeOfDay()
		c.Time = pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
	case answer.KindJSON:
		raw, _ := v.JSON()
		c.JSON = raw
	case answer.KindCustom:
		items, _ := v.Custom()
		if items == nil {
			items = []string{}
		}
		c.Custom = items
	default:
		return valueColumns{}, fmt.Errorf("%w: empty value", answer.ErrInvalidValue)
	}
	return c, nil
}

func (c valueColumns) value(kind string) (answer.Value, error) {
	k, ok := answer.ParseKind(kind)
	if !ok {
		return answer.Value{}, fmt.Errorf("%w: stored value type %q", answer.ErrInvalidValue, kind)
	}

	switch k {
	case answer.KindText:
		if c.Text != nil {
			return answer.Text(*c.Text), nil
		}
	case answer.KindNumber:
		if c.Number != nil {
			return answer.Number(*c.Number)
		}
	case answer.KindBoolean:
		if c.Boolean != nil {
			return answer.Bool(*c.Boolean), nil
		}
	case answer.KindDate:
		if c.Date != nil {
			return answer.Date(*c.Date), nil
		}
	case answer.KindTime:
		if c.Time.Valid {
			return answer.TimeOfDay(time.Duration(c.Time.Microseconds) * time.Microsecond)
		}
	case answer.KindJSON:
		if c.JSON != nil {
			return answer.JSON(c.JSON)
		}
	case answer.KindCustom:
		if c.Custom != nil {
			return answer.Custom(c.Custom), nil
		}
	}
	return answer.Value{}, fmt.Errorf("%w: %s slot is empty", answer.ErrInvalidValue, k)
}

// Save inserts the answer or overwrites every value slot of the existing row
// for the same (user, config, step_key, field_key). created_at is kept.
func (r *PostgresAnswerRepository) Save(ctx context.Context, s answer.Submission) (answer.Ack, error) {
	cols, err := columnsOf(s.Value)
	if err != nil {
		return answer.Ack{}, err
	}

	var ack answer.Ack
	err = database.WithTx(ctx, r.db, func(tx database.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO user_onboarding_data (
				id, user_id, config_id, step_key, field_key, value_type,
				text_value, number_value, boolean_value, date_value, time_value, json_value, custom_values,
				is_completed, created_at, updated_at
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW(),NOW())
			ON CONFLICT (user_id, config_id, step_key, field_key) DO UPDATE SET
				value_type = EXCLUDED.value_type,
				text_value = EXCLUDED.text_value,
				number_value = EXCLUDED.number_value,
				boolean_value = EXCLUDED.boolean_value,
				date_value = EXCLUDED.date_value,
				time_value = EXCLUDED.time_value,
				json_value = EXCLUDED.json_value,
				custom_values = EXCLUDED.custom_values,
				is_completed = EXCLUDED.is_completed,
				updated_at = NOW()
			RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`,
			uuid.New(),
			s.UserID,
			s.ConfigID,
			s.StepKey,
			s.FieldKey,
			string(s.Value.Kind()),
			cols.Text,
			cols.Number,
			cols.Boolean,
			cols.Date,
			cols.Time,
			cols.JSON,
			cols.Custom,
			s.IsCompleted,
		).Scan(&ack.ID, &ack.CreatedAt, &ack.UpdatedAt, &ack.Inserted)
	})
	if err != nil {
		return answer.Ack{}, err
	}
	return ack, nil
}

func (r *PostgresAnswerRepository) List(ctx context.Context, userID uuid.UUID, configID *uuid.UUID) ([]answer.Answer, error) {
	sql := `SELECT id, user_id, config_id, step_key, field_key, value_type,
	               text_value, number_value, boolean_value, date_value, time_value, json_value, custom_values,
	               is_completed, created_at, updated_at
	        FROM user_onboarding_data
	        WHERE user_id = $1`
	args := []any{userID}
	if configID != nil {
		sql += ` AND config_id = $2`
		args = append(args, *configID)
	}
	sql += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]answer.Answer, 0)
	for rows.Next() {
		var (
			a     answer.Answer
			kind  string
			slots valueColumns
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ConfigID, &a.StepKey, &a.FieldKey, &kind,
			&slots.Text, &slots.Number, &slots.Boolean, &slots.Date, &slots.Time, &slots.JSON, &slots.Custom,
			&a.IsCompleted, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		v, err := slots.value(kind)
		if err != nil {
			return nil, fmt.Errorf("answer %s: %w", a.ID, err)
		}
		a.Value = v
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
