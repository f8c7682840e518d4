package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"nanny-match/internal/domain/answer"
	"nanny-match/internal/pkg/apperr"
)

// SaveAnswerRequest accepts the value either as a tagged object
// {"type": ..., "value": ...} or through the flat *_value slots, of which
// exactly one may be set.
type SaveAnswerRequest struct {
	ConfigID    string          `json:"config_id"`
	StepKey     string          `json:"step_key"`
	FieldKey    string          `json:"field_key"`
	Value       json.RawMessage `json:"value"`
	IsCompleted bool            `json:"is_completed"`

	TextValue    json.RawMessage `json:"text_value"`
	NumberValue  json.RawMessage `json:"number_value"`
	BooleanValue json.RawMessage `json:"boolean_value"`
	DateValue    json.RawMessage `json:"date_value"`
	TimeValue    json.RawMessage `json:"time_value"`
	JSONValue    json.RawMessage `json:"json_value"`
	CustomValues json.RawMessage `json:"custom_values"`
}

func (r SaveAnswerRequest) AnswerValue() (answer.Value, error) {
	const op = "answers.decode"

	slots := []struct {
		kind answer.Kind
		raw  json.RawMessage
	}{
		{answer.KindText, r.TextValue},
		{answer.KindNumber, r.NumberValue},
		{answer.KindBoolean, r.BooleanValue},
		{answer.KindDate, r.DateValue},
		{answer.KindTime, r.TimeValue},
		{answer.KindJSON, r.JSONValue},
		{answer.KindCustom, r.CustomValues},
	}

	var (
		kind answer.Kind
		raw  json.RawMessage
		set  int
	)
	for _, s := range slots {
		if present(s.raw) {
			kind, raw = s.kind, s.raw
			set++
		}
	}

	switch {
	case present(r.Value) && set > 0:
		return answer.Value{}, apperr.Validation(op, "send either value or one *_value field, not both")
	case present(r.Value):
		var v answer.Value
		if err := json.Unmarshal(r.Value, &v); err != nil {
			return answer.Value{}, apperr.Validation(op, "%v", err)
		}
		return v, nil
	case set == 0:
		return answer.Value{}, apperr.Validation(op, "exactly one value is required")
	case set > 1:
		return answer.Value{}, apperr.Validation(op, "exactly one value is allowed, got %d", set)
	}

	v, err := answer.Decode(string(kind), raw)
	if err != nil {
		return answer.Value{}, apperr.Validation(op, "%v", err)
	}
	return v, nil
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// AnswerResponse mirrors the stored row: the tagged value plus the flat
// slot columns, only one of which is non-null.
type AnswerResponse struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	ConfigID    uuid.UUID    `json:"config_id"`
	StepKey     string       `json:"step_key"`
	FieldKey    string       `json:"field_key"`
	Value       answer.Value `json:"value"`
	IsCompleted bool         `json:"is_completed"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	TextValue    *string         `json:"text_value"`
	NumberValue  *float64        `json:"number_value"`
	BooleanValue *bool           `json:"boolean_value"`
	DateValue    *string         `json:"date_value"`
	TimeValue    *string         `json:"time_value"`
	JSONValue    json.RawMessage `json:"json_value"`
	CustomValues []string        `json:"custom_values"`
}

type SaveAnswerResponse struct {
	AnswerResponse
	Inserted bool `json:"inserted"`
}

func NewAnswerResponse(a answer.Answer) AnswerResponse {
	res := AnswerResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		ConfigID:    a.ConfigID,
		StepKey:     a.StepKey,
		FieldKey:    a.FieldKey,
		Value:       a.Value,
		IsCompleted: a.IsCompleted,
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
		JSONValue:   json.RawMessage("null"),
	}

	switch a.Value.Kind() {
	case answer.KindText:
		s, _ := a.Value.Text()
		res.TextValue = &s
	case answer.KindNumber:
		n, _ := a.Value.Number()
		res.NumberValue = &n
	case answer.KindBoolean:
		b, _ := a.Value.Bool()
		res.BooleanValue = &b
	case answer.KindDate:
		s := a.Value.String()
		res.DateValue = &s
	case answer.KindTime:
		s := a.Value.String()
		res.TimeValue = &s
	case answer.KindJSON:
		doc, _ := a.Value.JSON()
		res.JSONValue = doc
	case answer.KindCustom:
		res.CustomValues, _ = a.Value.Custom()
	}
	return res
}

func NewAnswerResponses(in []answer.Answer) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewAnswerResponse(a))
	}
	return out
}
