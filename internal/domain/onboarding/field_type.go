package onboarding

import (
	"strings"

	"nanny-match/internal/domain/answer"
)

// FieldType is the declared input type of a field as stored in
// onboarding_fields.field_type.
type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldEmail       FieldType = "email"
	FieldPhone       FieldType = "phone"
	FieldNumber      FieldType = "number"
	FieldBoolean     FieldType = "boolean"
	FieldDate        FieldType = "date"
	FieldTime        FieldType = "time"
	FieldSelect      FieldType = "select"
	FieldMultiselect FieldType = "multiselect"
	FieldJSON        FieldType = "json"
	FieldCustom      FieldType = "custom"
)

var answerKinds = map[FieldType]answer.Kind{
	FieldText:        answer.KindText,
	FieldTextarea:    answer.KindText,
	FieldEmail:       answer.KindText,
	FieldPhone:       answer.KindText,
	FieldNumber:      answer.KindNumber,
	FieldBoolean:     answer.KindBoolean,
	FieldDate:        answer.KindDate,
	FieldTime:        answer.KindTime,
	FieldSelect:      answer.KindJSON,
	FieldMultiselect: answer.KindJSON,
	FieldJSON:        answer.KindJSON,
	FieldCustom:      answer.KindCustom,
}

func (t FieldType) normalized() FieldType {
	return FieldType(strings.ToLower(strings.TrimSpace(string(t))))
}

// AnswerKind is the value kind stored for this field type. Unknown types
// report false.
func (t FieldType) AnswerKind() (answer.Kind, bool) {
	k, ok := answerKinds[t.normalized()]
	return k, ok
}

func (t FieldType) Known() bool {
	_, ok := answerKinds[t.normalized()]
	return ok
}

// Accepts reports whether a value of kind k may be stored for f. Fields that
// allow custom values also take the custom kind.
func (f Field) Accepts(k answer.Kind) bool {
	if want, ok := f.FieldType.AnswerKind(); ok && want == k {
		return true
	}
	return k == answer.KindCustom && f.AllowCustomValues
}
