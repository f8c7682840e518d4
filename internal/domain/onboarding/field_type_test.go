package onboarding

import (
	"testing"

	"nanny-match/internal/domain/answer"
)

func TestField_Accepts(t *testing.T) {
	cases := []struct {
		fieldType FieldType
		custom    bool
		kind      answer.Kind
		want      bool
	}{
		{FieldNumber, false, answer.KindNumber, true},
		{FieldNumber, false, answer.KindText, false},
		{"Textarea", false, answer.KindText, true},
		{FieldMultiselect, false, answer.KindJSON, true},
		{FieldSelect, false, answer.KindCustom, false},
		{FieldSelect, true, answer.KindCustom, true},
		{FieldCustom, false, answer.KindCustom, true},
		{FieldTime, false, answer.KindDate, false},
		{"slider", false, answer.KindNumber, false},
	}

	for _, tc := range cases {
		f := Field{FieldType: tc.fieldType, AllowCustomValues: tc.custom}
		if got := f.Accepts(tc.kind); got != tc.want {
			t.Fatalf("%s (custom=%v) accepts %s: got %v want %v", tc.fieldType, tc.custom, tc.kind, got, tc.want)
		}
	}
}

func TestFieldType_Known(t *testing.T) {
	if !FieldType(" DATE ").Known() {
		t.Fatalf("expected field types to be case and space insensitive")
	}
	if FieldType("slider").Known() {
		t.Fatalf("unexpected known type")
	}
}
