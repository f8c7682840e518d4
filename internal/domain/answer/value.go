package answer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Kind is the discriminant of a Value.
type Kind string

const (
	KindText    Kind = "text"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindTime    Kind = "time"
	KindJSON    Kind = "json"
	KindCustom  Kind = "custom"
)

var Kinds = []Kind{KindText, KindNumber, KindBoolean, KindDate, KindTime, KindJSON, KindCustom}

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Kinds, k) {
		return k, true
	}
	return "", false
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

var ErrInvalidValue = errors.New("invalid answer value")

// Value holds exactly one populated slot selected by its Kind. The zero Value
// holds nothing and is rejected by every store operation.
type Value struct {
	kind    Kind
	text    string
	number  float64
	boolean bool
	date    time.Time
	clock   time.Duration
	doc     json.RawMessage
	custom  []string
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Number(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, fmt.Errorf("%w: number must be finite", ErrInvalidValue)
	}
	return Value{kind: KindNumber, number: f}, nil
}

func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

// Date keeps only the calendar date of t.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// TimeOfDay takes the offset since midnight; it must fall within one day.
func TimeOfDay(d time.Duration) (Value, error) {
	if d < 0 || d >= 24*time.Hour {
		return Value{}, fmt.Errorf("%w: time of day out of range", ErrInvalidValue)
	}
	return Value{kind: KindTime, clock: d}, nil
}

// JSON stores a structured document. The raw bytes must be valid JSON and not null.
func JSON(raw []byte) (Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Value{}, fmt.Errorf("%w: json value is empty", ErrInvalidValue)
	}
	if !json.Valid(trimmed) {
		return Value{}, fmt.Errorf("%w: malformed json", ErrInvalidValue)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return Value{kind: KindJSON, doc: json.RawMessage(buf.Bytes())}, nil
}

func Custom(items []string) Value {
	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		out = append(out, it)
	}
	return Value{kind: KindCustom, custom: out}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsZero() bool { return v.kind == "" }

func (v Value) Text() (string, bool)   { return v.text, v.kind == KindText }
func (v Value) Number() (float64, bool) { return v.number, v.kind == KindNumber }
func (v Value) Bool() (bool, bool)     { return v.boolean, v.kind == KindBoolean }
func (v Value) Date() (time.Time, bool) { return v.date, v.kind == KindDate }
func (v Value) TimeOfDay() (time.Duration, bool) {
	return v.clock, v.kind == KindTime
}

func (v Value) JSON() (json.RawMessage, bool) {
	if v.kind != KindJSON {
		return nil, false
	}
	return slices.Clone(v.doc), true
}

func (v Value) Custom() ([]string, bool) {
	if v.kind != KindCustom {
		return nil, false
	}
	return slices.Clone(v.custom), true
}

// Equal compares kinds and the populated slot only.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.number == o.number
	case KindBoolean:
		return v.boolean == o.boolean
	case KindDate:
		return v.date.Equal(o.date)
	case KindTime:
		return v.clock == o.clock
	case KindJSON:
		return bytes.Equal(v.doc, o.doc)
	case KindCustom:
		return slices.Equal(v.custom, o.custom)
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return fmt.Sprintf("%g", v.number)
	case KindBoolean:
		return fmt.Sprintf("%t", v.boolean)
	case KindDate:
		return v.date.Format(DateLayout)
	case KindTime:
		return formatClock(v.clock)
	case KindJSON:
		return string(v.doc)
	case KindCustom:
		return strings.Join(v.custom, ",")
	default:
		return ""
	}
}

type wireValue struct {
	Type  Kind            `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}

	var payload any
	switch v.kind {
	case KindText:
		payload = v.text
	case KindNumber:
		payload = v.number
	case KindBoolean:
		payload = v.boolean
	case KindDate:
		payload = v.date.Format(DateLayout)
	case KindTime:
		payload = formatClock(v.clock)
	case KindJSON:
		payload = v.doc
	case KindCustom:
		payload = v.custom
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireValue{Type: v.kind, Value: raw})
}

func (v *Value) UnmarshalJSON(b []byte) error {
	var w wireValue
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	parsed, err := Decode(string(w.Type), w.Value)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Decode builds a Value from a kind name and its JSON-encoded payload.
func Decode(kind string, raw json.RawMessage) (Value, error) {
	k, ok := ParseKind(kind)
	if !ok {
		return Value{}, fmt.Errorf("%w: unknown type %q", ErrInvalidValue, kind)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Value{}, fmt.Errorf("%w: missing %s value", ErrInvalidValue, k)
	}

	switch k {
	case KindText:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("%w: text value must be a string", ErrInvalidValue)
		}
		return Text(s), nil
	case KindNumber:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return Value{}, fmt.Errorf("%w: number value must be numeric", ErrInvalidValue)
		}
		return Number(f)
	case KindBoolean:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return Value{}, fmt.Errorf("%w: boolean value must be true or false", ErrInvalidValue)
		}
		return Bool(b), nil
	case KindDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("%w: date value must be a string", ErrInvalidValue)
		}
		return ParseDate(s)
	case KindTime:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, fmt.Errorf("%w: time value must be a string", ErrInvalidValue)
		}
		return ParseTimeOfDay(s)
	case KindJSON:
		return JSON(raw)
	case KindCustom:
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			return Value{}, fmt.Errorf("%w: custom value must be a list of strings", ErrInvalidValue)
		}
		return Custom(items), nil
	}
	return Value{}, fmt.Errorf("%w: unknown type %q", ErrInvalidValue, kind)
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t), nil
	}
	return Value{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidValue, s)
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS.
func ParseTimeOfDay(s string) (Value, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimeLayout, "15:04"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
		return TimeOfDay(d)
	}
	return Value{}, fmt.Errorf("%w: time %q is not HH:MM[:SS]", ErrInvalidValue, s)
}

func formatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
