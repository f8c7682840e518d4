package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"nanny-match/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	MinLimit     = 1
	MaxLimit     = 1000
	DefaultLimit = 100
)

// ValidateLimit rejects row limits outside [MinLimit, MaxLimit].
func ValidateLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return apperr.Validation("query.limit", "limit must be between %d and %d", MinLimit, MaxLimit)
	}
	return nil
}

// Compiled holds the SQL fragments produced by Compile. Conditions reference
// Args through $1..$n in order.
type Compiled struct {
	Conditions []string
	Args       []any
	Order      string

	// Ignored lists filter and order columns that were dropped because the
	// descriptor does not declare them or cannot compare them.
	Ignored []string
}

func (c Compiled) Where() string {
	if len(c.Conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.Conditions, " AND ")
}

func (c Compiled) OrderBy() string {
	if c.Order == "" {
		return ""
	}
	return " ORDER BY " + c.Order
}

// Compile validates predicates and order against d. Unknown columns are
// dropped, never rejected. An operand that cannot be read as the column's
// type is a validation error.
func Compile(d *Descriptor, preds []Predicate, order *Order) (Compiled, error) {
	const op = "query.compile"

	var c Compiled
	if d == nil {
		return c, apperr.Validation(op, "no entity descriptor")
	}

	for _, p := range preds {
		col, ok := d.Column(p.Column)
		if !ok || !col.Kind.Comparable() {
			c.Ignored = append(c.Ignored, p.Column)
			continue
		}
		ident := quoteIdent(col.Name)

		switch p.Op {
		case OpEq:
			if len(p.Operands) != 1 {
				return Compiled{}, apperr.Validation(op, "filter %s__eq takes exactly one value", col.Name)
			}
			v, err := bindOperand(col, p.Operands[0])
			if err != nil {
				return Compiled{}, err
			}
			c.Args = append(c.Args, v)
			c.Conditions = append(c.Conditions, fmt.Sprintf("%s = $%d", ident, len(c.Args)))

		case OpIn:
			if len(p.Operands) == 0 {
				c.Conditions = append(c.Conditions, ident+" IN (NULL)")
				continue
			}
			holders := make([]string, 0, len(p.Operands))
			for _, raw := range p.Operands {
				v, err := bindOperand(col, raw)
				if err != nil {
					return Compiled{}, err
				}
				c.Args = append(c.Args, v)
				holders = append(holders, "$"+strconv.Itoa(len(c.Args)))
			}
			c.Conditions = append(c.Conditions, fmt.Sprintf("%s IN (%s)", ident, strings.Join(holders, ",")))

		default:
			c.Ignored = append(c.Ignored, p.Column)
		}
	}

	if order != nil && order.Column != "" {
		col, ok := d.Column(order.Column)
		if ok && col.Kind.Comparable() {
			dir := Asc
			if order.Dir == Desc {
				dir = Desc
			}
			c.Order = quoteIdent(col.Name) + " " + string(dir)
		} else {
			c.Ignored = append(c.Ignored, order.Column)
		}
	}

	return c, nil
}

// CompileRaw parses query-string filters and an order expression and
// compiles them against d.
func CompileRaw(d *Descriptor, rawFilters map[string]string, rawOrderBy string) (Compiled, error) {
	var order *Order
	if o, ok := ParseOrder(rawOrderBy); ok {
		order = &o
	}
	return Compile(d, ParseFilters(rawFilters), order)
}

// Select builds a bounded list query projecting every declared column of d.
// The limit is checked before anything else.
func Select(d *Descriptor, preds []Predicate, order *Order, limit int) (string, []any, Compiled, error) {
	if err := ValidateLimit(limit); err != nil {
		return "", nil, Compiled{}, err
	}
	c, err := Compile(d, preds, order)
	if err != nil {
		return "", nil, Compiled{}, err
	}

	args := append(make([]any, 0, len(c.Args)+1), c.Args...)
	args = append(args, limit)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(d.projection(), ", "))
	b.WriteString(" FROM ")
	b.WriteString(d.QuotedName())
	b.WriteString(c.Where())
	b.WriteString(c.OrderBy())
	b.WriteString(" LIMIT $")
	b.WriteString(strconv.Itoa(len(args)))

	return b.String(), args, c, nil
}

func (d *Descriptor) projection() []string {
	out := make([]string, 0, len(d.columns))
	for _, c := range d.columns {
		ident := quoteIdent(c.Name)
		if c.Kind == KindFloat {
			out = append(out, ident+"::float8 AS "+ident)
			continue
		}
		out = append(out, ident)
	}
	return out
}

func bindOperand(col Column, raw string) (any, error) {
	const op = "query.operand"
	s := strings.TrimSpace(raw)

	switch col.Kind {
	case KindText:
		return raw, nil
	case KindUUID:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, apperr.Validation(op, "%s expects a uuid", col.Name)
		}
		return id, nil
	case KindInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, apperr.Validation(op, "%s expects an integer", col.Name)
		}
		return n, nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, apperr.Validation(op, "%s expects a number", col.Name)
		}
		return f, nil
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, apperr.Validation(op, "%s expects true or false", col.Name)
		}
		return b, nil
	case KindTimestamp:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", DateLayout} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, apperr.Validation(op, "%s expects an RFC 3339 timestamp", col.Name)
	case KindDate:
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, apperr.Validation(op, "%s expects a YYYY-MM-DD date", col.Name)
		}
		return t, nil
	case KindTime:
		for _, layout := range []string{TimeLayout, "15:04"} {
			t, err := time.Parse(layout, s)
			if err != nil {
				continue
			}
			us := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
				int64(t.Minute())*int64(time.Minute/time.Microsecond) +
				int64(t.Second())*int64(time.Second/time.Microsecond)
			return pgtype.Time{Microseconds: us, Valid: true}, nil
		}
		return nil, apperr.Validation(op, "%s expects HH:MM[:SS]", col.Name)
	default:
		return nil, apperr.Validation(op, "%s cannot be filtered", col.Name)
	}
}
