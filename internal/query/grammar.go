package query

import (
	"sort"
	"strings"
)

type Operator string

const (
	OpEq Operator = "eq"
	OpIn Operator = "in"
)

func parseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToLower(strings.TrimSpace(s))) {
	case OpEq:
		return OpEq, true
	case OpIn:
		return OpIn, true
	default:
		return "", false
	}
}

// Predicate is one parsed filter. Eq carries exactly one operand, In carries
// zero or more.
type Predicate struct {
	Column   string
	Op       Operator
	Operands []string
}

func Eq(column, operand string) Predicate {
	return Predicate{Column: column, Op: OpEq, Operands: []string{operand}}
}

func In(column string, operands ...string) Predicate {
	return Predicate{Column: column, Op: OpIn, Operands: operands}
}

// ParsePredicate reads one `<column>__<operator>=<value>` pair. Keys without
// the separator or with an unsupported operator are not predicates.
func ParsePredicate(key, value string) (Predicate, bool) {
	col, opRaw, ok := strings.Cut(key, "__")
	if !ok {
		return Predicate{}, false
	}
	col = strings.TrimSpace(col)
	if col == "" {
		return Predicate{}, false
	}
	op, ok := parseOperator(opRaw)
	if !ok {
		return Predicate{}, false
	}

	if op == OpEq {
		return Eq(col, value), true
	}
	return In(col, SplitList(value)...), true
}

// ParseFilters extracts predicates from raw query parameters, sorted by key
// so placeholder numbering is deterministic.
func ParseFilters(raw map[string]string) []Predicate {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Predicate, 0, len(keys))
	for _, k := range keys {
		if p, ok := ParsePredicate(k, raw[k]); ok {
			out = append(out, p)
		}
	}
	return out
}

// SplitList splits a comma separated operand, trimming items and dropping
// empty ones.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Order struct {
	Column string
	Dir    Direction
}

// ParseOrder reads `<column>[:asc|desc]`. Any direction other than desc sorts
// ascending. An empty column yields no order.
func ParseOrder(raw string) (Order, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Order{}, false
	}
	col, dirRaw, _ := strings.Cut(raw, ":")
	col = strings.TrimSpace(col)
	if col == "" {
		return Order{}, false
	}
	dir := Asc
	if strings.EqualFold(strings.TrimSpace(dirRaw), "desc") {
		dir = Desc
	}
	return Order{Column: col, Dir: dir}, true
}
