// Package query compiles string-encoded filter and order parameters into
// parameterized SQL against a fixed column allow-list.
//
// Only identifiers declared on a Descriptor and the ASC/DESC keywords are
// ever written into SQL text. Every operand is bound as a parameter.
package query

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/jackc/pgx/v5"
)

type ColumnKind int

const (
	KindText ColumnKind = iota + 1
	KindUUID
	KindInt
	KindFloat
	KindBool
	KindTimestamp
	KindDate
	KindTime
	KindJSON
)

func (k ColumnKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUUID:
		return "uuid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Comparable reports whether the column can appear in a filter or ORDER BY.
func (k ColumnKind) Comparable() bool {
	return k >= KindText && k < KindJSON
}

type Column struct {
	Name string
	Kind ColumnKind
}

func Col(name string, kind ColumnKind) Column {
	return Column{Name: name, Kind: kind}
}

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// Descriptor is the immutable schema of one readable entity. Descriptors are
// built once at package init and shared.
type Descriptor struct {
	name    string
	columns []Column
	index   map[string]int
}

// NewDescriptor panics on a malformed identifier, an unknown kind or a
// duplicated column: descriptors are static program data.
func NewDescriptor(name string, cols ...Column) *Descriptor {
	if !identPattern.MatchString(name) {
		panic(fmt.Sprintf("query: invalid table name %q", name))
	}
	if len(cols) == 0 {
		panic(fmt.Sprintf("query: table %q has no columns", name))
	}

	d := &Descriptor{
		name:    name,
		columns: make([]Column, 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for _, c := range cols {
		if !identPattern.MatchString(c.Name) {
			panic(fmt.Sprintf("query: invalid column name %q on %s", c.Name, name))
		}
		if c.Kind < KindText || c.Kind > KindJSON {
			panic(fmt.Sprintf("query: column %s.%s has no kind", name, c.Name))
		}
		if _, dup := d.index[c.Name]; dup {
			panic(fmt.Sprintf("query: duplicate column %s.%s", name, c.Name))
		}
		d.index[c.Name] = len(d.columns)
		d.columns = append(d.columns, c)
	}
	return d
}

func (d *Descriptor) Name() string { return d.name }

// QuotedName is the table identifier as it appears in SQL text.
func (d *Descriptor) QuotedName() string { return quoteIdent(d.name) }

func (d *Descriptor) Columns() []Column { return slices.Clone(d.columns) }

func (d *Descriptor) ColumnNames() []string {
	out := make([]string, 0, len(d.columns))
	for _, c := range d.columns {
		out = append(out, c.Name)
	}
	return out
}

func (d *Descriptor) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

func (d *Descriptor) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
