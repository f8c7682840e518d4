package query

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

type Scanner interface {
	Scan(dest ...any) error
}

// Row is one projected record keyed by column name. NULL columns map to nil.
type Row map[string]any

// ScanRow reads one row produced by Select into a Row. Temporal columns are
// rendered as text: timestamps in RFC 3339 (UTC), dates as YYYY-MM-DD and
// times as HH:MM:SS.
func (d *Descriptor) ScanRow(s Scanner) (Row, error) {
	dest := make([]any, len(d.columns))
	for i, c := range d.columns {
		dest[i] = scanTarget(c.Kind)
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	out := make(Row, len(d.columns))
	for i, c := range d.columns {
		out[c.Name] = render(c.Kind, dest[i])
	}
	return out, nil
}

func scanTarget(k ColumnKind) any {
	switch k {
	case KindText:
		return new(*string)
	case KindUUID:
		return new(*uuid.UUID)
	case KindInt:
		return new(*int64)
	case KindFloat:
		return new(*float64)
	case KindBool:
		return new(*bool)
	case KindTimestamp, KindDate:
		return new(*time.Time)
	case KindTime:
		return new(pgtype.Time)
	case KindJSON:
		return new([]byte)
	default:
		panic(fmt.Sprintf("query: no scan target for kind %d", k))
	}
}

func render(k ColumnKind, dest any) any {
	switch v := dest.(type) {
	case **string:
		if *v == nil {
			return nil
		}
		return **v
	case **uuid.UUID:
		if *v == nil {
			return nil
		}
		return (*v).String()
	case **int64:
		if *v == nil {
			return nil
		}
		return **v
	case **float64:
		if *v == nil {
			return nil
		}
		return **v
	case **bool:
		if *v == nil {
			return nil
		}
		return **v
	case **time.Time:
		if *v == nil {
			return nil
		}
		if k == KindDate {
			return (*v).Format(DateLayout)
		}
		return (*v).UTC().Format(time.RFC3339Nano)
	case *pgtype.Time:
		if !v.Valid {
			return nil
		}
		return FormatTime(v.Microseconds)
	case *[]byte:
		if *v == nil {
			return nil
		}
		return json.RawMessage(*v)
	default:
		return nil
	}
}

// FormatTime renders microseconds since midnight as HH:MM:SS.
func FormatTime(us int64) string {
	d := time.Duration(us) * time.Microsecond
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
