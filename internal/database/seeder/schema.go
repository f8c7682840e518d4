package seeder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"nanny-match/internal/catalog"
	"nanny-match/internal/database"
)

const columnsQuery = `
SELECT table_name, column_name
FROM information_schema.columns
WHERE table_schema = 'public' AND table_name = ANY($1)`

// SchemaCheck fails when a column exposed by the catalog is missing from the
// database.
type SchemaCheck struct{}

func (SchemaCheck) Name() string { return "schema_check" }

func (SchemaCheck) Run(ctx context.Context, db database.DB) error {
	want := map[string][]string{}
	for _, d := range catalog.Tables() {
		want[d.Name()] = d.ColumnNames()
	}
	return checkColumns(ctx, db, want)
}

func checkColumns(ctx context.Context, db database.DB, want map[string][]string) error {
	if db == nil {
		return database.ErrNilDB
	}
	tables := make([]string, 0, len(want))
	for t := range want {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	rows, err := db.Query(ctx, columnsQuery, tables)
	if err != nil {
		return fmt.Errorf("read information_schema: %w", err)
	}
	defer rows.Close()

	have := map[string]bool{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		have[table+"."+column] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, t := range tables {
		for _, c := range want[t] {
			if !have[t+"."+c] {
				missing = append(missing, t+"."+c)
			}
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema mismatch: missing columns %s", strings.Join(missing, ", "))
	}
	return nil
}
