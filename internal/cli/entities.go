package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nanny-match/internal/catalog"
)

type entityInfo struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
}

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "List the tables served by GET /api/v1/{table}",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeEntities(os.Stdout, jsonOutput)
	},
}

func writeEntities(w io.Writer, asJSON bool) error {
	var out []entityInfo
	for _, name := range catalog.Names() {
		d, _ := catalog.Lookup(name)
		out = append(out, entityInfo{Name: name, Columns: d.ColumnNames()})
	}
	if asJSON {
		return json.NewEncoder(w).Encode(out)
	}
	for _, e := range out {
		if _, err := fmt.Fprintf(w, "%-24s %s\n", e.Name, strings.Join(e.Columns, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
}
