package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nanny-match/internal/database/seeder"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Check the schema and install the default questionnaire",
	Long: `Verifies that every listed table has the expected columns, then
upserts the questionnaire. Reruns are safe.

Examples:
  nannyctl seed
  nannyctl seed --file ./questionnaire.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := seeder.QuestionnaireSeeder{}
		if seedFile != "" {
			b, err := os.ReadFile(seedFile)
			if err != nil {
				return err
			}
			if _, err := seeder.ParseQuestionnaire(b); err != nil {
				return err
			}
			q.Source = b
		}

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		r := seeder.Runner{Seeders: []seeder.Seeder{seeder.SchemaCheck{}, q}, Logger: e.log.Named("seeder")}
		if err := r.Run(cmd.Context(), e.db); err != nil {
			return err
		}
		fmt.Println("seed complete")
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "", "Questionnaire YAML to seed instead of the built-in one")
	rootCmd.AddCommand(seedCmd)
}
