package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/filterql/internal/fql"
	"github.com/zjrosen/filterql/internal/log"
)

var parseCmd = &cobra.Command{
	Use:   "parse <query>",
	Short: "Parse and validate a query, printing its filter tree",
	Long: `Parse a query against the selected schema and print the resulting filter
tree as JSON. Invalid queries print their diagnostics and exit non-zero.

Examples:
  filterql parse '[status] equals "open" AND [price] > 100'
  filterql parse --schema ./columns.yaml '[title] is not blank'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	query, err := readQuery(cmd, args)
	if err != nil {
		return err
	}
	schema, err := resolveSchema()
	if err != nil {
		return err
	}

	result := fql.ParseQuery(query, schema.ColumnDefs(), queryOptions()...)
	out := cmd.OutOrStdout()

	if wantJSON() {
		if err := writeJSON(out, result); err != nil {
			return err
		}
		if !result.OK() {
			return errSilent
		}
		return nil
	}

	if !result.OK() {
		log.Debug(log.CatCLI, "Parse failed", "query", query, "errors", len(result.Errors))
		renderDiagnostics(cmd.ErrOrStderr(), query, result.Errors)
		return errSilent
	}
	return writeJSON(out, result.Filters)
}
