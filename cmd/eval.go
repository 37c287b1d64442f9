package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/filterql/internal/fql"
	"github.com/zjrosen/filterql/internal/log"
)

var (
	evalRows  string
	evalCount bool
	evalFirst bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <query> --rows <file>",
	Short: "Filter rows from a JSON or YAML file",
	Long: `Evaluate a query against every row of a JSON or YAML file and print the
matching rows as JSON. The file holds an array of objects keyed by column id.

Use --count to print only the number of matches and --first to print only the
first matching row. Pass --rows - to read rows from stdin.

Examples:
  filterql eval '[price] BETWEEN 10 AND 20' --rows orders.json
  filterql eval '[status] equals "open"' --rows orders.yaml --count`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalRows, "rows", "r", "", "JSON or YAML file with an array of rows")
	evalCmd.Flags().BoolVar(&evalCount, "count", false, "print the number of matching rows")
	evalCmd.Flags().BoolVar(&evalFirst, "first", false, "print only the first matching row")
	_ = evalCmd.MarkFlagRequired("rows")
	evalCmd.MarkFlagsMutuallyExclusive("count", "first")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if args[0] == "-" && evalRows == "-" {
		return errors.New("cannot read both query and rows from stdin")
	}
	query, err := readQuery(cmd, args)
	if err != nil {
		return err
	}
	schema, err := resolveSchema()
	if err != nil {
		return err
	}

	result := fql.ParseQuery(query, schema.ColumnDefs(), queryOptions()...)
	if !result.OK() {
		renderDiagnostics(cmd.ErrOrStderr(), query, result.Errors)
		return errSilent
	}

	rows, err := loadRows(cmd, evalRows)
	if err != nil {
		return err
	}

	cols := schema.ColumnDefs()
	out := cmd.OutOrStdout()
	start := time.Now()

	switch {
	case evalCount:
		n := fql.CountMatches(*result.Filters, rows, cols)
		log.Debug(log.CatCLI, "Counted matches", "rows", len(rows), "matches", n, "duration", time.Since(start))
		if wantJSON() {
			return writeJSON(out, map[string]int{"count": n})
		}
		fmt.Fprintln(out, n)
		return nil
	case evalFirst:
		row, ok := fql.FindFirstMatch(*result.Filters, rows, cols)
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "no matching row")
			return errSilent
		}
		return writeJSON(out, row)
	default:
		matched := fql.EvaluateFilterBatch(*result.Filters, rows, cols)
		log.Debug(log.CatCLI, "Evaluated rows", "rows", len(rows), "matches", len(matched), "duration", time.Since(start))
		return writeJSON(out, matched)
	}
}

// loadRows reads an array of rows from path, or from stdin when path is "-".
// JSON files are decoded as JSON and anything else as YAML.
func loadRows(cmd *cobra.Command, path string) ([]fql.Row, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied rows file
	}
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	var rows []fql.Row
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parsing rows: %w", err)
		}
		return rows, nil
	}

	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing rows: %w", err)
	}
	for _, row := range rows {
		normalizeYAMLRow(row)
	}
	return rows, nil
}

// normalizeYAMLRow converts YAML scalars to the value types JSON decoding
// would produce, so comparisons behave the same for both formats.
func normalizeYAMLRow(row fql.Row) {
	for k, v := range row {
		switch n := v.(type) {
		case int:
			row[k] = float64(n)
		case int64:
			row[k] = float64(n)
		case uint64:
			row[k] = float64(n)
		case time.Time:
			row[k] = n.Format(time.RFC3339)
		}
	}
}
