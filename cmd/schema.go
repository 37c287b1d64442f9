package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/filterql/internal/config"
	"github.com/zjrosen/filterql/internal/fql"
	"github.com/zjrosen/filterql/internal/log"
)

var (
	inferSave          string
	inferEnumThreshold int
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect and create column schemas",
}

var schemaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the selected schema and the operators each column accepts",
	Args:  cobra.NoArgs,
	RunE:  runSchemaShow,
}

var schemaInferCmd = &cobra.Command{
	Use:   "infer <rows-file>",
	Short: "Infer a schema from sample rows",
	Long: `Infer column types from a JSON or YAML file of rows and print the columns
as YAML. With --save <name> the columns are written into the config file as the
named schema, replacing its columns if it already exists.

Examples:
  filterql schema infer orders.json
  filterql schema infer orders.json --enum-threshold 5 --save orders`,
	Args: cobra.ExactArgs(1),
	RunE: runSchemaInfer,
}

func init() {
	schemaInferCmd.Flags().StringVar(&inferSave, "save", "", "save the inferred columns as this schema in the config")
	schemaInferCmd.Flags().IntVar(&inferEnumThreshold, "enum-threshold", 0,
		"treat string columns with at most this many distinct values as enums (0 disables)")
	schemaCmd.AddCommand(schemaShowCmd, schemaInferCmd)
	rootCmd.AddCommand(schemaCmd)
}

type columnView struct {
	fql.ColumnDef
	Operators []string `json:"operators"`
}

func runSchemaShow(cmd *cobra.Command, _ []string) error {
	schema, err := resolveSchema()
	if err != nil {
		return err
	}

	views := make([]columnView, 0, len(schema.Columns))
	for _, col := range schema.ColumnDefs() {
		ops := make([]string, 0)
		for _, fn := range fql.AllowedOperators(col.Type) {
			ops = append(ops, fql.OperatorDisplayName(fn))
		}
		views = append(views, columnView{ColumnDef: col, Operators: ops})
	}

	out := cmd.OutOrStdout()
	if wantJSON() {
		return writeJSON(out, map[string]any{"name": schema.Name, "columns": views})
	}

	st := newStyles(out)
	fmt.Fprintf(out, "%s %s\n", st.Subtle.Render("schema:"), schema.Name)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, v := range views {
		typ := string(v.Type)
		if len(v.EnumValues) > 0 {
			typ += " (" + strings.Join(v.EnumValues, ", ") + ")"
		}
		fmt.Fprintf(tw, "[%s]\t%s\t%s\n", v.Key(), typ, strings.Join(v.Operators, ", "))
	}
	return tw.Flush()
}

func runSchemaInfer(cmd *cobra.Command, args []string) error {
	rows, err := loadRows(cmd, args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows in %s", args[0])
	}

	cols := config.ColumnsFromDefs(fql.InferColumns(rows, inferEnumThreshold))
	log.Debug(log.CatCLI, "Inferred schema", "rows", len(rows), "columns", len(cols))

	out := cmd.OutOrStdout()
	if inferSave != "" {
		path := configPath()
		if err := config.SaveColumnsForSchema(path, inferSave, cols, cfg.Schemas); err != nil {
			return fmt.Errorf("saving schema: %w", err)
		}
		fmt.Fprintf(out, "Saved %d columns to schema %q in %s\n", len(cols), inferSave, path)
		return nil
	}

	if wantJSON() {
		return writeJSON(out, cols)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cols); err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	return enc.Close()
}
