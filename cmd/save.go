package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/filterql/internal/config"
	"github.com/zjrosen/filterql/internal/fql"
)

var saveDelete bool

var saveCmd = &cobra.Command{
	Use:   "save <name> <query>",
	Short: "Store a named query in the selected schema",
	Long: `Validate a query against the selected schema and store it, in canonical
form, under the given name in the config file. A query with the same name is
replaced. With --delete the named query is removed instead.

Examples:
  filterql save "Big orders" '[price] > 1000'
  filterql save --delete "Big orders"`,
	Args: func(cmd *cobra.Command, args []string) error {
		if saveDelete {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.MinimumNArgs(2)(cmd, args)
	},
	RunE: runSave,
}

func init() {
	saveCmd.Flags().BoolVar(&saveDelete, "delete", false, "remove the named query")
	rootCmd.AddCommand(saveCmd)
}

func runSave(cmd *cobra.Command, args []string) error {
	schema, err := resolveSchema()
	if err != nil {
		return err
	}
	if _, ok := cfg.SchemaByName(schema.Name); !ok {
		return fmt.Errorf("schema %q is not in the config file", schema.Name)
	}

	name := args[0]
	path := configPath()
	out := cmd.OutOrStdout()

	if saveDelete {
		if err := config.DeleteQuery(path, schema.Name, name, cfg.Schemas); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted query %q from schema %q\n", name, schema.Name)
		return nil
	}

	query, err := readQuery(cmd, args[1:])
	if err != nil {
		return err
	}
	result := fql.FormatQuery(query, schema.ColumnDefs(), queryOptions()...)
	if len(result.Errors) > 0 {
		renderDiagnostics(cmd.ErrOrStderr(), query, result.Errors)
		return errSilent
	}

	saved := config.QueryConfig{Name: name, Query: result.Formatted}
	if err := config.AddQuery(path, schema.Name, saved, cfg.Schemas); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %q: %s\n", name, result.Formatted)
	return nil
}
