package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/filterql/internal/fql"
	"github.com/zjrosen/filterql/internal/log"
)

type checkView struct {
	Name      string           `json:"name"`
	Query     string           `json:"query"`
	Canonical bool             `json:"canonical"`
	Errors    []fql.ParseError `json:"errors,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the saved queries of a schema",
	Long: `Parse and validate every saved query of the selected schema.

Queries that fail print their diagnostics and make the command exit non-zero.
Queries that are valid but not in canonical form are reported without failing.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	schema, err := resolveSchema()
	if err != nil {
		return err
	}
	cols := schema.ColumnDefs()
	opts := queryOptions()

	views := make([]checkView, 0, len(schema.Queries))
	failed := 0
	for _, q := range schema.Queries {
		result := fql.FormatQuery(q.Query, cols, opts...)
		view := checkView{
			Name:      q.Name,
			Query:     q.Query,
			Canonical: len(result.Errors) == 0 && result.Formatted == q.Query,
			Errors:    result.Errors,
		}
		if len(result.Errors) > 0 {
			failed++
		}
		views = append(views, view)
	}
	log.Debug(log.CatCLI, "Checked saved queries", "schema", schema.Name, "queries", len(views), "failed", failed)

	out := cmd.OutOrStdout()
	if wantJSON() {
		if err := writeJSON(out, views); err != nil {
			return err
		}
	} else {
		st := newStyles(out)
		for _, v := range views {
			switch {
			case len(v.Errors) > 0:
				fmt.Fprintf(out, "%s %s\n", st.Error.Render("FAIL"), v.Name)
				renderDiagnostics(out, v.Query, v.Errors)
			case !v.Canonical:
				fmt.Fprintf(out, "%s %s %s\n", st.Warning.Render("FMT "), v.Name, st.Subtle.Render("(not canonical)"))
			default:
				fmt.Fprintf(out, "%s %s\n", st.Success.Render("OK  "), v.Name)
			}
		}
	}

	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d queries failed in schema %q\n", failed, len(views), schema.Name)
		return errSilent
	}
	return nil
}
