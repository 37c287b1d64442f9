package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/filterql/internal/fql"
)

var (
	formatDiff  bool
	formatCheck bool
)

type formatView struct {
	Query     string           `json:"query"`
	Formatted string           `json:"formatted"`
	Canonical bool             `json:"canonical"`
	Errors    []fql.ParseError `json:"errors,omitempty"`
}

var formatCmd = &cobra.Command{
	Use:   "format <query>",
	Short: "Print a query in canonical form",
	Long: `Print a query in canonical form: bracketed columns, upper-case keywords,
double-quoted strings and canonical operator spellings.

With --check nothing is printed unless the query is not canonical, in which
case the command exits non-zero. With --diff the changes between the input and
the canonical form are shown inline.

Examples:
  filterql format 'not [name] startswith "a" and [price]>1'
  filterql format --check "$QUERY" || echo "needs formatting"
  filterql format --diff '[price]>=1'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

func init() {
	formatCmd.Flags().BoolVar(&formatDiff, "diff", false, "show an inline diff against the input")
	formatCmd.Flags().BoolVar(&formatCheck, "check", false, "exit non-zero if the query is not canonical")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	query, err := readQuery(cmd, args)
	if err != nil {
		return err
	}
	schema, err := resolveSchema()
	if err != nil {
		return err
	}

	result := fql.FormatQuery(query, schema.ColumnDefs(), queryOptions()...)
	canonical := len(result.Errors) == 0 && result.Formatted == query
	out := cmd.OutOrStdout()

	if wantJSON() {
		view := formatView{Query: query, Formatted: result.Formatted, Canonical: canonical, Errors: result.Errors}
		if err := writeJSON(out, view); err != nil {
			return err
		}
		if len(result.Errors) > 0 || (formatCheck && !canonical) {
			return errSilent
		}
		return nil
	}

	if len(result.Errors) > 0 {
		renderDiagnostics(cmd.ErrOrStderr(), query, result.Errors)
		return errSilent
	}

	switch {
	case formatCheck && canonical:
		return nil
	case formatDiff:
		fmt.Fprintln(out, renderDiff(out, query, result.Formatted))
	default:
		fmt.Fprintln(out, result.Formatted)
	}

	if formatCheck {
		fmt.Fprintln(cmd.ErrOrStderr(), "query is not in canonical form")
		return errSilent
	}
	return nil
}

// renderDiff shows deletions and insertions between before and after inline.
// Without color, deletions are wrapped in [-...-] and insertions in {+...+}.
func renderDiff(w io.Writer, before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	st := newStyles(w)
	plain := noColor || !cfg.Output.Color

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			if plain {
				b.WriteString("[-" + d.Text + "-]")
			} else {
				b.WriteString(st.Delete.Render(d.Text))
			}
		case diffmatchpatch.DiffInsert:
			if plain {
				b.WriteString("{+" + d.Text + "+}")
			} else {
				b.WriteString(st.Insert.Render(d.Text))
			}
		}
	}
	return b.String()
}
