package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zjrosen/filterql/internal/fql"
)

var tokensAll bool

type tokenView struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <query>",
	Short: "Print the token stream of a query",
	Long: `Print the tokens of a query with their rune offsets.

Whitespace tokens are hidden unless --all is given. Unrecognised input is
reported as ILLEGAL tokens rather than failing the command.

Examples:
  filterql tokens '[price] >= 10'
  echo '[name] contains "x"' | filterql tokens -
  filterql tokens --json '[a] = 1' | jq '.[].type'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokens,
}

func init() {
	tokensCmd.Flags().BoolVarP(&tokensAll, "all", "a", false, "include whitespace tokens")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	query, err := readQuery(cmd, args)
	if err != nil {
		return err
	}

	views := make([]tokenView, 0)
	for _, tok := range fql.Tokenize(query) {
		if tok.Type == fql.TokenWS && !tokensAll {
			continue
		}
		views = append(views, tokenView{
			Type:    tok.Type.String(),
			Literal: tok.Literal,
			Start:   tok.Pos,
			End:     tok.End,
		})
	}

	out := cmd.OutOrStdout()
	if wantJSON() {
		return writeJSON(out, views)
	}

	st := newStyles(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%q\n", st.Subtle.Render(fmt.Sprintf("%d:%d", v.Start, v.End)), v.Type, v.Literal)
	}
	return tw.Flush()
}
