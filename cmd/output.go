package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/filterql/internal/fql"
)

// styles holds the lipgloss styles used for terminal output.
type styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Caret   lipgloss.Style
	Success lipgloss.Style
	Subtle  lipgloss.Style
	Insert  lipgloss.Style
	Delete  lipgloss.Style
}

// newStyles returns colored styles for w, or plain ones when color is off.
func newStyles(w io.Writer) styles {
	if noColor || !cfg.Output.Color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF8787")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FECA57")).Bold(true),
		Caret:   r.NewStyle().Foreground(lipgloss.Color("#FF8787")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#73F59F")),
		Subtle:  r.NewStyle().Foreground(lipgloss.Color("#696969")),
		Insert:  r.NewStyle().Foreground(lipgloss.Color("#73F59F")).Underline(true),
		Delete:  r.NewStyle().Foreground(lipgloss.Color("#FF8787")).Strikethrough(true),
	}
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderDiagnostics formats errors against the query they refer to. Errors
// with a span get the source line and a caret underline; the rest are listed
// by message only.
func renderDiagnostics(w io.Writer, query string, errs []fql.ParseError) {
	st := newStyles(w)
	source := fql.Preprocess(query)

	for _, e := range errs {
		label := st.Error.Render("error")
		if e.IsWarning() {
			label = st.Warning.Render("warning")
		}
		fmt.Fprintf(w, "%s: %s\n", label, e.Message)

		if e.End <= e.Start {
			continue
		}
		fmt.Fprintf(w, "  %s\n", source)
		fmt.Fprintf(w, "  %s\n", st.Caret.Render(caretLine(source, e.Start, e.End)))
	}
}

// caretLine returns spaces up to rune offset start followed by carets
// covering [start, end), measured in terminal cells.
func caretLine(source string, start, end int) string {
	runes := []rune(source)
	start = min(max(start, 0), len(runes))
	width := 1
	if end > start && start < len(runes) {
		width = max(runewidth.StringWidth(string(runes[start:min(end, len(runes))])), 1)
	}
	pad := runewidth.StringWidth(string(runes[:start]))
	return strings.Repeat(" ", pad) + strings.Repeat("^", width)
}
