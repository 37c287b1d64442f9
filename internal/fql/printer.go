package fql

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintOptions controls how a FilterGroup is rendered back to text.
type PrintOptions struct {
	BracketColumns            bool // wrap column names in [ ]
	UppercaseLogicalOps       bool // AND/OR/NOT and keyword operators in upper case
	SpaceBinaryOps            bool // spaces around symbolic operators
	DoubleQuoteStrings        bool // "value" instead of 'value'
	NormalizeParens           bool // NOT always followed by parentheses
	NormalizeOperatorSynonyms bool // canonical operator spellings
}

// CanonicalPrintOptions is the option set used by the formatter.
var CanonicalPrintOptions = PrintOptions{
	BracketColumns:            true,
	UppercaseLogicalOps:       true,
	SpaceBinaryOps:            true,
	DoubleQuoteStrings:        true,
	NormalizeParens:           true,
	NormalizeOperatorSynonyms: true,
}

// Printer renders filter ASTs as query text.
type Printer struct {
	opts PrintOptions
}

// NewPrinter creates a printer with the given options.
func NewPrinter(opts PrintOptions) *Printer {
	return &Printer{opts: opts}
}

// PrintFilterGroup renders g in canonical form.
func PrintFilterGroup(g FilterGroup) string {
	return NewPrinter(CanonicalPrintOptions).Print(g)
}

// Print renders g. The top-level group is never parenthesised.
func (p *Printer) Print(g FilterGroup) string {
	return p.printGroup(g, false)
}

func (p *Printer) printGroup(g FilterGroup, nested bool) string {
	if len(g.Filters) == 0 {
		return ""
	}
	parts := make([]string, len(g.Filters))
	for i, f := range g.Filters {
		parts[i] = p.printFilter(f)
	}
	joined := strings.Join(parts, " "+p.keyword(string(g.Op))+" ")
	if nested {
		return "(" + joined + ")"
	}
	return joined
}

func (p *Printer) printFilter(f Filter) string {
	var out string
	if c, ok := f.Condition(); ok {
		out = p.printCondition(c)
	} else if g, ok := f.Group(); ok {
		out = p.printGroup(*g, true)
	}

	if f.Negate {
		if p.opts.NormalizeParens && !strings.HasPrefix(out, "(") {
			out = "(" + out + ")"
		}
		out = p.keyword("NOT") + " " + out
	}
	return out
}

func (p *Printer) printCondition(c *Condition) string {
	column := p.printColumn(c.Column)

	switch c.Function {
	case FuncIsBlank:
		return column + " " + p.keyword("IS") + " " + p.keyword("BLANK")
	case FuncIsNotBlank:
		return column + " " + p.keyword("IS") + " " + p.keyword("NOT") + " " + p.keyword("BLANK")
	}

	op := p.printOperator(c.Function)
	if len(c.Args) == 0 {
		return column + " " + op
	}
	value := p.printValue(c.Args[0])

	if !p.opts.SpaceBinaryOps && isSymbolic(op) {
		return column + op + value
	}
	return column + " " + op + " " + value
}

func isSymbolic(op string) bool {
	switch op {
	case ">", "<", ">=", "<=", "=", "==", "!=":
		return true
	}
	return false
}

func (p *Printer) printColumn(name string) string {
	if p.opts.BracketColumns && !strings.HasPrefix(name, "[") {
		return "[" + name + "]"
	}
	return name
}

func (p *Printer) printOperator(fn Function) string {
	if !p.opts.NormalizeOperatorSynonyms {
		return string(fn)
	}
	switch fn {
	case FuncGreaterThan:
		return ">"
	case FuncLessThan:
		return "<"
	case FuncGreaterThanOrEqual:
		return ">="
	case FuncLessThanOrEqual:
		return "<="
	case FuncStartsWith:
		return p.keyword("STARTS WITH")
	case FuncEndsWith:
		return p.keyword("ENDS WITH")
	default:
		return string(fn)
	}
}

func (p *Printer) printValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case undefinedValue:
		return "undefined"
	case string:
		escaped := strings.ReplaceAll(val, `\`, `\\`)
		if p.opts.DoubleQuoteStrings {
			return `"` + strings.ReplaceAll(escaped, `"`, `\"`) + `"`
		}
		return `'` + strings.ReplaceAll(escaped, `'`, `\'`) + `'`
	case bool:
		return strconv.FormatBool(val)
	}
	if n, ok := toNumber(v); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// keyword applies the logical operator casing option.
func (p *Printer) keyword(kw string) string {
	if p.opts.UppercaseLogicalOps {
		return strings.ToUpper(kw)
	}
	return strings.ToLower(kw)
}
