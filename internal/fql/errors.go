package fql

import (
	"strings"
	"unicode/utf8"
)

// Severity classifies a ParseError.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParseError is a diagnostic with a half-open [Start, End) span of rune
// offsets into the query text. Semantic errors carry a (0,0) span.
type ParseError struct {
	Message  string   `json:"message"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Severity Severity `json:"severity,omitempty"`
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return e.Message
}

// IsWarning reports whether the diagnostic is a warning.
func (e ParseError) IsWarning() bool {
	return e.Severity == SeverityWarning
}

// ParseErrors is a set of diagnostics returned as a single error.
type ParseErrors []ParseError

// Error joins every message with "; ".
func (errs ParseErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return "parse errors: " + strings.Join(msgs, "; ")
}

// ParseResult holds either the parsed filters or the errors that prevented
// them. Exactly one of the two is populated.
type ParseResult struct {
	Filters *FilterGroup `json:"filters,omitempty"`
	Errors  []ParseError `json:"errors,omitempty"`
}

// OK reports whether the parse succeeded.
func (r ParseResult) OK() bool {
	return len(r.Errors) == 0 && r.Filters != nil
}

// ErrorCollector accumulates diagnostics in the order they are reported.
type ErrorCollector struct {
	errs []ParseError
}

// NewErrorCollector returns an empty collector.
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// AddSyntaxError records an error for the span [start, end).
func (c *ErrorCollector) AddSyntaxError(msg string, start, end int) {
	c.errs = append(c.errs, ParseError{Message: msg, Start: start, End: end, Severity: SeverityError})
}

// AddSemanticError records an error without a source position.
func (c *ErrorCollector) AddSemanticError(msg string) {
	c.errs = append(c.errs, ParseError{Message: msg, Severity: SeverityError})
}

// AddWarning records a warning without a source position.
func (c *ErrorCollector) AddWarning(msg string) {
	c.errs = append(c.errs, ParseError{Message: msg, Severity: SeverityWarning})
}

// AddInputError records an error spanning the whole input.
func (c *ErrorCollector) AddInputError(msg, input string) {
	c.AddSyntaxError(msg, 0, utf8.RuneCountInString(input))
}

// Merge appends errs in order.
func (c *ErrorCollector) Merge(errs []ParseError) {
	c.errs = append(c.errs, errs...)
}

// HasErrors reports whether any error (not warning) was collected.
func (c *ErrorCollector) HasErrors() bool {
	for _, e := range c.errs {
		if !e.IsWarning() {
			return true
		}
	}
	return false
}

// Errors returns the collected diagnostics.
func (c *ErrorCollector) Errors() []ParseError {
	return c.errs
}

// Clear discards every collected diagnostic.
func (c *ErrorCollector) Clear() {
	c.errs = nil
}
