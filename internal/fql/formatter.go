package fql

import (
	"strings"

	"github.com/zjrosen/filterql/internal/log"
)

// FormatResult is the outcome of formatting a query. On error Formatted is
// the input text unchanged.
type FormatResult struct {
	Formatted string       `json:"formatted"`
	Errors    []ParseError `json:"errors,omitempty"`
}

// FormatQuery renders query in canonical form. Blank input formats to the
// empty string; a query that fails to parse or validate is returned verbatim
// together with its errors, never partially formatted.
func FormatQuery(query string, columns []ColumnDef, opts ...Option) FormatResult {
	if strings.TrimSpace(query) == "" {
		return FormatResult{}
	}

	result := ParseQuery(query, columns, opts...)
	if len(result.Errors) > 0 {
		return FormatResult{Formatted: query, Errors: result.Errors}
	}
	if result.Filters == nil {
		return FormatResult{}
	}

	formatted := PrintFilterGroup(*result.Filters)
	if formatted != query {
		log.Debug(log.CatFormat, "Formatted query", "query", query, "formatted", formatted)
	}
	return FormatResult{Formatted: formatted}
}

// FormatQueryString returns the canonical text or the first error.
func FormatQueryString(query string, columns []ColumnDef, opts ...Option) (string, error) {
	result := FormatQuery(query, columns, opts...)
	if len(result.Errors) > 0 {
		return "", result.Errors[0]
	}
	return result.Formatted, nil
}

// IsCanonical reports whether query formats to itself without errors.
func IsCanonical(query string, columns []ColumnDef, opts ...Option) bool {
	result := FormatQuery(query, columns, opts...)
	return len(result.Errors) == 0 && result.Formatted == query
}

// FormatQueryMultiple formats query repeatedly, feeding each result into the
// next pass. It stops after the first pass that fails, whose input is the
// last element.
func FormatQueryMultiple(query string, columns []ColumnDef, iterations int, opts ...Option) []string {
	results := make([]string, 0, iterations)
	current := query
	for i := 0; i < iterations; i++ {
		result := FormatQuery(current, columns, opts...)
		if len(result.Errors) > 0 {
			results = append(results, current)
			break
		}
		current = result.Formatted
		results = append(results, current)
	}
	return results
}

// IsIdempotent reports whether formatting query twice gives the same text as
// formatting it once. Queries with errors are never idempotent.
func IsIdempotent(query string, columns []ColumnDef, opts ...Option) bool {
	results := FormatQueryMultiple(query, columns, 2, opts...)
	if len(results) < 2 {
		return false
	}
	return results[0] == results[1]
}
