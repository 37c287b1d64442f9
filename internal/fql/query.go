package fql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/filterql/internal/log"
)

// ErrNoFilters is returned by ParseQueryStrict when parsing yields neither
// filters nor errors.
var ErrNoFilters = errors.New("no filters returned from parser")

// ParseQuery runs the full pipeline on text: BETWEEN preprocessing, lexing,
// parsing, AST construction and semantic validation. Blank input yields an
// empty AND group. The returned result holds either filters or errors.
func ParseQuery(text string, columns []ColumnDef, opts ...Option) (result ParseResult) {
	if strings.TrimSpace(text) == "" {
		return ParseResult{Filters: &FilterGroup{Op: OpAnd, Filters: []Filter{}}}
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatQuery, "Unexpected failure parsing query", "query", text, "panic", r)
			errs := NewErrorCollector()
			errs.AddInputError(fmt.Sprint(r), text)
			result = ParseResult{Errors: errs.Errors()}
		}
	}()

	expanded := Preprocess(text)
	if expanded != text {
		log.Debug(log.CatQuery, "Expanded BETWEEN", "query", text, "expanded", expanded)
	}

	tree, syntaxErrs := Parse(expanded)
	if len(syntaxErrs) > 0 {
		log.Debug(log.CatQuery, "Syntax errors", "query", text, "count", len(syntaxErrs))
		return ParseResult{Errors: syntaxErrs}
	}

	g := Build(tree, opts...)
	if semanticErrs := Validate(g, columns, opts...); len(semanticErrs) > 0 {
		log.Debug(log.CatQuery, "Semantic errors", "query", text, "count", len(semanticErrs))
		return ParseResult{Errors: semanticErrs}
	}

	return ParseResult{Filters: &g}
}

// ParseQueryStrict is ParseQuery returning the errors as a ParseErrors value.
func ParseQueryStrict(text string, columns []ColumnDef, opts ...Option) (FilterGroup, error) {
	result := ParseQuery(text, columns, opts...)
	if len(result.Errors) > 0 {
		return FilterGroup{}, ParseErrors(result.Errors)
	}
	if result.Filters == nil {
		return FilterGroup{}, ErrNoFilters
	}
	return *result.Filters, nil
}
