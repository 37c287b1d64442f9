package fql

import "github.com/samber/lo"

// EvaluateFilterBatch returns the rows matching g, preserving order.
func EvaluateFilterBatch[T ~map[string]any](g FilterGroup, rows []T, columns []ColumnDef) []T {
	e := NewEvaluator(g, columns)
	return lo.Filter(rows, func(row T, _ int) bool {
		return e.Match(Row(row))
	})
}

// CountMatches returns the number of rows matching g.
func CountMatches[T ~map[string]any](g FilterGroup, rows []T, columns []ColumnDef) int {
	e := NewEvaluator(g, columns)
	return lo.CountBy(rows, func(row T) bool {
		return e.Match(Row(row))
	})
}

// FindFirstMatch returns the first row matching g.
func FindFirstMatch[T ~map[string]any](g FilterGroup, rows []T, columns []ColumnDef) (T, bool) {
	e := NewEvaluator(g, columns)
	return lo.Find(rows, func(row T) bool {
		return e.Match(Row(row))
	})
}
