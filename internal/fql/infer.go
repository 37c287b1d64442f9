package fql

import (
	"slices"

	"github.com/samber/lo"
)

// InferColumns derives column definitions from sample rows, one per key,
// sorted by key. Numbers, booleans and YYYY-MM-DD strings get their own
// types; mixed or other values are strings. String columns with at most
// enumThreshold distinct values become enums; zero disables enum inference.
// Null values do not affect the inferred type.
func InferColumns[T ~map[string]any](rows []T, enumThreshold int) []ColumnDef {
	values := make(map[string][]any)
	for _, row := range rows {
		for k, v := range row {
			if _, seen := values[k]; !seen {
				values[k] = nil
			}
			if !isNullish(v) {
				values[k] = append(values[k], v)
			}
		}
	}

	keys := lo.Keys(values)
	slices.Sort(keys)

	return lo.Map(keys, func(key string, _ int) ColumnDef {
		col := ColumnDef{ID: key, Name: key, Type: inferType(values[key])}
		strs, allStrings := stringValues(values[key])
		if col.Type == TypeString && allStrings && enumThreshold > 0 {
			distinct := lo.Uniq(strs)
			if len(distinct) > 0 && len(distinct) <= enumThreshold {
				slices.Sort(distinct)
				col.Type = TypeEnum
				col.EnumValues = distinct
			}
		}
		return col
	})
}

func inferType(vals []any) ColumnType {
	if len(vals) == 0 {
		return TypeString
	}
	all := func(pred func(any) bool) bool {
		return lo.EveryBy(vals, pred)
	}
	switch {
	case all(func(v any) bool { _, ok := toNumber(v); return ok }):
		return TypeNumber
	case all(func(v any) bool { _, ok := v.(bool); return ok }):
		return TypeBoolean
	case all(func(v any) bool { s, ok := v.(string); return ok && datePattern.MatchString(s) }):
		return TypeDate
	default:
		return TypeString
	}
}

func stringValues(vals []any) ([]string, bool) {
	strs := make([]string, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		strs = append(strs, s)
	}
	return strs, true
}
