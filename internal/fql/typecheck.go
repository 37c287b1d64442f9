package fql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// compatibleOperators is shared by the validator and the evaluator.
var compatibleOperators = map[ColumnType][]Function{
	TypeString:  {FuncEquals, FuncContains, FuncStartsWith, FuncEndsWith},
	TypeNumber:  {FuncEquals, FuncGreaterThan, FuncLessThan, FuncGreaterThanOrEqual, FuncLessThanOrEqual},
	TypeBoolean: {FuncEquals},
	TypeDate:    {FuncEquals, FuncGreaterThan, FuncLessThan, FuncGreaterThanOrEqual, FuncLessThanOrEqual},
	TypeEnum:    {FuncEquals},
}

var blankCompatibleTypes = []ColumnType{TypeString, TypeDate, TypeEnum}

var displayNames = map[Function]string{
	FuncEquals:             "equals",
	FuncGreaterThan:        "greater than",
	FuncLessThan:           "less than",
	FuncGreaterThanOrEqual: "greater than or equal",
	FuncLessThanOrEqual:    "less than or equal",
	FuncContains:           "contains",
	FuncStartsWith:         "starts with",
	FuncEndsWith:           "ends with",
	FuncIsBlank:            "is blank",
	FuncIsNotBlank:         "is not blank",
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsOperatorCompatible reports whether fn may be applied to a column of
// type t. Blank operators are checked by IsBlankOperatorCompatible.
func IsOperatorCompatible(t ColumnType, fn Function) bool {
	return lo.Contains(compatibleOperators[t], fn)
}

// IsBlankOperatorCompatible reports whether IS [NOT] BLANK may be applied to
// a column of type t.
func IsBlankOperatorCompatible(t ColumnType) bool {
	return lo.Contains(blankCompatibleTypes, t)
}

// AllowedOperators lists every operator usable with type t, blank operators
// included.
func AllowedOperators(t ColumnType) []Function {
	ops := append([]Function(nil), compatibleOperators[t]...)
	if IsBlankOperatorCompatible(t) {
		ops = append(ops, FuncIsBlank, FuncIsNotBlank)
	}
	return ops
}

// OperatorDisplayName returns the human readable spelling of fn.
func OperatorDisplayName(fn Function) string {
	if name, ok := displayNames[fn]; ok {
		return name
	}
	return string(fn)
}

// typeName names the dynamic type of a literal the way diagnostics report it.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case undefinedValue:
		return "undefined"
	}
	if _, ok := toNumber(v); ok {
		return "number"
	}
	return "object"
}

// checkValueType returns a diagnostic when v does not fit column. Enum
// membership is only checked when strictEnums is set.
func checkValueType(v any, column ColumnDef, strictEnums bool) (string, bool) {
	name := column.Label()
	switch column.Type {
	case TypeString:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("Expected string for column '%s', got %s", name, typeName(v)), false
		}
	case TypeNumber:
		if _, ok := toNumber(v); !ok {
			return fmt.Sprintf("Expected number for column '%s', got %s", name, typeName(v)), false
		}
	case TypeBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Sprintf("Expected boolean for column '%s', got %s", name, typeName(v)), false
		}
	case TypeDate:
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("Expected date string for column '%s', got %s", name, typeName(v)), false
		}
		if !datePattern.MatchString(s) {
			return fmt.Sprintf("Invalid date format for column '%s'. Expected YYYY-MM-DD", name), false
		}
	case TypeEnum:
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("Expected string for enum column '%s', got %s", name, typeName(v)), false
		}
		if strictEnums && len(column.EnumValues) > 0 && !lo.Contains(column.EnumValues, s) {
			return fmt.Sprintf("Invalid value '%s' for enum column '%s'. Expected one of: %s",
				s, name, joinQuoted(column.EnumValues)), false
		}
	}
	return "", true
}

func joinQuoted(values []string) string {
	return strings.Join(lo.Map(values, func(v string, _ int) string { return "'" + v + "'" }), ", ")
}
