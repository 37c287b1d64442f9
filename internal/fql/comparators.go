package fql

import (
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Comparator applies an operator to a row value. Comparators never coerce
// between types; any mismatch evaluates to false.
type Comparator func(value any, args []any, t ColumnType) bool

// Comparators maps every operator to its implementation.
var Comparators = map[Function]Comparator{
	FuncEquals:             Equals,
	FuncGreaterThan:        GreaterThan,
	FuncLessThan:           LessThan,
	FuncGreaterThanOrEqual: GreaterThanOrEqual,
	FuncLessThanOrEqual:    LessThanOrEqual,
	FuncContains:           Contains,
	FuncStartsWith:         StartsWith,
	FuncEndsWith:           EndsWith,
	FuncIsBlank:            IsBlank,
	FuncIsNotBlank:         IsNotBlank,
}

// OperatorFor returns the comparator for fn.
func OperatorFor(fn Function) (Comparator, bool) {
	c, ok := Comparators[fn]
	return c, ok
}

// IsOperatorSupported reports whether name is a known operator.
func IsOperatorSupported(name string) bool {
	_, ok := Comparators[Function(name)]
	return ok
}

// Equals is strict equality. Null equals only null and undefined equals
// only undefined.
func Equals(value any, args []any, _ ColumnType) bool {
	if len(args) == 0 {
		return false
	}
	want := args[0]
	if isNullish(value) || isNullish(want) {
		return value == want
	}
	return strictEqual(value, want)
}

// GreaterThan compares numbers or dates.
func GreaterThan(value any, args []any, t ColumnType) bool {
	return compareOrdered(value, args, t, func(c int) bool { return c > 0 })
}

// LessThan compares numbers or dates.
func LessThan(value any, args []any, t ColumnType) bool {
	return compareOrdered(value, args, t, func(c int) bool { return c < 0 })
}

// GreaterThanOrEqual compares numbers or dates.
func GreaterThanOrEqual(value any, args []any, t ColumnType) bool {
	return compareOrdered(value, args, t, func(c int) bool { return c >= 0 })
}

// LessThanOrEqual compares numbers or dates.
func LessThanOrEqual(value any, args []any, t ColumnType) bool {
	return compareOrdered(value, args, t, func(c int) bool { return c <= 0 })
}

// Contains is a case-sensitive substring match on string columns.
func Contains(value any, args []any, t ColumnType) bool {
	return matchText(value, args, t, strings.Contains)
}

// StartsWith is a case-sensitive prefix match on string columns.
func StartsWith(value any, args []any, t ColumnType) bool {
	return matchText(value, args, t, strings.HasPrefix)
}

// EndsWith is a case-sensitive suffix match on string columns.
func EndsWith(value any, args []any, t ColumnType) bool {
	return matchText(value, args, t, strings.HasSuffix)
}

// IsBlank is true for null, undefined and, on string columns, "".
func IsBlank(value any, _ []any, t ColumnType) bool {
	if isNullish(value) {
		return true
	}
	return t == TypeString && value == ""
}

// IsNotBlank is the negation of IsBlank.
func IsNotBlank(value any, args []any, t ColumnType) bool {
	return !IsBlank(value, args, t)
}

// compareOrdered resolves the ordering of value against args[0] for number
// and date columns. NaN and unparsable dates never match.
func compareOrdered(value any, args []any, t ColumnType, accept func(int) bool) bool {
	if len(args) == 0 {
		return false
	}
	want := args[0]
	if isNullish(value) || isNullish(want) {
		return false
	}

	switch t {
	case TypeNumber:
		a, ok1 := toNumber(value)
		b, ok2 := toNumber(want)
		if !ok1 || !ok2 || math.IsNaN(a) || math.IsNaN(b) {
			return false
		}
		return accept(cmpFloat(a, b))
	case TypeDate:
		a, ok1 := parseDate(value)
		b, ok2 := parseDate(want)
		if !ok1 || !ok2 {
			return false
		}
		return accept(a.Compare(b))
	}
	return false
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func matchText(value any, args []any, t ColumnType, match func(s, sub string) bool) bool {
	if len(args) == 0 || t != TypeString {
		return false
	}
	s, ok1 := value.(string)
	sub, ok2 := args[0].(string)
	if !ok1 || !ok2 {
		return false
	}
	return match(s, sub)
}

// parseDate accepts ISO-ish date strings only.
func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	ts, err := cast.ToTimeE(s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// strictEqual compares values of the same kind. Numbers of any Go numeric
// type compare by value; strings never equal numbers.
func strictEqual(a, b any) bool {
	if x, ok := toNumber(a); ok {
		y, ok := toNumber(b)
		return ok && x == y
	}
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

// toNumber normalises Go numeric kinds to float64.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
