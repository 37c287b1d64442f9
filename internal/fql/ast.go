package fql

import (
	"encoding/json"
	"errors"
)

// Function is the canonical name of a condition operator.
type Function string

const (
	FuncEquals             Function = "equals"
	FuncGreaterThan        Function = "greaterThan"
	FuncLessThan           Function = "lessThan"
	FuncGreaterThanOrEqual Function = "greaterThanOrEqual"
	FuncLessThanOrEqual    Function = "lessThanOrEqual"
	FuncContains           Function = "contains"
	FuncStartsWith         Function = "startsWith"
	FuncEndsWith           Function = "endsWith"
	FuncIsBlank            Function = "isBlank"
	FuncIsNotBlank         Function = "isNotBlank"
)

// IsBlankCheck reports whether f is one of the argument-less blank operators.
func (f Function) IsBlankCheck() bool {
	return f == FuncIsBlank || f == FuncIsNotBlank
}

// LogicalOp combines the filters of a group.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
)

// Condition is a single predicate. Args holds string, float64, bool or nil
// values; blank operators take none and every other operator takes one.
type Condition struct {
	Column   string   `json:"column"`
	Function Function `json:"function"`
	Args     []any    `json:"args"`
}

// FilterGroup is the root of a filter AST. An empty group matches every row
// for both AND and OR.
type FilterGroup struct {
	Op      LogicalOp `json:"op"`
	Filters []Filter  `json:"filters"`
}

// filterNode is implemented by the two payloads a Filter may carry.
type filterNode interface {
	filterNode()
}

func (*Condition) filterNode()   {}
func (*FilterGroup) filterNode() {}

// Filter is a node of the boolean expression tree. It holds either a
// condition or a nested group, never both; Negate inverts its result.
type Filter struct {
	node   filterNode
	Negate bool
}

// ConditionFilter wraps a condition.
func ConditionFilter(c Condition) Filter {
	return Filter{node: &c}
}

// GroupFilter wraps a nested group.
func GroupFilter(g FilterGroup) Filter {
	return Filter{node: &g}
}

// Condition returns the wrapped condition, if any.
func (f Filter) Condition() (*Condition, bool) {
	c, ok := f.node.(*Condition)
	return c, ok
}

// Group returns the wrapped group, if any.
func (f Filter) Group() (*FilterGroup, bool) {
	g, ok := f.node.(*FilterGroup)
	return g, ok
}

// Valid reports whether the filter carries a payload.
func (f Filter) Valid() bool {
	return f.node != nil
}

// Toggled returns a copy of f with Negate inverted.
func (f Filter) Toggled() Filter {
	f.Negate = !f.Negate
	return f
}

// ErrInvalidFilter is returned when decoding a filter that holds both or
// neither of condition and group.
var ErrInvalidFilter = errors.New("filter must have exactly one of condition or group")

type filterJSON struct {
	Condition *Condition   `json:"condition,omitempty"`
	Group     *FilterGroup `json:"group,omitempty"`
	Negate    bool         `json:"negate,omitempty"`
}

// MarshalJSON encodes the filter as {"condition":...} or {"group":...}.
func (f Filter) MarshalJSON() ([]byte, error) {
	out := filterJSON{Negate: f.Negate}
	switch n := f.node.(type) {
	case *Condition:
		out.Condition = n
	case *FilterGroup:
		out.Group = n
	default:
		return nil, ErrInvalidFilter
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a filter and enforces that exactly one payload is set.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var in filterJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Condition != nil && in.Group == nil:
		f.node = in.Condition
	case in.Group != nil && in.Condition == nil:
		f.node = in.Group
	default:
		return ErrInvalidFilter
	}
	f.Negate = in.Negate
	return nil
}

// undefinedValue marks a row value that is absent, as opposed to null.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the value of a column missing from a row. It equals only
// itself, never nil.
var Undefined any = undefinedValue{}

// Row maps column keys to values.
type Row = map[string]any

// isNullish reports whether v is null or undefined.
func isNullish(v any) bool {
	return v == nil || v == Undefined
}
