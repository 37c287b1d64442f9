package fql

import "fmt"

// Validator checks a FilterGroup against a column schema.
type Validator struct {
	columns map[string]ColumnDef
	opts    options
	errs    *ErrorCollector
}

// NewValidator creates a validator for columns.
func NewValidator(columns []ColumnDef, opts ...Option) *Validator {
	return &Validator{columns: columnIndex(columns), opts: applyOptions(opts)}
}

// Validate returns every semantic error in g, in source order.
func Validate(g FilterGroup, columns []ColumnDef, opts ...Option) []ParseError {
	return NewValidator(columns, opts...).Validate(g)
}

// Validate checks g. It never stops at the first error.
func (v *Validator) Validate(g FilterGroup) []ParseError {
	v.errs = NewErrorCollector()
	if !v.validateGroup(g, 0) {
		v.errs.AddSemanticError(fmt.Sprintf("Maximum nesting depth (%d) exceeded", MaxDepth))
	}
	return v.errs.Errors()
}

// validateGroup returns false when nesting exceeds MaxDepth.
func (v *Validator) validateGroup(g FilterGroup, depth int) bool {
	if depth > MaxDepth {
		return false
	}
	for _, f := range g.Filters {
		if c, ok := f.Condition(); ok {
			v.validateCondition(c)
			continue
		}
		if nested, ok := f.Group(); ok {
			if !v.validateGroup(*nested, depth+1) {
				return false
			}
		}
	}
	return true
}

func (v *Validator) validateCondition(c *Condition) {
	column, ok := v.columns[c.Column]
	if !ok {
		v.errs.AddSemanticError(fmt.Sprintf("Column '%s' does not exist", c.Column))
		return
	}

	if c.Function.IsBlankCheck() {
		if !IsBlankOperatorCompatible(column.Type) {
			v.incompatible(c.Function, column.Type)
		}
		return
	}

	if !IsOperatorCompatible(column.Type, c.Function) {
		v.incompatible(c.Function, column.Type)
		return
	}

	if len(c.Args) == 0 {
		v.errs.AddSemanticError(fmt.Sprintf("Operator '%s' requires a value", OperatorDisplayName(c.Function)))
		return
	}
	for _, arg := range c.Args {
		if msg, ok := checkValueType(arg, column, v.opts.strictEnums); !ok {
			v.errs.AddSemanticError(msg)
		}
	}
}

func (v *Validator) incompatible(fn Function, t ColumnType) {
	v.errs.AddSemanticError(fmt.Sprintf("Operator '%s' is not compatible with type '%s'", OperatorDisplayName(fn), t))
}
