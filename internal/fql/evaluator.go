package fql

import (
	"fmt"

	"github.com/zjrosen/filterql/internal/log"
)

// ErrDepthExceeded is returned when groups nest deeper than MaxDepth.
var ErrDepthExceeded = fmt.Errorf("maximum recursion depth (%d) exceeded", MaxDepth)

// Evaluator matches rows against a FilterGroup.
type Evaluator struct {
	group   FilterGroup
	columns map[string]ColumnDef
}

// NewEvaluator prepares g for evaluation against rows described by columns.
// The column lookup is built once and reused for every row.
func NewEvaluator(g FilterGroup, columns []ColumnDef) *Evaluator {
	return &Evaluator{group: g, columns: columnIndex(columns)}
}

// EvaluateFilter reports whether row matches g. It never panics: unknown
// columns, unknown operators and type mismatches fail the condition, and
// nesting beyond MaxDepth fails the whole evaluation.
func EvaluateFilter(g FilterGroup, row Row, columns []ColumnDef) bool {
	return NewEvaluator(g, columns).Match(row)
}

// Match reports whether row matches. Failures are logged and treated as
// no match.
func (e *Evaluator) Match(row Row) bool {
	ok, err := e.Evaluate(row)
	if err != nil {
		log.ErrorErr(log.CatEval, "Evaluation failed", err)
		return false
	}
	return ok
}

// Evaluate reports whether row matches, returning ErrDepthExceeded when the
// group nests too deeply.
func (e *Evaluator) Evaluate(row Row) (bool, error) {
	return e.evalGroup(e.group, row, 0)
}

func (e *Evaluator) evalGroup(g FilterGroup, row Row, depth int) (bool, error) {
	if depth > MaxDepth {
		return false, ErrDepthExceeded
	}
	if len(g.Filters) == 0 {
		return true, nil
	}

	switch g.Op {
	case OpAnd:
		for _, f := range g.Filters {
			ok, err := e.evalFilter(f, row, depth+1)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case OpOr:
		for _, f := range g.Filters {
			ok, err := e.evalFilter(f, row, depth+1)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, nil
}

func (e *Evaluator) evalFilter(f Filter, row Row, depth int) (bool, error) {
	var result bool
	if c, ok := f.Condition(); ok {
		result = e.evalCondition(c, row)
	} else if g, ok := f.Group(); ok {
		var err error
		if result, err = e.evalGroup(*g, row, depth); err != nil {
			return false, err
		}
	} else {
		return false, nil
	}

	if f.Negate {
		result = !result
	}
	return result, nil
}

func (e *Evaluator) evalCondition(c *Condition, row Row) bool {
	column, ok := e.columns[c.Column]
	if !ok {
		return false
	}
	compare, ok := OperatorFor(c.Function)
	if !ok {
		return false
	}
	value, ok := row[c.Column]
	if !ok {
		value = Undefined
	}
	return compare(value, c.Args, column.Type)
}
