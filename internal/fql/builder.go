package fql

import (
	"strconv"
	"strings"
)

// Builder lowers a parse tree into a FilterGroup.
type Builder struct {
	opts options
}

// NewBuilder creates a builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: applyOptions(opts)}
}

// Build lowers tree into a FilterGroup. A nil tree yields an empty AND group.
func Build(tree *FormulaNode, opts ...Option) FilterGroup {
	return NewBuilder(opts...).Build(tree)
}

// Build lowers tree into a FilterGroup.
func (b *Builder) Build(tree *FormulaNode) FilterGroup {
	if tree == nil || tree.Expr == nil {
		return FilterGroup{Op: OpAnd, Filters: []Filter{}}
	}
	return b.orExpr(tree.Expr)
}

// orExpr passes a single term through. Multiple terms become an OR group in
// which single-filter terms are inlined and larger terms nest as groups.
func (b *Builder) orExpr(n *OrExprNode) FilterGroup {
	if len(n.Terms) == 1 {
		return b.andExpr(n.Terms[0])
	}

	filters := make([]Filter, 0, len(n.Terms))
	for _, term := range n.Terms {
		g := b.andExpr(term)
		if len(g.Filters) == 1 {
			filters = append(filters, g.Filters[0])
			continue
		}
		filters = append(filters, GroupFilter(g))
	}
	return FilterGroup{Op: OpOr, Filters: filters}
}

// andExpr always yields an AND group, even for one factor.
func (b *Builder) andExpr(n *AndExprNode) FilterGroup {
	filters := make([]Filter, 0, len(n.Factors))
	for _, factor := range n.Factors {
		filters = append(filters, b.unaryExpr(factor))
	}
	return FilterGroup{Op: OpAnd, Filters: filters}
}

// unaryExpr toggles negation for each NOT, so NOT NOT x builds x.
func (b *Builder) unaryExpr(n *UnaryExprNode) Filter {
	if n.Not {
		return b.unaryExpr(n.Operand).Toggled()
	}

	switch p := n.Primary.(type) {
	case *GroupNode:
		g := b.orExpr(p.Expr)
		if len(g.Filters) == 1 {
			return g.Filters[0]
		}
		return GroupFilter(g)
	case *ComparisonNode:
		return b.comparison(p)
	case *TextOperationNode:
		f := ConditionFilter(Condition{
			Column:   fieldName(p.Field),
			Function: textFunctions[p.Op],
			Args:     []any{unquote(p.Value.Literal)},
		})
		f.Negate = p.Not
		return f
	case *ExistenceOperationNode:
		fn := FuncIsBlank
		if p.Not {
			fn = FuncIsNotBlank
		}
		return ConditionFilter(Condition{Column: fieldName(p.Field), Function: fn, Args: []any{}})
	}
	return Filter{}
}

var compFunctions = map[CompOp]Function{
	CompEq:                 FuncEquals,
	CompEq2:                FuncEquals,
	CompNeq:                FuncEquals,
	CompEquals:             FuncEquals,
	CompNotEquals:          FuncEquals,
	CompNotEqual:           FuncEquals,
	CompGt:                 FuncGreaterThan,
	CompGreaterThan:        FuncGreaterThan,
	CompLt:                 FuncLessThan,
	CompLessThan:           FuncLessThan,
	CompGe:                 FuncGreaterThanOrEqual,
	CompGreaterThanOrEqual: FuncGreaterThanOrEqual,
	CompLe:                 FuncLessThanOrEqual,
	CompLessThanOrEqual:    FuncLessThanOrEqual,
}

var textFunctions = map[TextOp]Function{
	TextContains:   FuncContains,
	TextStartsWith: FuncStartsWith,
	TextEndsWith:   FuncEndsWith,
}

// comparison maps every operator spelling onto its canonical function.
// Inequality spellings build a bare equals unless negateNotEquals is set.
func (b *Builder) comparison(n *ComparisonNode) Filter {
	f := ConditionFilter(Condition{
		Column:   fieldName(n.Field),
		Function: compFunctions[n.Op],
		Args:     []any{operandValue(n.Operand)},
	})
	if b.opts.negateNotEquals && n.Op.IsNegated() {
		f.Negate = true
	}
	return f
}

// fieldName strips the brackets from a field reference.
func fieldName(tok Token) string {
	return strings.TrimSuffix(strings.TrimPrefix(tok.Literal, "["), "]")
}

// unquote strips the quotes from a string literal and decodes \", \' and \\
// in that order.
func unquote(lit string) string {
	if len(lit) >= 2 {
		lit = lit[1 : len(lit)-1]
	}
	lit = strings.ReplaceAll(lit, `\"`, `"`)
	lit = strings.ReplaceAll(lit, `\'`, `'`)
	return strings.ReplaceAll(lit, `\\`, `\`)
}

func operandValue(n *OperandNode) any {
	if n.Number != nil {
		return numberValue(n.Number)
	}
	switch n.Literal.Type {
	case TokenTrue:
		return true
	case TokenFalse:
		return false
	default:
		return unquote(n.Literal.Literal)
	}
}

func numberValue(n *NumberNode) float64 {
	text := n.Integer.Literal
	if n.Fraction != nil {
		text += "." + n.Fraction.Literal
	}
	// Digit runs always parse; out of range values saturate to ±Inf.
	v, _ := strconv.ParseFloat(text, 64)
	if n.Sign != nil && n.Sign.Literal == "-" {
		v = -v
	}
	return v
}
