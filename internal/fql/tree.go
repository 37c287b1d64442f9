package fql

// Node is implemented by every parse tree node.
type Node interface {
	node()
	Span() (start, end int)
}

// PrimaryNode is a node that can appear as the operand of a unary
// expression: a group or one of the three condition forms.
type PrimaryNode interface {
	Node
	primary()
}

// span is the half-open range of rune offsets a node covers.
type span struct {
	Start int
	End   int
}

// Span returns the node's source range.
func (s span) Span() (int, int) { return s.Start, s.End }

// FormulaNode is the root of the parse tree: expr EOF.
type FormulaNode struct {
	span
	Expr *OrExprNode
}

// OrExprNode is andExpr (OR andExpr)*.
type OrExprNode struct {
	span
	Terms []*AndExprNode
}

// AndExprNode is unaryExpr (AND unaryExpr)*.
type AndExprNode struct {
	span
	Factors []*UnaryExprNode
}

// UnaryExprNode is either NOT unaryExpr (Not set, Operand populated) or a
// primary.
type UnaryExprNode struct {
	span
	Not     bool
	Operand *UnaryExprNode
	Primary PrimaryNode
}

// GroupNode is '(' expr ')'.
type GroupNode struct {
	span
	Expr *OrExprNode
}

// CompOp identifies which comparison operator spelling was parsed.
type CompOp int

const (
	CompEq CompOp = iota
	CompEq2
	CompNeq
	CompGt
	CompGe
	CompLt
	CompLe
	CompEquals
	CompNotEquals
	CompNotEqual
	CompGreaterThan
	CompGreaterThanOrEqual
	CompLessThan
	CompLessThanOrEqual
)

// IsNegated reports whether the operator spells an inequality.
func (op CompOp) IsNegated() bool {
	return op == CompNeq || op == CompNotEquals || op == CompNotEqual
}

// ComparisonNode is fieldRef compOp operand.
type ComparisonNode struct {
	span
	Field   Token
	Op      CompOp
	OpToks  []Token
	Operand *OperandNode
}

// TextOp identifies a text operation keyword.
type TextOp int

const (
	TextContains TextOp = iota
	TextStartsWith
	TextEndsWith
)

// TextOperationNode is fieldRef NOT? textOp stringLiteral.
type TextOperationNode struct {
	span
	Field  Token
	Not    bool
	Op     TextOp
	OpToks []Token
	Value  Token
}

// ExistenceOperationNode is fieldRef IS NOT? BLANK.
type ExistenceOperationNode struct {
	span
	Field Token
	Not   bool
}

// OperandNode is number | stringLiteral | booleanLiteral. Exactly one of
// Number and Literal is set; Literal is a STRING, TRUE or FALSE token.
type OperandNode struct {
	span
	Number  *NumberNode
	Literal *Token
}

// NumberNode is SIGN? DIGITS (DOT DIGITS)?.
type NumberNode struct {
	span
	Sign     *Token
	Integer  Token
	Fraction *Token
}

func (*FormulaNode) node()            {}
func (*OrExprNode) node()             {}
func (*AndExprNode) node()            {}
func (*UnaryExprNode) node()          {}
func (*GroupNode) node()              {}
func (*ComparisonNode) node()         {}
func (*TextOperationNode) node()      {}
func (*ExistenceOperationNode) node() {}
func (*OperandNode) node()            {}
func (*NumberNode) node()             {}

func (*GroupNode) primary()              {}
func (*ComparisonNode) primary()         {}
func (*TextOperationNode) primary()      {}
func (*ExistenceOperationNode) primary() {}
