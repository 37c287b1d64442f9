package fql

import (
	"errors"
	"fmt"
)

// MaxDepth bounds nesting of NOT and parentheses during parsing, nested
// groups during validation and evaluation.
const MaxDepth = 100

const (
	expectPrimary  = "{'(', NOT, FIELD}"
	expectOperator = "{'=', '==', '!=', '>', '>=', '<', '<=', EQUALS, NOT, GREATER, LESS, CONTAINS, STARTS, ENDS, IS}"
	expectOperand  = "{STRING, TRUE, FALSE, SIGN, DIGITS}"
)

// Parser builds a concrete parse tree from query text.
type Parser struct {
	tokens  []Token // significant tokens, terminated by TokenEOF
	pos     int
	prevEnd int
	depth   int
	errs    *ErrorCollector
}

// NewParser creates a parser for the input. Whitespace is skipped and
// unrecognised input is reported as a lexer error and dropped.
func NewParser(input string) *Parser {
	l := NewLexer(input)
	p := &Parser{errs: NewErrorCollector()}
	for {
		tok := l.NextToken()
		if tok.Type == TokenWS || tok.Type == TokenIllegal {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	p.errs.Merge(l.Errors())
	return p
}

// Parse parses text into a parse tree. The tree is nil when the token
// stream does not match the grammar; errors holds every lexer error plus
// the first syntax error.
func Parse(text string) (*FormulaNode, []ParseError) {
	return NewParser(text).Parse()
}

// Parse parses the input and returns the tree and any syntax errors.
func (p *Parser) Parse() (*FormulaNode, []ParseError) {
	tree, err := p.parseFormula()
	if err != nil {
		var pe ParseError
		if !errors.As(err, &pe) {
			pe = ParseError{Message: err.Error(), Severity: SeverityError}
		}
		p.errs.Merge([]ParseError{pe})
		return nil, p.errs.Errors()
	}
	return tree, p.errs.Errors()
}

// current returns the token under the cursor.
func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

// peek returns the token after the cursor.
func (p *Parser) peek() Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

// nextToken advances past the current token.
func (p *Parser) nextToken() Token {
	tok := p.current()
	p.prevEnd = tok.End
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

// expect consumes a token of type t or fails with a mismatched input error.
func (p *Parser) expect(t TokenType, expecting string) (Token, error) {
	if p.current().Type != t {
		return Token{}, p.mismatched(p.current(), expecting)
	}
	return p.nextToken(), nil
}

func (p *Parser) mismatched(tok Token, expecting string) error {
	return p.errorAt(tok, "mismatched input '%s' expecting %s", display(tok), expecting)
}

func (p *Parser) errorAt(tok Token, format string, args ...any) error {
	end := tok.End
	if end == tok.Pos {
		// EOF has no width; point at the position it occupies
		end = tok.Pos + 1
	}
	return ParseError{
		Message:  fmt.Sprintf(format, args...),
		Start:    tok.Pos,
		End:      end,
		Severity: SeverityError,
	}
}

func display(tok Token) string {
	if tok.Type == TokenEOF {
		return "<EOF>"
	}
	return tok.Literal
}

// enter tracks nesting for NOT and parentheses.
func (p *Parser) enter(tok Token) error {
	p.depth++
	if p.depth > MaxDepth {
		return p.errorAt(tok, "maximum nesting depth of %d exceeded", MaxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseFormula parses the whole input.
// formula = expr EOF
func (p *Parser) parseFormula() (*FormulaNode, error) {
	start := p.current().Pos
	expr, err := p.parseOrExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return nil, p.errorAt(tok, "extraneous input '%s' expecting <EOF>", display(tok))
	}
	return &FormulaNode{span: span{start, p.prevEnd}, Expr: expr}, nil
}

// parseOrExpr parses OR-separated terms.
// orExpr = andExpr { OR andExpr }
func (p *Parser) parseOrExpr() (*OrExprNode, error) {
	start := p.current().Pos
	term, err := p.parseAndExpr()
	if err != nil {
		return nil, err
	}
	node := &OrExprNode{Terms: []*AndExprNode{term}}

	for p.current().Type == TokenOr {
		p.nextToken() // consume OR
		term, err := p.parseAndExpr()
		if err != nil {
			return nil, err
		}
		node.Terms = append(node.Terms, term)
	}

	node.span = span{start, p.prevEnd}
	return node, nil
}

// parseAndExpr parses AND-separated factors.
// andExpr = unaryExpr { AND unaryExpr }
func (p *Parser) parseAndExpr() (*AndExprNode, error) {
	start := p.current().Pos
	factor, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	node := &AndExprNode{Factors: []*UnaryExprNode{factor}}

	for p.current().Type == TokenAnd {
		p.nextToken() // consume AND
		factor, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		node.Factors = append(node.Factors, factor)
	}

	node.span = span{start, p.prevEnd}
	return node, nil
}

// parseUnaryExpr parses NOT prefixes or a primary.
// unaryExpr = NOT unaryExpr | primary
func (p *Parser) parseUnaryExpr() (*UnaryExprNode, error) {
	tok := p.current()
	if tok.Type == TokenNot {
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		p.nextToken() // consume NOT
		operand, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		return &UnaryExprNode{span: span{tok.Pos, p.prevEnd}, Not: true, Operand: operand}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &UnaryExprNode{span: span{tok.Pos, p.prevEnd}, Primary: primary}, nil
}

// parsePrimary parses a group or a condition.
// primary = "(" expr ")" | comparison | textOperation | existenceOperation
func (p *Parser) parsePrimary() (PrimaryNode, error) {
	tok := p.current()
	switch tok.Type {
	case TokenLParen:
		if err := p.enter(tok); err != nil {
			return nil, err
		}
		defer p.leave()

		p.nextToken() // consume (
		expr, err := p.parseOrExpr()
		if err != nil {
			return nil, err
		}
		if cur := p.current(); cur.Type != TokenRParen {
			return nil, p.errorAt(cur, "missing ')' at '%s'", display(cur))
		}
		p.nextToken() // consume )
		return &GroupNode{span: span{tok.Pos, p.prevEnd}, Expr: expr}, nil

	case TokenField:
		return p.parseCondition()

	default:
		return nil, p.mismatched(tok, expectPrimary)
	}
}

// parseCondition parses the three condition forms that start with a field.
func (p *Parser) parseCondition() (PrimaryNode, error) {
	field := p.nextToken()

	switch p.current().Type {
	case TokenIs:
		return p.parseExistence(field)
	case TokenContains, TokenStarts, TokenEnds:
		return p.parseTextOperation(field, false)
	case TokenNot:
		switch p.peek().Type {
		case TokenContains, TokenStarts, TokenEnds:
			p.nextToken() // consume NOT
			return p.parseTextOperation(field, true)
		case TokenEquals, TokenEqual:
			return p.parseComparison(field)
		default:
			return nil, p.mismatched(p.peek(), "{CONTAINS, STARTS, ENDS, EQUALS, EQUAL}")
		}
	default:
		return p.parseComparison(field)
	}
}

// parseExistence parses IS BLANK and IS NOT BLANK.
// existenceOperation = field IS [NOT] BLANK
func (p *Parser) parseExistence(field Token) (*ExistenceOperationNode, error) {
	p.nextToken() // consume IS
	node := &ExistenceOperationNode{Field: field}
	expecting := "{NOT, BLANK}"
	if p.current().Type == TokenNot {
		p.nextToken() // consume NOT
		node.Not = true
		expecting = "BLANK"
	}
	if _, err := p.expect(TokenBlank, expecting); err != nil {
		return nil, err
	}
	node.span = span{field.Pos, p.prevEnd}
	return node, nil
}

// parseTextOperation parses the text operators. A leading NOT has already
// been consumed when not is set.
// textOperation = field [NOT] (CONTAINS | STARTS WITH | ENDS WITH) string
func (p *Parser) parseTextOperation(field Token, not bool) (*TextOperationNode, error) {
	node := &TextOperationNode{Field: field, Not: not}
	tok := p.nextToken()
	node.OpToks = append(node.OpToks, tok)

	switch tok.Type {
	case TokenContains:
		node.Op = TextContains
	case TokenStarts, TokenEnds:
		node.Op = TextStartsWith
		if tok.Type == TokenEnds {
			node.Op = TextEndsWith
		}
		with, err := p.expect(TokenWith, "WITH")
		if err != nil {
			return nil, err
		}
		node.OpToks = append(node.OpToks, with)
	}

	value, err := p.expect(TokenString, "STRING")
	if err != nil {
		return nil, err
	}
	node.Value = value
	node.span = span{field.Pos, p.prevEnd}
	return node, nil
}

// parseComparison parses a comparison operator and its operand.
// comparison = field compOp operand
func (p *Parser) parseComparison(field Token) (*ComparisonNode, error) {
	node := &ComparisonNode{Field: field}
	if err := p.parseCompOp(node); err != nil {
		return nil, err
	}
	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	node.Operand = operand
	node.span = span{field.Pos, p.prevEnd}
	return node, nil
}

var symbolOps = map[TokenType]CompOp{
	TokenEq:  CompEq,
	TokenEq2: CompEq2,
	TokenNeq: CompNeq,
	TokenGt:  CompGt,
	TokenGe:  CompGe,
	TokenLt:  CompLt,
	TokenLe:  CompLe,
}

// parseCompOp parses symbolic and word comparison operators.
// compOp = "=" | "==" | "!=" | ">" | ">=" | "<" | "<=" | EQUALS
//
//	| NOT (EQUALS | EQUAL) | (GREATER | LESS) THAN [OR EQUAL]
func (p *Parser) parseCompOp(node *ComparisonNode) error {
	tok := p.current()
	if op, ok := symbolOps[tok.Type]; ok {
		node.Op = op
		node.OpToks = []Token{p.nextToken()}
		return nil
	}

	switch tok.Type {
	case TokenEquals:
		node.Op = CompEquals
		node.OpToks = []Token{p.nextToken()}
		return nil

	case TokenNot:
		not := p.nextToken()
		word := p.nextToken()
		node.OpToks = []Token{not, word}
		node.Op = CompNotEquals
		if word.Type == TokenEqual {
			node.Op = CompNotEqual
		}
		return nil

	case TokenGreater, TokenLess:
		node.OpToks = []Token{p.nextToken()}
		than, err := p.expect(TokenThan, "THAN")
		if err != nil {
			return err
		}
		node.OpToks = append(node.OpToks, than)

		orEqual := p.current().Type == TokenOr && p.peek().Type == TokenEqual
		if orEqual {
			node.OpToks = append(node.OpToks, p.nextToken(), p.nextToken())
		}
		switch {
		case tok.Type == TokenGreater && orEqual:
			node.Op = CompGreaterThanOrEqual
		case tok.Type == TokenGreater:
			node.Op = CompGreaterThan
		case orEqual:
			node.Op = CompLessThanOrEqual
		default:
			node.Op = CompLessThan
		}
		return nil
	}

	return p.mismatched(tok, expectOperator)
}

// parseOperand parses a number, string or boolean literal.
// operand = number | string | TRUE | FALSE
func (p *Parser) parseOperand() (*OperandNode, error) {
	tok := p.current()
	switch tok.Type {
	case TokenString, TokenTrue, TokenFalse:
		p.nextToken()
		return &OperandNode{span: span{tok.Pos, tok.End}, Literal: &tok}, nil
	case TokenSign, TokenDigits:
		num, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return &OperandNode{span: num.span, Number: num}, nil
	}
	return nil, p.mismatched(tok, expectOperand)
}

// parseNumber parses a signed decimal.
// number = [SIGN] DIGITS [DOT DIGITS]
func (p *Parser) parseNumber() (*NumberNode, error) {
	start := p.current().Pos
	node := &NumberNode{}
	if p.current().Type == TokenSign {
		sign := p.nextToken()
		node.Sign = &sign
	}
	digits, err := p.expect(TokenDigits, "DIGITS")
	if err != nil {
		return nil, err
	}
	node.Integer = digits

	if p.current().Type == TokenDot {
		p.nextToken() // consume .
		frac, err := p.expect(TokenDigits, "DIGITS")
		if err != nil {
			return nil, err
		}
		node.Fraction = &frac
	}

	node.span = span{start, p.prevEnd}
	return node, nil
}
