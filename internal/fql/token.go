// Package fql implements the filter query language: BETWEEN preprocessing,
// lexing, parsing, AST construction, semantic validation, canonical
// formatting and row evaluation.
package fql

import "strings"

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenWS

	// Literals
	TokenField  // [column]
	TokenString // "quoted"
	TokenDigits // 123
	TokenSign   // + or -
	TokenDot    // .

	// Delimiters
	TokenLParen // (
	TokenRParen // )

	// Symbolic comparison operators
	TokenEq  // =
	TokenEq2 // ==
	TokenNeq // !=
	TokenGt  // >
	TokenGe  // >=
	TokenLt  // <
	TokenLe  // <=

	// Word operators
	TokenContains
	TokenGreater
	TokenStarts
	TokenEquals
	TokenEqual
	TokenBlank
	TokenLess
	TokenThan
	TokenEnds
	TokenWith
	TokenIs

	// Logical operators
	TokenNot
	TokenOr
	TokenAnd

	// Boolean literals
	TokenTrue
	TokenFalse
)

var tokenNames = map[TokenType]string{
	TokenEOF:      "EOF",
	TokenIllegal:  "ILLEGAL",
	TokenWS:       "WS",
	TokenField:    "FIELD",
	TokenString:   "STRING",
	TokenDigits:   "DIGITS",
	TokenSign:     "SIGN",
	TokenDot:      "DOT",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenEq:       "=",
	TokenEq2:      "==",
	TokenNeq:      "!=",
	TokenGt:       ">",
	TokenGe:       ">=",
	TokenLt:       "<",
	TokenLe:       "<=",
	TokenContains: "CONTAINS",
	TokenGreater:  "GREATER",
	TokenStarts:   "STARTS",
	TokenEquals:   "EQUALS",
	TokenEqual:    "EQUAL",
	TokenBlank:    "BLANK",
	TokenLess:     "LESS",
	TokenThan:     "THAN",
	TokenEnds:     "ENDS",
	TokenWith:     "WITH",
	TokenIs:       "IS",
	TokenNot:      "NOT",
	TokenOr:       "OR",
	TokenAnd:      "AND",
	TokenTrue:     "TRUE",
	TokenFalse:    "FALSE",
}

// String returns the string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical token. Pos and End are rune offsets into the
// lexed text, End exclusive.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
	End     int
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"contains": TokenContains,
	"greater":  TokenGreater,
	"starts":   TokenStarts,
	"equals":   TokenEquals,
	"equal":    TokenEqual,
	"blank":    TokenBlank,
	"less":     TokenLess,
	"than":     TokenThan,
	"ends":     TokenEnds,
	"with":     TokenWith,
	"is":       TokenIs,
	"not":      TokenNot,
	"or":       TokenOr,
	"and":      TokenAnd,
	"true":     TokenTrue,
	"false":    TokenFalse,
}

// LookupKeyword returns the token type for the given word.
// Returns TokenIllegal when the word is not part of the vocabulary; the
// language has no bare identifiers.
func LookupKeyword(word string) TokenType {
	if tok, ok := keywords[strings.ToLower(word)]; ok {
		return tok
	}
	return TokenIllegal
}

// IsKeyword returns true for word tokens (logical, existence, text and
// comparison keywords plus boolean literals).
func (t TokenType) IsKeyword() bool {
	return t >= TokenContains && t <= TokenFalse
}

// IsComparisonSymbol returns true for the symbolic comparison operators.
func (t TokenType) IsComparisonSymbol() bool {
	switch t {
	case TokenEq, TokenEq2, TokenNeq, TokenGt, TokenGe, TokenLt, TokenLe:
		return true
	}
	return false
}

// IsLogicalOp returns true if the token type is a logical operator.
func (t TokenType) IsLogicalOp() bool {
	return t == TokenAnd || t == TokenOr || t == TokenNot
}
