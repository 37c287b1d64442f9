package fql

import (
	"fmt"
	"unicode"
)

// Lexer tokenizes filter query input. It works on runes so token offsets are
// character offsets rather than byte offsets.
type Lexer struct {
	input []rune
	pos   int // current position in input
	errs  *ErrorCollector
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input), errs: NewErrorCollector()}
}

// Errors returns the recognition errors reported so far.
func (l *Lexer) Errors() []ParseError {
	return l.errs.Errors()
}

// Tokenize returns every token of text, whitespace included, followed by a
// final TokenEOF. Illegal input is returned as TokenIllegal tokens.
func Tokenize(text string) []Token {
	l := NewLexer(text)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// NextToken returns the next token from the input, whitespace included.
func (l *Lexer) NextToken() Token {
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos, End: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	switch {
	case isSpace(ch):
		for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
			l.pos++
		}
		return l.emit(TokenWS, start)
	case ch == '[':
		return l.readField()
	case ch == '"':
		return l.readString()
	case isDigit(ch):
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
		return l.emit(TokenDigits, start)
	case isLetter(ch):
		for l.pos < len(l.input) && isLetter(l.input[l.pos]) {
			l.pos++
		}
		tok := l.emit(TokenIllegal, start)
		tok.Type = LookupKeyword(tok.Literal)
		if tok.Type == TokenIllegal {
			l.illegal(tok)
		}
		return tok
	}

	l.pos++
	switch ch {
	case '(':
		return l.emit(TokenLParen, start)
	case ')':
		return l.emit(TokenRParen, start)
	case '+', '-':
		return l.emit(TokenSign, start)
	case '.':
		return l.emit(TokenDot, start)
	case '=':
		if l.peek() == '=' {
			l.pos++
			return l.emit(TokenEq2, start)
		}
		return l.emit(TokenEq, start)
	case '!':
		if l.peek() == '=' {
			l.pos++
			return l.emit(TokenNeq, start)
		}
	case '>':
		if l.peek() == '=' {
			l.pos++
			return l.emit(TokenGe, start)
		}
		return l.emit(TokenGt, start)
	case '<':
		if l.peek() == '=' {
			l.pos++
			return l.emit(TokenLe, start)
		}
		return l.emit(TokenLt, start)
	}

	tok := l.emit(TokenIllegal, start)
	l.illegal(tok)
	return tok
}

// readField reads a bracketed field reference: '[' ~']'+ ']'.
func (l *Lexer) readField() Token {
	start := l.pos
	l.pos++ // skip [
	for l.pos < len(l.input) && l.input[l.pos] != ']' {
		l.pos++
	}
	if l.pos >= len(l.input) || l.pos == start+1 {
		// Unterminated or empty field reference
		if l.pos < len(l.input) {
			l.pos++
		}
		tok := l.emit(TokenIllegal, start)
		l.illegal(tok)
		return tok
	}
	l.pos++ // skip ]
	return l.emit(TokenField, start)
}

// readString reads a double-quoted string with backslash escapes. The
// literal keeps its quotes and escapes; the builder decodes it.
func (l *Lexer) readString() Token {
	start := l.pos
	l.pos++ // skip opening quote
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '"':
			l.pos++
			return l.emit(TokenString, start)
		}
		l.pos++
	}
	if l.pos > len(l.input) {
		l.pos = len(l.input)
	}
	tok := l.emit(TokenIllegal, start)
	l.illegal(tok)
	return tok
}

func (l *Lexer) emit(t TokenType, start int) Token {
	return Token{Type: t, Literal: string(l.input[start:l.pos]), Pos: start, End: l.pos}
}

func (l *Lexer) illegal(tok Token) {
	l.errs.AddSyntaxError(fmt.Sprintf("token recognition error at: '%s'", tok.Literal), tok.Pos, tok.End)
}

// peek returns the character at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLetter(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
