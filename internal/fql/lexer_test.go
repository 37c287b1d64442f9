package fql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func significant(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Type != TokenWS {
			out = append(out, tok)
		}
	}
	return out
}

func TestLexer_SingleTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"[status]", TokenField},
		{`"open"`, TokenString},
		{"123", TokenDigits},
		{"+", TokenSign},
		{"-", TokenSign},
		{".", TokenDot},
		{"(", TokenLParen},
		{")", TokenRParen},
		{"=", TokenEq},
		{"==", TokenEq2},
		{"!=", TokenNeq},
		{">", TokenGt},
		{">=", TokenGe},
		{"<", TokenLt},
		{"<=", TokenLe},
		{"contains", TokenContains},
		{"greater", TokenGreater},
		{"starts", TokenStarts},
		{"equals", TokenEquals},
		{"equal", TokenEqual},
		{"blank", TokenBlank},
		{"less", TokenLess},
		{"than", TokenThan},
		{"ends", TokenEnds},
		{"with", TokenWith},
		{"is", TokenIs},
		{"not", TokenNot},
		{"or", TokenOr},
		{"and", TokenAnd},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{" \t\n", TokenWS},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.expected, tokens[0].Type)
			assert.Equal(t, tt.input, tokens[0].Literal)
			assert.Equal(t, TokenEOF, tokens[1].Type)
		})
	}
}

func TestLexer_KeywordsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"AND", "And", "aNd"} {
		tokens := Tokenize(input)
		assert.Equal(t, TokenAnd, tokens[0].Type, input)
		assert.Equal(t, input, tokens[0].Literal, "literal keeps its spelling")
	}
	assert.Equal(t, TokenTrue, Tokenize("TRUE")[0].Type)
	assert.Equal(t, TokenGreater, Tokenize("GrEaTeR")[0].Type)
}

func TestLexer_Positions(t *testing.T) {
	tokens := Tokenize("[price]>100")
	require.Len(t, tokens, 4)

	assert.Equal(t, Token{Type: TokenField, Literal: "[price]", Pos: 0, End: 7}, tokens[0])
	assert.Equal(t, Token{Type: TokenGt, Literal: ">", Pos: 7, End: 8}, tokens[1])
	assert.Equal(t, Token{Type: TokenDigits, Literal: "100", Pos: 8, End: 11}, tokens[2])
	assert.Equal(t, Token{Type: TokenEOF, Pos: 11, End: 11}, tokens[3])
}

func TestLexer_RuneOffsets(t *testing.T) {
	tokens := Tokenize(`[名前] = "é"`)
	require.Len(t, tokens, 6)

	assert.Equal(t, 0, tokens[0].Pos)
	assert.Equal(t, 4, tokens[0].End)
	assert.Equal(t, TokenEq, tokens[2].Type)
	assert.Equal(t, 5, tokens[2].Pos)
	assert.Equal(t, TokenString, tokens[4].Type)
	assert.Equal(t, 7, tokens[4].Pos)
	assert.Equal(t, 10, tokens[4].End)
}

func TestLexer_WordOperators(t *testing.T) {
	tokens := significant(Tokenize("[a] greater than or equal 5"))
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokenField, TokenGreater, TokenThan, TokenOr, TokenEqual, TokenDigits, TokenEOF,
	}, types)
}

func TestLexer_Numbers(t *testing.T) {
	tokens := Tokenize("-12.50")
	require.Len(t, tokens, 5)
	assert.Equal(t, TokenSign, tokens[0].Type)
	assert.Equal(t, TokenDigits, tokens[1].Type)
	assert.Equal(t, "12", tokens[1].Literal)
	assert.Equal(t, TokenDot, tokens[2].Type)
	assert.Equal(t, TokenDigits, tokens[3].Type)
	assert.Equal(t, "50", tokens[3].Literal)
}

func TestLexer_EscapedString(t *testing.T) {
	tokens := Tokenize(`"say \"hi\" \\ there"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Type)
	assert.Equal(t, `"say \"hi\" \\ there"`, tokens[0].Literal)
}

func TestLexer_FieldWithSpaces(t *testing.T) {
	tokens := Tokenize("[first name]")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenField, tokens[0].Type)
	assert.Equal(t, "[first name]", tokens[0].Literal)
}

func TestLexer_Illegal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
		pos     int
		end     int
	}{
		{"unknown symbol", "[a] = @", "@", 6, 7},
		{"unknown word", "[a] foo 1", "foo", 4, 7},
		{"unterminated string", `[a] = "abc`, `"abc`, 6, 10},
		{"unterminated field", "[abc", "[abc", 0, 4},
		{"empty field", "[] = 1", "[]", 0, 2},
		{"single quotes", "[a] = 'x'", "'", 6, 7},
		{"bang without equals", "[a] ! 1", "!", 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			var illegal *Token
			for {
				tok := l.NextToken()
				if tok.Type == TokenIllegal && illegal == nil {
					illegal = &tok
				}
				if tok.Type == TokenEOF {
					break
				}
			}
			require.NotNil(t, illegal)
			assert.Equal(t, tt.literal, illegal.Literal)
			assert.Equal(t, tt.pos, illegal.Pos)
			assert.Equal(t, tt.end, illegal.End)

			errs := l.Errors()
			require.NotEmpty(t, errs)
			assert.Equal(t, "token recognition error at: '"+tt.literal+"'", errs[0].Message)
			assert.Equal(t, tt.pos, errs[0].Start)
			assert.Equal(t, tt.end, errs[0].End)
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "FIELD", TokenField.String())
	assert.Equal(t, ">=", TokenGe.String())
	assert.Equal(t, "UNKNOWN", TokenType(999).String())
}

func TestLookupKeyword(t *testing.T) {
	assert.Equal(t, TokenContains, LookupKeyword("CONTAINS"))
	assert.Equal(t, TokenIllegal, LookupKeyword("between"))
	assert.True(t, TokenAnd.IsLogicalOp())
	assert.True(t, TokenLe.IsComparisonSymbol())
	assert.False(t, TokenField.IsKeyword())
	assert.True(t, TokenFalse.IsKeyword())
}
