package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerBasicTokens(t *testing.T) {
	tokens := NewLexer("insert 1 alice alice@example.com").Tokenize()

	expected := []struct {
		tokenType TokenType
		literal   string
		column    int
	}{
		{TokenKeyword, "insert", 1},
		{TokenNumber, "1", 8},
		{TokenWord, "alice", 10},
		{TokenWord, "alice@example.com", 16},
		{TokenEOF, "", 33},
	}

	require.Len(t, tokens, len(expected))
	for i, exp := range expected {
		assert.Equal(t, exp.tokenType, tokens[i].Type, "token %d type", i)
		assert.Equal(t, exp.literal, tokens[i].Literal, "token %d literal", i)
		assert.Equal(t, exp.column, tokens[i].Column, "token %d column", i)
	}
}

func TestLexerWhitespace(t *testing.T) {
	tokens := NewLexer("  select\t\r\n").Tokenize()

	require.Len(t, tokens, 2)
	assert.Equal(t, TokenKeyword, tokens[0].Type)
	assert.Equal(t, "select", tokens[0].Literal)
	assert.Equal(t, 3, tokens[0].Column)
	assert.Equal(t, TokenEOF, tokens[1].Type)
}

func TestLexerEmptyInput(t *testing.T) {
	tokens := NewLexer("").Tokenize()

	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Type)
}

func TestLexerKeywordsAreCaseSensitive(t *testing.T) {
	tokens := NewLexer("INSERT Select").Tokenize()

	assert.Equal(t, TokenWord, tokens[0].Type)
	assert.Equal(t, TokenWord, tokens[1].Type)
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected TokenType
	}{
		{"0", TokenNumber},
		{"4294967296", TokenNumber},
		{"-1", TokenWord},
		{"1.5", TokenWord},
		{"12abc", TokenWord},
	}

	for _, tt := range tests {
		tok := NewLexer(tt.input).NextToken()
		assert.Equal(t, tt.expected, tok.Type, "input %q", tt.input)
	}
}

func TestLexerKeepsNulBytes(t *testing.T) {
	tokens := NewLexer("a\x00b c").Tokenize()

	require.Len(t, tokens, 3)
	assert.Equal(t, "a\x00b", tokens[0].Literal)
	assert.Equal(t, "c", tokens[1].Literal)
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: TokenNumber, Literal: "7", Column: 3}
	assert.Equal(t, `Token{NUMBER, "7", col:3}`, tok.String())
	assert.Equal(t, "UNKNOWN(9)", TokenType(9).String())
}
