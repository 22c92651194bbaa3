// Package statement turns a command line into a Statement for the table.
//
// EDUCATIONAL NOTES:
// ------------------
// Preparing a statement happens in two phases, like a tiny compiler front end:
//
//  1. The lexer splits the raw line into tokens.
//  2. Prepare checks the token sequence against the shape of each command
//     and builds the Statement value.
//
// For example, the input:
//   insert 1 alice alice@example.com
//
// Becomes these tokens:
//   [KEYWORD:insert] [NUMBER:1] [WORD:alice] [WORD:alice@example.com]
//
// Unlike a SQL lexer there are no operators or quoted strings: any run of
// non-whitespace bytes is a single token, so an email address stays whole.

package statement

import (
	"fmt"
)

// TokenType represents the type of a token.
type TokenType int

const (
	// TokenEOF marks the end of the input.
	TokenEOF TokenType = iota

	// TokenKeyword is a command keyword (insert, select).
	TokenKeyword

	// TokenNumber is a run of ASCII digits.
	TokenNumber

	// TokenWord is any other run of non-whitespace bytes.
	TokenWord
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Column  int
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("Token{%s, %q, col:%d}", t.Type, t.Literal, t.Column)
}

// String returns the name of a token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenKeyword:
		return "KEYWORD"
	case TokenNumber:
		return "NUMBER"
	case TokenWord:
		return "WORD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(t))
	}
}

const (
	keywordInsert = "insert"
	keywordSelect = "select"
)

// keywords lists the command keywords. Matching is case-sensitive.
var keywords = map[string]bool{
	keywordInsert: true,
	keywordSelect: true,
}

// Lexer tokenizes a command line.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current character
	eof     bool
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.eof = true
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.eof {
		return Token{Type: TokenEOF, Column: l.pos + 1}
	}

	start := l.pos
	for !l.eof && !isWhitespace(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.pos]

	tok := Token{Type: TokenWord, Literal: literal, Column: start + 1}
	switch {
	case keywords[literal]:
		tok.Type = TokenKeyword
	case isNumber(literal):
		tok.Type = TokenNumber
	}
	return tok
}

// Tokenize returns all tokens from the input, ending with TokenEOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// skipWhitespace skips spaces, tabs, and line breaks.
func (l *Lexer) skipWhitespace() {
	for !l.eof && isWhitespace(l.ch) {
		l.readChar()
	}
}

func isWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
