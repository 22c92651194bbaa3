package statement

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/cabewaldrop/pagedb/internal/storage"
)

// Kind identifies what a statement does.
type Kind int

const (
	// KindInsert appends Statement.Row to the table.
	KindInsert Kind = iota
	// KindSelect prints every stored row.
	KindSelect
)

// String returns the keyword for the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return keywordInsert
	case KindSelect:
		return keywordSelect
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Statement is one prepared command. Row is only meaningful for inserts.
type Statement struct {
	Kind Kind
	Row  storage.Row
}

var (
	// ErrSyntax is returned when a recognized command has the wrong shape.
	ErrSyntax = errors.New("syntax error")

	// ErrStringTooLong is returned when a text value exceeds its column size.
	ErrStringTooLong = errors.New("string is too long")

	// ErrUnrecognized is returned when the leading keyword is unknown.
	ErrUnrecognized = errors.New("unrecognized statement")
)

// Prepare parses a command line into a Statement.
//
// EDUCATIONAL NOTE:
// -----------------
// All input validation happens here. The table trusts that a Statement it
// receives is well formed, in particular that both text values fit their
// columns. Checking lengths before the row is built keeps oversized input
// from ever reaching the row codec.
func Prepare(line string) (Statement, error) {
	tokens := NewLexer(line).Tokenize()

	first := tokens[0]
	if first.Type != TokenKeyword {
		return Statement{}, errors.Wrapf(ErrUnrecognized, "%q", line)
	}

	switch first.Literal {
	case keywordInsert:
		return prepareInsert(tokens[1:])
	case keywordSelect:
		// A select carries no payload; anything after the keyword is ignored.
		return Statement{Kind: KindSelect}, nil
	default:
		return Statement{}, errors.Wrapf(ErrUnrecognized, "%q", line)
	}
}

// prepareInsert expects: <id> <username> <email> EOF.
func prepareInsert(args []Token) (Statement, error) {
	if len(args) != 4 || args[3].Type != TokenEOF {
		return Statement{}, errors.Wrapf(ErrSyntax, "insert expects 3 arguments, got %d", len(args)-1)
	}

	idTok, usernameTok, emailTok := args[0], args[1], args[2]
	if idTok.Type != TokenNumber {
		return Statement{}, errors.Wrapf(ErrSyntax, "id %q at column %d is not a number", idTok.Literal, idTok.Column)
	}
	id, err := strconv.ParseUint(idTok.Literal, 10, 32)
	if err != nil {
		return Statement{}, errors.Wrapf(ErrSyntax, "id %q: %v", idTok.Literal, err)
	}

	username, email := usernameTok.Literal, emailTok.Literal
	if len(username) > storage.UsernameSize {
		return Statement{}, errors.Wrapf(ErrStringTooLong, "username is %d bytes, max %d", len(username), storage.UsernameSize)
	}
	if len(email) > storage.EmailSize {
		return Statement{}, errors.Wrapf(ErrStringTooLong, "email is %d bytes, max %d", len(email), storage.EmailSize)
	}

	return Statement{
		Kind: KindInsert,
		Row:  storage.NewRow(uint32(id), username, email),
	}, nil
}
