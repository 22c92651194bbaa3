// Package storage - Row codec
//
// EDUCATIONAL NOTES:
// ------------------
// Every row in the table has exactly the same serialized size. That is what
// lets a page be treated as a plain array of slots: slot k always starts at
// byte k*RowSize, so no slot directory or free-space bookkeeping is needed.
//
// Row Layout (293 bytes, little-endian):
// +----------------------+
// | ID (4)               |
// | Username length (1)  |
// | Username (32)        |
// | Email length (1)     |
// | Email (255)          |
// +----------------------+
//
// Text fields carry an explicit length instead of relying on a padding
// character to mark the end of the value, so any byte may appear in a value.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
)

const (
	// IDSize is the size of the id column in bytes.
	IDSize = 4

	// UsernameSize is the maximum length of a username in bytes.
	UsernameSize = 32

	// EmailSize is the maximum length of an email in bytes.
	EmailSize = 255

	// lengthSize is the size of the length prefix stored before each text field.
	lengthSize = 1

	// IDOffset is where the id starts within a row image.
	IDOffset = 0

	// UsernameLengthOffset is where the username length byte is stored.
	UsernameLengthOffset = IDOffset + IDSize

	// UsernameOffset is where the username bytes start.
	UsernameOffset = UsernameLengthOffset + lengthSize

	// EmailLengthOffset is where the email length byte is stored.
	EmailLengthOffset = UsernameOffset + UsernameSize

	// EmailOffset is where the email bytes start.
	EmailOffset = EmailLengthOffset + lengthSize

	// RowSize is the serialized size of every row.
	RowSize = EmailOffset + EmailSize
)

// ErrCorruptRow is returned when a row image stores a length larger than the
// capacity of its field.
var ErrCorruptRow = errors.New("corrupt row image")

// Text is a bounded text value with an explicit length.
type Text struct {
	data []byte
}

// NewText copies s into a Text with room for capacity bytes.
// Callers validate the length first; an oversized value panics.
func NewText(s string, capacity int) Text {
	if len(s) > capacity {
		panic(fmt.Sprintf("storage: text of %d bytes exceeds capacity %d", len(s), capacity))
	}
	if s == "" {
		return Text{}
	}
	return Text{data: []byte(s)}
}

// String returns the stored value.
func (t Text) String() string {
	return string(t.data)
}

// Len returns the stored length in bytes.
func (t Text) Len() int {
	return len(t.data)
}

// Row is a single fixed-layout record.
type Row struct {
	ID       uint32
	Username Text
	Email    Text
}

// BlankRow returns the row used to pre-fill page slots.
func BlankRow() Row {
	return Row{}
}

// NewRow builds a row from already validated values.
func NewRow(id uint32, username, email string) Row {
	return Row{
		ID:       id,
		Username: NewText(username, UsernameSize),
		Email:    NewText(email, EmailSize),
	}
}

// String renders the row as (<id>, '<username>', '<email>').
func (r Row) String() string {
	return fmt.Sprintf("(%d, '%s', '%s')", r.ID, r.Username.String(), r.Email.String())
}

// Serialize writes the row into the first RowSize bytes of dst.
// Unused text capacity is zero-filled.
func (r Row) Serialize(dst []byte) {
	buf := dst[:RowSize]
	for i := range buf {
		buf[i] = 0
	}

	binary.LittleEndian.PutUint32(buf[IDOffset:], r.ID)
	buf[UsernameLengthOffset] = byte(r.Username.Len())
	copy(buf[UsernameOffset:UsernameOffset+UsernameSize], r.Username.data)
	buf[EmailLengthOffset] = byte(r.Email.Len())
	copy(buf[EmailOffset:EmailOffset+EmailSize], r.Email.data)
}

// DeserializeRow reads a row from the first RowSize bytes of src.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) < RowSize {
		return Row{}, errors.Wrapf(ErrCorruptRow, "short row image: %d bytes", len(src))
	}

	usernameLen := int(src[UsernameLengthOffset])
	if usernameLen > UsernameSize {
		return Row{}, errors.Wrapf(ErrCorruptRow, "username length %d", usernameLen)
	}
	emailLen := int(src[EmailLengthOffset])
	if emailLen > EmailSize {
		return Row{}, errors.Wrapf(ErrCorruptRow, "email length %d", emailLen)
	}

	row := Row{ID: binary.LittleEndian.Uint32(src[IDOffset:])}
	if usernameLen > 0 {
		row.Username = Text{data: append([]byte(nil), src[UsernameOffset:UsernameOffset+usernameLen]...)}
	}
	if emailLen > 0 {
		row.Email = Text{data: append([]byte(nil), src[EmailOffset:EmailOffset+emailLen]...)}
	}
	return row, nil
}
