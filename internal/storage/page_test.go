package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsPerPage(t *testing.T) {
	assert.Equal(t, 13, RowsPerPage)
	assert.LessOrEqual(t, RowsPerPage*RowSize, PageSize)
}

func TestNewPage(t *testing.T) {
	page := NewPage(1)

	assert.Equal(t, uint32(1), page.ID())
	for i := uint32(0); i < RowsPerPage; i++ {
		assert.Equal(t, BlankRow(), page.Slot(i), "slot %d should be blank", i)
	}
}

func TestPageSetSlot(t *testing.T) {
	page := NewPage(0)
	row := NewRow(7, "carol", "carol@example.com")

	page.SetSlot(RowsPerPage-1, row)

	assert.Equal(t, row, page.Slot(RowsPerPage-1))
	assert.Equal(t, BlankRow(), page.Slot(0))
}

func TestPageSerializeDeserialize(t *testing.T) {
	original := NewPage(42)
	original.SetSlot(0, NewRow(1, "alice", "alice@example.com"))
	original.SetSlot(5, NewRow(2, "bob", "bob@example.com"))

	serialized := original.Serialize()
	require.Len(t, serialized, PageSize)

	// Slot 5 starts at 5*RowSize.
	assert.Equal(t, byte(2), serialized[5*RowSize+IDOffset])

	restored, err := DeserializePage(42, serialized)
	require.NoError(t, err)

	assert.Equal(t, original.ID(), restored.ID())
	for i := uint32(0); i < RowsPerPage; i++ {
		assert.Equal(t, original.Slot(i).String(), restored.Slot(i).String(), "slot %d", i)
	}
}

func TestDeserializePageInvalidSize(t *testing.T) {
	_, err := DeserializePage(0, make([]byte, PageSize-1))
	assert.Error(t, err)
}

func TestPageChecksum(t *testing.T) {
	a := NewPage(0)
	b := NewPage(0)
	assert.Equal(t, a.Checksum(), b.Checksum(), "identical pages hash the same")

	b.SetSlot(3, NewRow(9, "dave", "dave@example.com"))
	assert.NotEqual(t, a.Checksum(), b.Checksum())

	a.SetSlot(3, NewRow(9, "dave", "dave@example.com"))
	assert.Equal(t, a.Checksum(), b.Checksum())
}
