// Package storage implements the fixed-layout page storage used by the table.
//
// EDUCATIONAL NOTES:
// ------------------
// Real databases store data in fixed-size blocks called "pages" (typically 4KB or 8KB).
// This approach has several advantages:
// 1. Efficient I/O - reading/writing fixed-size blocks maps directly onto disk blocks
// 2. Memory management - pages can be allocated and tracked as whole units
// 3. Simple addressing - a row's location is just (page number, slot)
//
// Our pages hold a whole number of fixed-size row slots. Occupancy is not
// tracked here; the table's row count says which slots are in use.

package storage

import (
	"github.com/OneOfOne/xxhash"
	"github.com/pkg/errors"
)

const (
	// PageSize is the size of each page in bytes.
	PageSize = 4096

	// RowsPerPage is the number of row slots in one page.
	RowsPerPage = PageSize / RowSize
)

// Page represents a fixed-size block of row slots.
//
// Page Layout (4096 bytes total):
// +------------------------+
// | Slot 0 (RowSize)       |
// | Slot 1 (RowSize)       |
// | ...                    |
// | Slot RowsPerPage-1     |
// +------------------------+
// | Unused tail (zeroed)   |
// +------------------------+
type Page struct {
	// id is the page number within the table.
	id uint32

	// slots holds the rows stored in this page.
	slots [RowsPerPage]Row
}

// NewPage creates a page whose slots all hold BlankRow.
func NewPage(id uint32) *Page {
	p := &Page{id: id}
	for i := range p.slots {
		p.slots[i] = BlankRow()
	}
	return p
}

// ID returns the page number.
func (p *Page) ID() uint32 {
	return p.id
}

// Slot returns the row stored at offset.
func (p *Page) Slot(offset uint32) Row {
	return p.slots[offset]
}

// SetSlot stores row at offset.
func (p *Page) SetSlot(offset uint32, row Row) {
	p.slots[offset] = row
}

// Serialize converts the page to its raw byte image.
//
// EDUCATIONAL NOTE:
// -----------------
// Serialization is the process of converting in-memory structures to bytes.
// Slot k lands at byte k*RowSize, the same arithmetic the table uses to find
// a row, so this image is what a persistence layer would write to disk.
func (p *Page) Serialize() []byte {
	buf := make([]byte, PageSize)
	for i := range p.slots {
		p.slots[i].Serialize(buf[i*RowSize:])
	}
	return buf
}

// DeserializePage reads a page from its raw byte image.
func DeserializePage(id uint32, buf []byte) (*Page, error) {
	if len(buf) != PageSize {
		return nil, errors.Errorf("invalid page size: got %d bytes, expected %d", len(buf), PageSize)
	}

	p := &Page{id: id}
	for i := range p.slots {
		row, err := DeserializeRow(buf[i*RowSize:])
		if err != nil {
			return nil, errors.Wrapf(err, "page %d slot %d", id, i)
		}
		p.slots[i] = row
	}
	return p, nil
}

// Checksum returns the xxhash64 of the page's byte image.
func (p *Page) Checksum() uint64 {
	return xxhash.Checksum64(p.Serialize())
}
