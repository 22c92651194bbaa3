// Package storage - Pager component
//
// EDUCATIONAL NOTES:
// ------------------
// The Pager owns every page of the table and decides when new pages come
// into existence. Higher layers ask for a page by number; the pager never
// hands out a page that has not been allocated.
//
// Key responsibilities:
// 1. Reserving room for the maximum number of pages up front
// 2. Growing the page list on demand, one explicit step at a time
// 3. Bounds-checking page numbers
//
// In a disk-backed database the pager would also read pages from the file
// on a cache miss and write dirty pages back. Ours lives only in memory.

package storage

import (
	"github.com/pkg/errors"
)

// TableMaxPages is the hard limit on the number of pages.
const TableMaxPages = 100

var (
	// ErrPageOutOfBounds is returned for page numbers at or above TableMaxPages.
	ErrPageOutOfBounds = errors.New("page number out of bounds")

	// ErrPageNotAllocated is returned when reading a page that has not been allocated yet.
	ErrPageNotAllocated = errors.New("page not allocated")
)

// Pager manages the pages of a single table.
type Pager struct {
	// pages is indexed by page number. Its capacity is reserved for
	// TableMaxPages so growth never reallocates.
	pages []*Page
}

// NewPager creates a pager with no allocated pages.
func NewPager() *Pager {
	return &Pager{
		pages: make([]*Page, 0, TableMaxPages),
	}
}

// EnsureCapacity grows the page list so that pageNum is addressable,
// allocating blank pages for every missing number up to and including it.
// It returns the number of pages allocated by this call.
func (p *Pager) EnsureCapacity(pageNum uint32) (int, error) {
	if pageNum >= TableMaxPages {
		return 0, errors.Wrapf(ErrPageOutOfBounds, "page %d >= %d", pageNum, TableMaxPages)
	}

	allocated := 0
	for uint32(len(p.pages)) <= pageNum {
		p.pages = append(p.pages, NewPage(uint32(len(p.pages))))
		allocated++
	}
	return allocated, nil
}

// GetPage returns an allocated page.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= TableMaxPages {
		return nil, errors.Wrapf(ErrPageOutOfBounds, "page %d >= %d", pageNum, TableMaxPages)
	}
	if pageNum >= uint32(len(p.pages)) {
		return nil, errors.Wrapf(ErrPageNotAllocated, "page %d (only %d pages)", pageNum, len(p.pages))
	}
	return p.pages[pageNum], nil
}

// PageCount returns the number of allocated pages.
func (p *Pager) PageCount() uint32 {
	return uint32(len(p.pages))
}

// Capacity returns the number of pages the pager has room for without growing.
func (p *Pager) Capacity() int {
	return cap(p.pages)
}
