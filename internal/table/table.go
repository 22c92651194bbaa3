// Package table implements the paged, append-only table.
//
// EDUCATIONAL NOTES:
// ------------------
// The table is an ordered list of pages plus a single row counter. Rows are
// only ever appended, so the counter is both the number of stored rows and
// the logical index of the next insert. Finding a row is pure arithmetic:
//
//   page   = index / RowsPerPage
//   offset = index % RowsPerPage
//
// For example, with 13 rows per page, logical row 30 lives in page 2 at
// slot 4. Insert and select share these two functions, which is what
// guarantees that a row written at index i is the row read back at index i.

package table

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cabewaldrop/pagedb/internal/statement"
	"github.com/cabewaldrop/pagedb/internal/storage"
)

// TableMaxRows is the hard limit on the number of rows.
const TableMaxRows = storage.RowsPerPage * storage.TableMaxPages

var (
	// ErrTableFull is returned by Insert once TableMaxRows rows are stored.
	ErrTableFull = errors.New("table full")

	// ErrRowOutOfRange is returned when reading a row index that is not stored.
	ErrRowOutOfRange = errors.New("row index out of range")
)

// Table is a single in-memory table of fixed-layout rows.
type Table struct {
	pager *storage.Pager

	// numRows is mutated only by Insert.
	numRows uint32

	log *logrus.Entry
}

// PageStat describes one allocated page.
type PageStat struct {
	Page     uint32
	Rows     uint32
	Checksum uint64
}

// New creates an empty table.
func New() *Table {
	return NewWithLogger(logrus.WithField("component", "table"))
}

// NewWithLogger creates an empty table that logs to log.
func NewWithLogger(log *logrus.Entry) *Table {
	return &Table{
		pager: storage.NewPager(),
		log:   log,
	}
}

// PageOf returns the page number holding logical row i.
func PageOf(i uint32) uint32 {
	return i / storage.RowsPerPage
}

// OffsetOf returns the slot within its page of logical row i.
func OffsetOf(i uint32) uint32 {
	return i % storage.RowsPerPage
}

// NumRows returns the number of stored rows.
func (t *Table) NumRows() uint32 {
	return t.numRows
}

// PageCount returns the number of allocated pages.
func (t *Table) PageCount() uint32 {
	return t.pager.PageCount()
}

// Insert appends a row.
//
// EDUCATIONAL NOTE:
// -----------------
// Inserting a row involves:
// 1. Check capacity (a full table is left untouched)
// 2. Compute the target page and slot from the row count
// 3. Make sure the page exists
// 4. Copy the row into the slot and bump the row count
func (t *Table) Insert(row storage.Row) error {
	if t.numRows >= TableMaxRows {
		t.log.WithField("rows", t.numRows).Debug("insert rejected, table full")
		return ErrTableFull
	}

	pageNum := PageOf(t.numRows)
	allocated, err := t.pager.EnsureCapacity(pageNum)
	if err != nil {
		// Unreachable while the capacity check above holds.
		panic(fmt.Sprintf("table: ensure capacity for page %d: %v", pageNum, err))
	}
	if allocated > 0 {
		t.log.WithField("page", pageNum).Debug("allocated page")
	}

	page, err := t.pager.GetPage(pageNum)
	if err != nil {
		panic(fmt.Sprintf("table: page %d missing after allocation: %v", pageNum, err))
	}
	page.SetSlot(OffsetOf(t.numRows), row)
	t.numRows++

	return nil
}

// Row returns the row at logical index i.
func (t *Table) Row(i uint32) (storage.Row, error) {
	if i >= t.numRows {
		return storage.Row{}, errors.Wrapf(ErrRowOutOfRange, "row %d (only %d rows)", i, t.numRows)
	}
	page, err := t.pager.GetPage(PageOf(i))
	if err != nil {
		return storage.Row{}, errors.Wrapf(err, "row %d", i)
	}
	return page.Slot(OffsetOf(i)), nil
}

// Select visits every stored row in insertion order. It stops at the first
// error returned by visit and returns it.
func (t *Table) Select(visit func(storage.Row) error) error {
	for i := uint32(0); i < t.numRows; i++ {
		row, err := t.Row(i)
		if err != nil {
			return err
		}
		if err := visit(row); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs a prepared statement. Selected rows are written to out, one
// rendered row per line. The only domain error is ErrTableFull.
func (t *Table) Execute(stmt statement.Statement, out io.Writer) error {
	switch stmt.Kind {
	case statement.KindInsert:
		return t.Insert(stmt.Row)
	case statement.KindSelect:
		return t.Select(func(row storage.Row) error {
			if _, err := fmt.Fprintln(out, row.String()); err != nil {
				return errors.Wrap(err, "write row")
			}
			return nil
		})
	default:
		panic(fmt.Sprintf("table: unknown statement kind %v", stmt.Kind))
	}
}

// PageStats returns one entry per allocated page, in page order.
func (t *Table) PageStats() []PageStat {
	stats := make([]PageStat, 0, t.pager.PageCount())
	for n := uint32(0); n < t.pager.PageCount(); n++ {
		page, err := t.pager.GetPage(n)
		if err != nil {
			break
		}
		stats = append(stats, PageStat{
			Page:     n,
			Rows:     t.rowsInPage(n),
			Checksum: page.Checksum(),
		})
	}
	return stats
}

// rowsInPage returns how many slots of page n hold stored rows.
func (t *Table) rowsInPage(n uint32) uint32 {
	first := n * storage.RowsPerPage
	if t.numRows <= first {
		return 0
	}
	used := t.numRows - first
	if used > storage.RowsPerPage {
		used = storage.RowsPerPage
	}
	return used
}
