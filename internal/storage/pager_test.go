package storage

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPager(t *testing.T) {
	pager := NewPager()

	assert.Equal(t, uint32(0), pager.PageCount())
	assert.Equal(t, TableMaxPages, pager.Capacity())
}

func TestEnsureCapacity(t *testing.T) {
	pager := NewPager()

	allocated, err := pager.EnsureCapacity(0)
	require.NoError(t, err)
	assert.Equal(t, 1, allocated)
	assert.Equal(t, uint32(1), pager.PageCount())

	// Already addressable, nothing to do.
	allocated, err = pager.EnsureCapacity(0)
	require.NoError(t, err)
	assert.Equal(t, 0, allocated)

	// Growing past a gap fills every missing page.
	allocated, err = pager.EnsureCapacity(4)
	require.NoError(t, err)
	assert.Equal(t, 4, allocated)
	assert.Equal(t, uint32(5), pager.PageCount())

	for i := uint32(0); i < pager.PageCount(); i++ {
		page, err := pager.GetPage(i)
		require.NoError(t, err)
		assert.Equal(t, i, page.ID())
		assert.Equal(t, BlankRow(), page.Slot(0))
	}
}

func TestEnsureCapacityBounds(t *testing.T) {
	pager := NewPager()

	_, err := pager.EnsureCapacity(TableMaxPages - 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(TableMaxPages), pager.PageCount())
	assert.Equal(t, TableMaxPages, pager.Capacity(), "growth stays within the reservation")

	_, err = pager.EnsureCapacity(TableMaxPages)
	assert.Equal(t, ErrPageOutOfBounds, errors.Cause(err))
	assert.Equal(t, uint32(TableMaxPages), pager.PageCount())
}

func TestGetPageErrors(t *testing.T) {
	pager := NewPager()

	_, err := pager.GetPage(0)
	assert.Equal(t, ErrPageNotAllocated, errors.Cause(err))

	_, err = pager.GetPage(TableMaxPages)
	assert.Equal(t, ErrPageOutOfBounds, errors.Cause(err))
}

func TestGetPageReturnsSamePage(t *testing.T) {
	pager := NewPager()
	_, err := pager.EnsureCapacity(1)
	require.NoError(t, err)

	first, err := pager.GetPage(1)
	require.NoError(t, err)
	first.SetSlot(0, NewRow(1, "a", "b"))

	again, err := pager.GetPage(1)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, "(1, 'a', 'b')", again.Slot(0).String())
}
