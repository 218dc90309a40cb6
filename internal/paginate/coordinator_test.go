package paginate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/paginate"
)

func meta(page, totalPages, totalItems int) domain.Pagination {
	return domain.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNextPage: totalPages > 0 && page < totalPages,
		HasPrevPage: totalPages > 0 && page > 1,
	}
}

// ---------------------------------------------------------------------------
// TestCoordinatorLifecycle
// ---------------------------------------------------------------------------

func TestCoordinatorLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("begin_apply", func(t *testing.T) {
		t.Parallel()

		c := paginate.New[string]()
		tok, ok := c.Begin(1)
		require.True(t, ok)
		assert.Equal(t, paginate.PhaseLoading, c.Snapshot().Phase)

		applied := c.Apply(tok, []string{"a", "b"}, meta(1, 3, 25))
		require.True(t, applied)

		snap := c.Snapshot()
		assert.Equal(t, paginate.PhaseIdle, snap.Phase)
		assert.Equal(t, []string{"a", "b"}, snap.Items)
		assert.Equal(t, 1, snap.Meta.CurrentPage)
		assert.NoError(t, snap.Err)
	})

	t.Run("page_number_from_response_not_request", func(t *testing.T) {
		t.Parallel()

		c := paginate.New[string]()
		tok, ok := c.Begin(7)
		require.True(t, ok)

		// Server clamped the request to its real last page.
		c.Apply(tok, []string{"x"}, meta(3, 3, 21))
		assert.Equal(t, 3, c.DisplayPage())
	})

	t.Run("failure_retains_last_good_data", func(t *testing.T) {
		t.Parallel()

		c := paginate.New[string]()
		tok, _ := c.Begin(1)
		c.Apply(tok, []string{"good"}, meta(1, 2, 12))

		tok2, _ := c.Begin(2)
		failed := c.Fail(tok2, errors.New("503"))
		require.True(t, failed)

		snap := c.Snapshot()
		assert.Equal(t, paginate.PhaseFailed, snap.Phase)
		assert.Equal(t, []string{"good"}, snap.Items, "last good data survives the error")
		assert.Error(t, snap.Err)

		// A later successful retry clears the error.
		tok3, _ := c.Begin(2)
		c.Apply(tok3, []string{"fresh"}, meta(2, 2, 12))
		snap = c.Snapshot()
		assert.Equal(t, paginate.PhaseIdle, snap.Phase)
		assert.NoError(t, snap.Err)
	})
}

// ---------------------------------------------------------------------------
// TestStaleResponseDiscard
// ---------------------------------------------------------------------------

func TestStaleResponseDiscard(t *testing.T) {
	t.Parallel()

	c := paginate.New[string]()

	// Request A (token 1) for page 1, then request B (token 2) for page 2
	// before A resolves.
	tokA, okA := c.Begin(1)
	require.True(t, okA)
	tokB, okB := c.Begin(2)
	require.True(t, okB)

	// B resolves first.
	require.True(t, c.Apply(tokB, []string{"page2"}, meta(2, 5, 50)))

	// A resolves late and must be discarded.
	assert.False(t, c.Apply(tokA, []string{"page1"}, meta(1, 5, 50)))

	snap := c.Snapshot()
	assert.Equal(t, []string{"page2"}, snap.Items)
	assert.Equal(t, 2, snap.Meta.CurrentPage)

	// A stale failure is equally ignored.
	assert.False(t, c.Fail(tokA, errors.New("timeout")))
	assert.Equal(t, paginate.PhaseIdle, c.Snapshot().Phase)
}

// ---------------------------------------------------------------------------
// TestBounds
// ---------------------------------------------------------------------------

func TestBounds(t *testing.T) {
	t.Parallel()

	t.Run("page_below_one_is_noop", func(t *testing.T) {
		t.Parallel()

		c := paginate.New[int]()
		_, ok := c.Begin(0)
		assert.False(t, ok)
		_, ok = c.Begin(-3)
		assert.False(t, ok)
	})

	t.Run("past_last_page_is_noop_once_bounds_known", func(t *testing.T) {
		t.Parallel()

		c := paginate.New[int]()

		// Bounds unknown: any positive page may be requested.
		tok, ok := c.Begin(4)
		require.True(t, ok)
		c.Apply(tok, []int{1, 2}, meta(4, 4, 38))

		_, ok = c.Begin(5)
		assert.False(t, ok, "totalPages+1 must be a no-op")
		assert.False(t, c.InRange(5))
		assert.True(t, c.InRange(4))

		// After a filter change the old bounds no longer apply.
		c.InvalidateBounds()
		_, ok = c.Begin(5)
		assert.True(t, ok)
	})

	t.Run("server_confirmed_no_next_disables_forward", func(t *testing.T) {
		t.Parallel()

		c := paginate.New[int]()
		tok, _ := c.Begin(2)
		c.Apply(tok, []int{9}, meta(2, 2, 11))

		assert.False(t, c.CanNext())
		assert.True(t, c.CanPrev())
	})
}

// ---------------------------------------------------------------------------
// TestEmptyResultSet
// ---------------------------------------------------------------------------

func TestEmptyResultSet(t *testing.T) {
	t.Parallel()

	c := paginate.New[int]()
	tok, _ := c.Begin(1)
	c.Apply(tok, nil, domain.Pagination{CurrentPage: 1, TotalPages: 0, TotalItems: 0})

	assert.False(t, c.CanNext(), "empty set disables forward navigation")
	assert.False(t, c.CanPrev(), "empty set disables backward navigation")
	assert.Equal(t, 1, c.DisplayPage(), "displayed page never drops below 1")
	assert.Equal(t, 1, c.DisplayTotalPages(), "displayed page total never drops below 1")
	assert.Empty(t, c.Snapshot().Items)
}
