// Package paginate implements per-resource pagination state with
// stale-response discard. Each resource on a page gets its own
// Coordinator; coordinators never share tokens or counters, so the task
// and employee lists of one department view page independently.
package paginate

import (
	"sync"

	"github.com/gosuda/taskdeck/internal/domain"
)

// Phase is the coordinator's lifecycle phase. There is no terminal phase;
// a coordinator lives as long as its hosting page.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFailed
)

// Coordinator tracks one paginated resource. Every fetch begins with
// Begin, which hands out a monotonically increasing request token; only
// the response carrying the latest token is applied, so a late-arriving
// response for an outdated page or filter is discarded rather than
// overwriting newer data.
type Coordinator[T any] struct {
	mu    sync.Mutex
	phase Phase
	token uint64
	items []T
	meta  domain.Pagination
	// bounded is set once meta comes from a real response; until then
	// (and after InvalidateBounds) Begin cannot clamp against totalPages.
	bounded bool
	err     error
}

// Snapshot is a consistent copy of coordinator state for rendering.
type Snapshot[T any] struct {
	Phase Phase
	Items []T
	Meta  domain.Pagination
	Err   error
}

func New[T any]() *Coordinator[T] {
	return &Coordinator[T]{}
}

// Begin registers intent to load the given page and returns the request
// token the eventual Apply/Fail must carry. Out-of-range pages (below 1,
// or past the known totalPages) are a no-op: ok is false and no token is
// issued.
func (c *Coordinator[T]) Begin(page int) (token uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		return 0, false
	}
	if c.bounded && page > 1 && page > c.meta.TotalPages {
		return 0, false
	}

	c.token++
	c.phase = PhaseLoading
	return c.token, true
}

// Apply installs a successful response: data and pagination metadata are
// replaced atomically, and the displayed page number is whatever the
// response's own pagination block says. A stale token is discarded and
// the method reports false.
func (c *Coordinator[T]) Apply(token uint64, items []T, meta domain.Pagination) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		return false
	}

	c.items = items
	c.meta = meta
	c.bounded = true
	c.err = nil
	c.phase = PhaseIdle
	return true
}

// Fail records a fetch error while retaining the last good data. The
// coordinator never auto-retries; the page exposes a manual retry. Stale
// tokens are discarded.
func (c *Coordinator[T]) Fail(token uint64, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		return false
	}

	c.err = err
	c.phase = PhaseFailed
	return true
}

// InvalidateBounds forgets the known totalPages. Called when the filter
// or limit changes, since bounds derived from the previous result no
// longer constrain the new one.
func (c *Coordinator[T]) InvalidateBounds() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bounded = false
}

// InRange reports whether page is a valid navigation target given the
// current metadata.
func (c *Coordinator[T]) InRange(page int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if page < 1 {
		return false
	}
	if c.bounded && page > 1 && page > c.meta.TotalPages {
		return false
	}
	return true
}

func (c *Coordinator[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return Snapshot[T]{
		Phase: c.phase,
		Items: items,
		Meta:  c.meta,
		Err:   c.err,
	}
}

// CanNext reports whether forward navigation is allowed. Server-confirmed
// hasNextPage=false disables it; so does an empty result set.
func (c *Coordinator[T]) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounded && c.meta.HasNextPage
}

func (c *Coordinator[T]) CanPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bounded && c.meta.HasPrevPage
}

// DisplayPage is the page number to render: the server-confirmed current
// page, floored at 1 so an empty result (totalPages == 0) never shows a
// page count below 1.
func (c *Coordinator[T]) DisplayPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.meta.CurrentPage < 1 {
		return 1
	}
	return c.meta.CurrentPage
}

// DisplayTotalPages floors the rendered page total at 1 for the same
// reason as DisplayPage.
func (c *Coordinator[T]) DisplayTotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.meta.TotalPages < 1 {
		return 1
	}
	return c.meta.TotalPages
}
