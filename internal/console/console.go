// Package console contains one controller per admin screen. All
// controllers are built from the same shared core (gateway client,
// filter coordinator, pagination coordinator, reducers) instead of each
// screen reimplementing fetch and state logic. They render to plain
// text for the terminal.
package console

import (
	"context"
	"errors"

	"github.com/gosuda/taskdeck/internal/domain"
	"github.com/gosuda/taskdeck/internal/filter"
	"github.com/gosuda/taskdeck/internal/paginate"
)

// fetchFunc loads one page of a resource under the given filter.
type fetchFunc[T any] func(ctx context.Context, f filter.Filter) ([]T, domain.Pagination, error)

// resource couples one paginated listing's filter state, pagination
// state and fetch path. Each listing on a screen gets its own resource;
// two resources never share coordinators.
type resource[T any] struct {
	filters *filter.Coordinator
	pager   *paginate.Coordinator[T]
	fetch   fetchFunc[T]
}

func newResource[T any](f filter.Filter, fetch fetchFunc[T]) *resource[T] {
	return &resource[T]{
		filters: filter.NewCoordinator(f),
		pager:   paginate.New[T](),
		fetch:   fetch,
	}
}

// load fetches the page the filter currently points at. On failure the
// pager keeps its last good data and records the error; the caller
// decides whether to surface it as a banner or a hard failure.
func (r *resource[T]) load(ctx context.Context) error {
	f := r.filters.Current()
	version := r.filters.Version()
	token, ok := r.pager.Begin(f.Page)
	if !ok {
		return nil
	}

	items, meta, err := r.fetch(ctx, f)

	// The response belongs to the filter state that issued it. If the
	// filter moved on while the request was in flight, a newer load owns
	// the coordinator now; neither the data nor the error applies.
	if r.filters.Version() != version {
		return nil
	}

	if err != nil {
		r.pager.Fail(token, err)
		return err
	}
	r.pager.Apply(token, items, meta)
	return nil
}

// setFilter applies one filter change and refetches. The coordinator
// re-anchors to page 1 on any non-page change, and the pager's bounds
// are invalidated because totals from the previous filter no longer
// apply.
func (r *resource[T]) setFilter(ctx context.Context, key, value string) error {
	if err := r.filters.Set(key, value); err != nil {
		return err
	}
	r.pager.InvalidateBounds()
	return r.load(ctx)
}

// goToPage navigates to page n. Out-of-range targets are a silent no-op,
// matching disabled pager buttons.
func (r *resource[T]) goToPage(ctx context.Context, n int) error {
	if !r.pager.InRange(n) {
		return nil
	}
	if err := r.filters.SetPage(n); err != nil {
		return err
	}
	return r.load(ctx)
}

// AccessDenied reports whether err is the backend's 403: the operator
// should be sent back to a screen they are allowed on, not offered a
// retry.
func AccessDenied(err error) bool {
	return errors.Is(err, domain.ErrForbidden)
}

// Transient reports whether err is worth a manual retry: the backend or
// network was unavailable but the contract was not violated.
func Transient(err error) bool {
	return errors.Is(err, domain.ErrUnavailable)
}
