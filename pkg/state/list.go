// Package state provides the per-screen list state holder shared by every
// paged view: current page, loading phase, last error, and a monotonic fetch
// sequence that discards stale completions when rapid filter changes make
// responses arrive out of order.
package state

import (
	"context"
	"sync"

	"github.com/saikamaik/airline-sub000/pkg/model"
)

// Phase is the list screen lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// FetchFunc loads one page of results under the holder's current filter.
// Rebinding the function (SetFetch) is how a filter change is expressed.
type FetchFunc[T any] func(ctx context.Context, page int) (model.Page[T], error)

// Snapshot is a consistent read of the holder's state.
type Snapshot[T any] struct {
	Phase Phase
	Page  model.Page[T]
	Index int
	Err   error
}

// List owns the mutable state of one paged screen. Safe for concurrent use;
// a completion older than the latest issued fetch is discarded, so stale
// responses can never overwrite fresher ones.
type List[T any] struct {
	mu     sync.Mutex
	fetch  FetchFunc[T]
	phase  Phase
	page   model.Page[T]
	index  int
	err    error
	latest uint64
}

// NewList creates an idle holder bound to a fetch function.
func NewList[T any](fetch FetchFunc[T]) *List[T] {
	return &List[T]{fetch: fetch}
}

// Snapshot returns the current state.
func (l *List[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot[T]{Phase: l.phase, Page: l.page, Index: l.index, Err: l.err}
}

// Load fetches the current page. The result is applied only if no newer
// fetch was issued while this one was in flight.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	l.latest++
	seq := l.latest
	index := l.index
	fetch := l.fetch
	l.phase = Loading
	l.mu.Unlock()

	page, err := fetch(ctx, index)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq != l.latest {
		// A newer fetch superseded this one; drop the result.
		return nil
	}

	if err != nil {
		l.phase = Failed
		l.err = err
		return err
	}

	l.phase = Loaded
	l.page = page
	l.err = nil
	return nil
}

// SetPage moves to the given page index and refetches. A page past the end
// is not an error: the backend answers with an empty content slice.
func (l *List[T]) SetPage(ctx context.Context, index int) error {
	l.mu.Lock()
	if index < 0 {
		index = 0
	}
	l.index = index
	l.mu.Unlock()
	return l.Load(ctx)
}

// SetFetch rebinds the fetch function (a filter change), resets pagination
// to page 0, and refetches.
func (l *List[T]) SetFetch(ctx context.Context, fetch FetchFunc[T]) error {
	l.mu.Lock()
	l.fetch = fetch
	l.index = 0
	l.mu.Unlock()
	return l.Load(ctx)
}

// Refresh refetches the current page.
func (l *List[T]) Refresh(ctx context.Context) error {
	return l.Load(ctx)
}
