package feedview

import (
	"context"
	"sync"
)

// FetchFunc loads one page of a server-side collection.
type FetchFunc[T any] func(ctx context.Context, page, limit int) ([]T, error)

// Pager is the offset-based loader behind every infinite-scroll list: home
// feed, profile feed and the likes modal. The page number only grows until an
// explicit Reset; a short page retires the sentinel for good.
type Pager[T any] struct {
	fetch FetchFunc[T]
	limit int

	mu      sync.Mutex
	items   []T
	page    int
	hasMore bool
	loading bool
}

func NewPager[T any](limit int, fetch FetchFunc[T]) *Pager[T] {
	return &Pager[T]{
		fetch:   fetch,
		limit:   limit,
		page:    1,
		hasMore: true,
	}
}

// Refresh resets the pager and loads the first page. A failed load keeps the
// previous items.
func (p *Pager[T]) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.mu.Unlock()

	batch, err := p.fetch(ctx, 1, p.limit)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return err
	}
	p.items = batch
	p.page = 2
	p.hasMore = len(batch) == p.limit
	return nil
}

// OnSentinel is called when the sentinel enters the viewport. It loads the
// next page unless the list is exhausted or a load is already in flight, and
// reports whether a load actually ran.
func (p *Pager[T]) OnSentinel(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if !p.hasMore || p.loading {
		p.mu.Unlock()
		return false, nil
	}
	p.loading = true
	page := p.page
	p.mu.Unlock()

	batch, err := p.fetch(ctx, page, p.limit)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		// The failed page stays pending; the next sentinel retries it.
		return false, err
	}
	p.items = append(p.items, batch...)
	p.page = page + 1
	p.hasMore = len(batch) == p.limit
	return true, nil
}

// Items returns a copy of the loaded collection.
func (p *Pager[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// Mutate applies an in-place edit to the loaded collection, e.g. replacing a
// post document the API returned or dropping a deleted one.
func (p *Pager[T]) Mutate(fn func(items []T) []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = fn(p.items)
}

// HasMore reports whether the server may still have more pages.
func (p *Pager[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Page returns the next page number to be requested.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Loading reports whether a load is in flight.
func (p *Pager[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Reset empties the pager so the next load starts from page one. Used when
// the sort order or parent collection changes.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.page = 1
	p.hasMore = true
}
