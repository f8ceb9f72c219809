// Package catalog implements the storefront's product list pipeline:
// a source product set plus three independent selectors (category,
// price bucket, sort order), from which a displayed list is re-derived
// whole on every change.
package catalog

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/rubenhtun/luxora-store/internal/logger"
	"github.com/rubenhtun/luxora-store/internal/product"
)

var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownPriceBucket = errors.New("unknown price bucket")
)

// Fetcher is the product-fetch collaborator, typically the API client.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]product.Product, error)
}

// Snapshot is the view state handed to consumers: the derived list,
// the active selection and the fetch status.
type Snapshot struct {
	Products  []product.Product
	Selection Selection
	Loading   bool
	Err       string
}

// View owns the catalog filter state. All mutations run to completion
// under the lock; consumers are notified synchronously, once per
// triggering change.
type View struct {
	mu       sync.Mutex
	fetcher  Fetcher
	onChange func(Snapshot)

	source  []product.Product
	sel     Selection
	derived []product.Product
	loading bool
	errMsg  string
}

type Option func(*View)

// WithOnChange registers a synchronous observer invoked after every
// recompute. The callback must not call back into the View.
func WithOnChange(fn func(Snapshot)) Option {
	return func(v *View) { v.onChange = fn }
}

func NewView(fetcher Fetcher, opts ...Option) *View {
	v := &View{
		fetcher: fetcher,
		sel:     DefaultSelection(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetProducts replaces the source set and recomputes. An empty slice
// is valid and yields an empty derived list.
func (v *View) SetProducts(list []product.Product) {
	v.mu.Lock()
	v.source = append([]product.Product(nil), list...)
	v.recompute()
	snap := v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
}

// SetCategory selects a category filter. Valid values are CategoryAll
// and any category present in the current source set.
func (v *View) SetCategory(category string) error {
	v.mu.Lock()
	if !v.knownCategory(category) {
		v.mu.Unlock()
		return ErrUnknownCategory
	}
	v.sel.Category = category
	v.recompute()
	snap := v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
	return nil
}

func (v *View) SetPriceBucket(bucket PriceBucket) error {
	v.mu.Lock()
	if !bucket.Valid() {
		v.mu.Unlock()
		return ErrUnknownPriceBucket
	}
	v.sel.PriceBucket = bucket
	v.recompute()
	snap := v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
	return nil
}

// SetSortKey selects the sort order. Unrecognized keys degrade to
// Featured instead of failing.
func (v *View) SetSortKey(key SortKey) {
	v.mu.Lock()
	v.sel.SortKey = normalizeSortKey(key)
	v.recompute()
	snap := v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
}

// Apply updates all three selectors in one recompute.
func (v *View) Apply(sel Selection) error {
	v.mu.Lock()
	if !v.knownCategory(sel.Category) {
		v.mu.Unlock()
		return ErrUnknownCategory
	}
	if !sel.PriceBucket.Valid() {
		v.mu.Unlock()
		return ErrUnknownPriceBucket
	}
	sel.SortKey = normalizeSortKey(sel.SortKey)
	v.sel = sel
	v.recompute()
	snap := v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
	return nil
}

// ResetFilters restores the default selection and recomputes.
func (v *View) ResetFilters() {
	v.mu.Lock()
	v.sel = DefaultSelection()
	v.recompute()
	snap := v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
}

// LoadProducts fetches the catalog through the collaborator. Failures
// land in the Err field, never in a panic or returned error; retry is
// user-triggered only, via Retry.
func (v *View) LoadProducts(ctx context.Context) {
	v.mu.Lock()
	v.loading = true
	v.errMsg = ""
	snap := v.snapshot()
	v.mu.Unlock()
	v.notify(snap)

	list, err := v.fetcher.FetchProducts(ctx)

	v.mu.Lock()
	v.loading = false
	if err != nil {
		logger.L().Warn("catalog fetch failed", zap.Error(err))
		v.errMsg = err.Error()
		v.source = nil
		v.derived = nil
	} else {
		v.source = list
		v.recompute()
	}
	snap = v.snapshot()
	v.mu.Unlock()

	v.notify(snap)
}

// Retry re-invokes LoadProducts.
func (v *View) Retry(ctx context.Context) {
	v.LoadProducts(ctx)
}

// Snapshot returns a copy of the current view state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot()
}

// Products returns the derived list.
func (v *View) Products() []product.Product {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]product.Product(nil), v.derived...)
}

func (v *View) Selection() Selection {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sel
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *View) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// recompute re-derives the displayed list from the full source set.
// It never patches the previous result, so out-of-order selector
// updates cannot leave stale entries behind. Callers hold the lock.
func (v *View) recompute() {
	filtered := make([]product.Product, 0, len(v.source))
	for _, p := range v.source {
		if v.sel.Category != CategoryAll && p.Category != v.sel.Category {
			continue
		}
		if !v.sel.PriceBucket.Matches(p.Price) {
			continue
		}
		filtered = append(filtered, p)
	}

	// Stable sorts keep the source fetch order as the tie-break, which
	// makes every ordering deterministic.
	switch v.sel.SortKey {
	case SortPriceLowHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceHighLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortRating:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Rating > filtered[j].Rating
		})
	case SortNewest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	v.derived = filtered
}

func (v *View) knownCategory(category string) bool {
	if category == CategoryAll {
		return true
	}
	for _, p := range v.source {
		if p.Category == category {
			return true
		}
	}
	return false
}

func (v *View) snapshot() Snapshot {
	return Snapshot{
		Products:  append([]product.Product(nil), v.derived...),
		Selection: v.sel,
		Loading:   v.loading,
		Err:       v.errMsg,
	}
}

func (v *View) notify(snap Snapshot) {
	if v.onChange != nil {
		v.onChange(snap)
	}
}
