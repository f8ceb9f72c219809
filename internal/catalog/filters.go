package catalog

// CategoryAll is the category selector value that disables category
// filtering. The remaining category options are whatever the fetched
// catalog contains.
const CategoryAll = "All"

// PriceBucket is one of five mutually exclusive price ranges. The
// boundary prices 50 and 100 belong to the middle bucket.
type PriceBucket string

const (
	AllPrices    PriceBucket = "All Prices"
	Under50      PriceBucket = "Under $50"
	From50To100  PriceBucket = "$50 - $100"
	From100To500 PriceBucket = "$100 - $500"
	Over500      PriceBucket = "Over $500+"
)

func (b PriceBucket) Valid() bool {
	switch b {
	case AllPrices, Under50, From50To100, From100To500, Over500:
		return true
	}
	return false
}

// Matches reports whether a price falls inside the bucket.
func (b PriceBucket) Matches(price float64) bool {
	switch b {
	case Under50:
		return price < 50
	case From50To100:
		return price >= 50 && price <= 100
	case From100To500:
		return price > 100 && price <= 500
	case Over500:
		return price > 500
	default: // AllPrices
		return true
	}
}

// SortKey orders the derived list. Featured keeps the order the
// backend returned the catalog in.
type SortKey string

const (
	SortFeatured     SortKey = "Featured"
	SortPriceLowHigh SortKey = "Price: Low to High"
	SortPriceHighLow SortKey = "Price: High to Low"
	SortRating       SortKey = "Customer Rating"
	SortNewest       SortKey = "Newest"
)

// normalizeSortKey maps unrecognized sort keys to Featured rather than
// rejecting them, so a stale selector value degrades to a no-op sort.
func normalizeSortKey(k SortKey) SortKey {
	switch k {
	case SortFeatured, SortPriceLowHigh, SortPriceHighLow, SortRating, SortNewest:
		return k
	}
	return SortFeatured
}

// Selection is the storefront's filter state: one value per selector.
type Selection struct {
	Category    string
	PriceBucket PriceBucket
	SortKey     SortKey
}

func DefaultSelection() Selection {
	return Selection{
		Category:    CategoryAll,
		PriceBucket: AllPrices,
		SortKey:     SortFeatured,
	}
}
