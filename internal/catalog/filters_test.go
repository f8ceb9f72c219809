package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceBucketBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		bucket PriceBucket
		price  float64
		want   bool
	}{
		{"All prices matches anything", AllPrices, 9999, true},
		{"Under 50 below boundary", Under50, 49.99, true},
		{"Exactly 50 is not under 50", Under50, 50, false},
		{"Exactly 50 belongs to middle bucket", From50To100, 50, true},
		{"Exactly 100 belongs to middle bucket", From50To100, 100, true},
		{"Exactly 100 is not in 100-500", From100To500, 100, false},
		{"Just over 100 is in 100-500", From100To500, 100.01, true},
		{"Exactly 500 is in 100-500", From100To500, 500, true},
		{"Exactly 500 is not over 500", Over500, 500, false},
		{"Over 500", Over500, 500.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bucket.Matches(tt.price))
		})
	}
}

func TestPriceBucketValid(t *testing.T) {
	for _, b := range []PriceBucket{AllPrices, Under50, From50To100, From100To500, Over500} {
		assert.True(t, b.Valid(), string(b))
	}
	assert.False(t, PriceBucket("$1 - $2").Valid())
	assert.False(t, PriceBucket("").Valid())
}

func TestNormalizeSortKey(t *testing.T) {
	assert.Equal(t, SortNewest, normalizeSortKey(SortNewest))
	assert.Equal(t, SortFeatured, normalizeSortKey(SortKey("Alphabetical")))
	assert.Equal(t, SortFeatured, normalizeSortKey(SortKey("")))
}

func TestDefaultSelection(t *testing.T) {
	sel := DefaultSelection()
	assert.Equal(t, CategoryAll, sel.Category)
	assert.Equal(t, AllPrices, sel.PriceBucket)
	assert.Equal(t, SortFeatured, sel.SortKey)
}
