package catalogue_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/catalogue"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNormalize(t *testing.T) {
	cfg := catalogue.DefaultConfig()
	categoryID := uuid.New()
	periodID := uuid.New()

	tests := []struct {
		name     string
		query    url.Values
		expected catalogue.Filter
	}{
		{
			name:     "Empty query yields defaults",
			query:    url.Values{},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name: "All parameters valid",
			query: url.Values{
				"category": {categoryID.String()},
				"period":   {periodID.String()},
				"minPrice": {"100"},
				"maxPrice": {"2500.5"},
				"search":   {"  louis xv  "},
				"page":     {"3"},
				"limit":    {"24"},
				"sort":     {"price"},
			},
			expected: catalogue.Filter{
				CategoryID: &categoryID,
				PeriodID:   &periodID,
				MinPrice:   ptr(100.0),
				MaxPrice:   ptr(2500.5),
				Search:     "louis xv",
				Page:       3,
				Limit:      24,
				Sort:       "price",
			},
		},
		{
			name:     "Non numeric values are dropped",
			query:    url.Values{"page": {"abc"}, "limit": {"x"}, "minPrice": {"cheap"}, "maxPrice": {"NaN"}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Negative values are dropped",
			query:    url.Values{"page": {"-2"}, "limit": {"-5"}, "minPrice": {"-1"}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Huge page is clamped",
			query:    url.Values{"page": {"9223372036854775807"}},
			expected: catalogue.Filter{Page: catalogue.MaxPage(100), Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Zero limit falls back to default",
			query:    url.Values{"limit": {"0"}, "page": {"0"}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Limit above maximum is clamped",
			query:    url.Values{"limit": {"1000"}},
			expected: catalogue.Filter{Page: 1, Limit: 100, Sort: "-createdAt"},
		},
		{
			name:     "Inverted price range drops both bounds",
			query:    url.Values{"minPrice": {"500"}, "maxPrice": {"100"}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Equal price bounds are kept",
			query:    url.Values{"minPrice": {"100"}, "maxPrice": {"100"}},
			expected: catalogue.Filter{MinPrice: ptr(100.0), MaxPrice: ptr(100.0), Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Unknown sort falls back to newest",
			query:    url.Values{"sort": {"popularity"}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Malformed ids are dropped",
			query:    url.Values{"category": {"not-a-uuid"}, "period": {uuid.Nil.String()}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Blank search means no search",
			query:    url.Values{"search": {"   "}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
		{
			name:     "Unknown keys are ignored",
			query:    url.Values{"color": {"red"}, "pageSize": {"50"}},
			expected: catalogue.Filter{Page: 1, Limit: 12, Sort: "-createdAt"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			f := catalogue.Normalize(tc.query, cfg)

			// Assert
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestNormalize_SearchIsCapped(t *testing.T) {
	long := strings.Repeat("é", 150)

	f := catalogue.Normalize(url.Values{"search": {long}}, catalogue.DefaultConfig())

	assert.Equal(t, strings.Repeat("é", catalogue.MaxSearchLength), f.Search)
}

func TestNormalize_CustomConfig(t *testing.T) {
	cfg := catalogue.Config{DefaultLimit: 6, MaxLimit: 30}

	f := catalogue.Normalize(url.Values{}, cfg)
	assert.Equal(t, 6, f.Limit)

	f = catalogue.Normalize(url.Values{"limit": {"31"}}, cfg)
	assert.Equal(t, 30, f.Limit)

	// zero config falls back to the built-in defaults
	f = catalogue.Normalize(url.Values{}, catalogue.Config{})
	assert.Equal(t, 12, f.Limit)
}

func TestFilter_RoundTrip(t *testing.T) {
	cfg := catalogue.DefaultConfig()
	categoryID := uuid.New()

	queries := []url.Values{
		{},
		{"category": {categoryID.String()}, "minPrice": {"0.1"}, "maxPrice": {"99999.99"}},
		{"search": {"commode 100% _oak_"}, "page": {"7"}, "limit": {"100"}, "sort": {"-name"}},
		{"search": {strings.Repeat("ab ", 60)}},
		{"minPrice": {"1e3"}, "limit": {"500"}},
	}

	for _, q := range queries {
		// Arrange
		first := catalogue.Normalize(q, cfg)

		// Act
		second := catalogue.Normalize(first.Values(), cfg)

		// Assert
		require.Equal(t, first, second, "round trip changed filter for %v", q)
		assert.Equal(t, first.CacheKey(), second.CacheKey())
	}
}

func TestFilter_CacheKey(t *testing.T) {
	cfg := catalogue.DefaultConfig()

	a := catalogue.Normalize(url.Values{"sort": {"price"}, "page": {"2"}}, cfg)
	b := catalogue.Normalize(url.Values{"page": {"2"}, "sort": {"price"}, "ignored": {"x"}}, cfg)
	c := catalogue.Normalize(url.Values{"page": {"3"}, "sort": {"price"}}, cfg)

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
	assert.Equal(t, "limit=12&page=2&sort=price", a.CacheKey())
}

func TestFilter_HasConstraints(t *testing.T) {
	cfg := catalogue.DefaultConfig()

	assert.False(t, catalogue.Normalize(url.Values{"page": {"4"}}, cfg).HasConstraints())
	assert.True(t, catalogue.Normalize(url.Values{"search": {"vase"}}, cfg).HasConstraints())
}
