package catalogue

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	SortNewest    = "-createdAt"
	SortOldest    = "createdAt"
	SortPriceDesc = "-price"
	SortPriceAsc  = "price"
	SortNameAsc   = "name"
	SortNameDesc  = "-name"

	DefaultSort     = SortNewest
	MaxSearchLength = 100
)

// Query parameter names accepted on the product listing.
const (
	ParamCategory = "category"
	ParamPeriod   = "period"
	ParamMinPrice = "minPrice"
	ParamMaxPrice = "maxPrice"
	ParamSearch   = "search"
	ParamPage     = "page"
	ParamLimit    = "limit"
	ParamSort     = "sort"
)

type Config struct {
	DefaultLimit int
	MaxLimit     int
}

func DefaultConfig() Config {
	return Config{DefaultLimit: 12, MaxLimit: 100}
}

// Filter is the normalized form of a product listing request.
// Nil pointers mean "no constraint".
type Filter struct {
	CategoryID *uuid.UUID
	PeriodID   *uuid.UUID
	MinPrice   *float64
	MaxPrice   *float64
	Search     string
	Page       int
	Limit      int
	Sort       string
}

// Normalize turns raw query parameters into a Filter. Malformed values are
// dropped and replaced by their defaults, so it never fails.
func Normalize(values url.Values, cfg Config) Filter {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultConfig().DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = DefaultConfig().MaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}

	f := Filter{
		Page:  1,
		Limit: cfg.DefaultLimit,
		Sort:  DefaultSort,
	}

	f.CategoryID = parseID(values.Get(ParamCategory))
	f.PeriodID = parseID(values.Get(ParamPeriod))

	f.MinPrice = parsePrice(values.Get(ParamMinPrice))
	f.MaxPrice = parsePrice(values.Get(ParamMaxPrice))

	// an inverted range means nothing sensible was asked for
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		f.MinPrice = nil
		f.MaxPrice = nil
	}

	f.Search = normalizeSearch(values.Get(ParamSearch))

	if page, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil && page >= 1 {
		f.Page = min(page, MaxPage(cfg.MaxLimit))
	}

	if limit, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamLimit))); err == nil && limit >= 1 {
		f.Limit = min(limit, cfg.MaxLimit)
	}

	if sort := strings.TrimSpace(values.Get(ParamSort)); IsValidSort(sort) {
		f.Sort = sort
	}

	return f
}

// MaxPage is the highest page whose offset still fits in an int for any limit
// up to maxLimit. Larger pages are clamped to it and come back empty.
func MaxPage(maxLimit int) int {
	if maxLimit < 1 {
		maxLimit = 1
	}

	return math.MaxInt32 / maxLimit
}

func IsValidSort(sort string) bool {
	_, ok := orderClauses[sort]
	return ok
}

// Values serializes the filter back into query parameters.
// Normalize(f.Values(), cfg) yields f again.
func (f Filter) Values() url.Values {
	v := url.Values{}

	if f.CategoryID != nil {
		v.Set(ParamCategory, f.CategoryID.String())
	}
	if f.PeriodID != nil {
		v.Set(ParamPeriod, f.PeriodID.String())
	}
	if f.MinPrice != nil {
		v.Set(ParamMinPrice, strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		v.Set(ParamMaxPrice, strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Search != "" {
		v.Set(ParamSearch, f.Search)
	}

	v.Set(ParamPage, strconv.Itoa(f.Page))
	v.Set(ParamLimit, strconv.Itoa(f.Limit))
	v.Set(ParamSort, f.Sort)

	return v
}

// CacheKey is stable for equal filters because url.Values.Encode sorts by key.
func (f Filter) CacheKey() string {
	return f.Values().Encode()
}

// HasConstraints reports whether the filter narrows the result set at all.
func (f Filter) HasConstraints() bool {
	return f.CategoryID != nil || f.PeriodID != nil || f.MinPrice != nil || f.MaxPrice != nil || f.Search != ""
}

func parseID(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return nil
	}

	return &id
}

func parsePrice(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func normalizeSearch(raw string) string {
	s := strings.TrimSpace(raw)
	if utf8.RuneCountInString(s) > MaxSearchLength {
		s = strings.TrimSpace(string([]rune(s)[:MaxSearchLength]))
	}

	return s
}
