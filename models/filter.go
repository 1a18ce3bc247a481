package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type SortBy string

const (
	SortPriceAsc   SortBy = "price-asc"
	SortPriceDesc  SortBy = "price-desc"
	SortNameAsc    SortBy = "name-asc"
	SortNameDesc   SortBy = "name-desc"
	SortRatingAsc  SortBy = "rating-asc"
	SortRatingDesc SortBy = "rating-desc"

	DefaultSort = SortPriceAsc
)

// MaxPrice is the largest value products.price (NUMERIC(10,2)) can hold.
var MaxPrice = decimal.RequireFromString("99999999.99")

const maxBoundExponent = 12

var sortSelectors = map[SortBy]bool{
	SortPriceAsc:   true,
	SortPriceDesc:  true,
	SortNameAsc:    true,
	SortNameDesc:   true,
	SortRatingAsc:  true,
	SortRatingDesc: true,
}

// ParseSortBy accepts both "price-asc" and "price_asc". Anything else falls
// back to DefaultSort.
func ParseSortBy(raw string) SortBy {
	s := SortBy(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-"))
	if sortSelectors[s] {
		return s
	}
	return DefaultSort
}

// ProductFilter is a validated catalog query. Nil bounds are unbounded.
type ProductFilter struct {
	PriceFrom *decimal.Decimal
	PriceTo   *decimal.Decimal
	MinRating *float64
	Search    string
	SortBy    SortBy
}

func ParseProductFilter(q ShopQuery) (ProductFilter, error) {
	filter := ProductFilter{
		Search: strings.TrimSpace(q.Search),
		SortBy: ParseSortBy(q.SortBy),
	}

	var err error
	if filter.PriceFrom, err = parsePriceBound("priceFrom", q.PriceFrom); err != nil {
		return ProductFilter{}, err
	}
	if filter.PriceTo, err = parsePriceBound("priceTo", q.PriceTo); err != nil {
		return ProductFilter{}, err
	}
	if filter.PriceFrom != nil && filter.PriceTo != nil && filter.PriceFrom.GreaterThan(*filter.PriceTo) {
		return ProductFilter{}, NewValidationError("priceFrom must not be greater than priceTo")
	}

	if raw := strings.TrimSpace(q.MinRating); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
			return ProductFilter{}, NewValidationError("minRating must be a number between %d and %d", MinRating, MaxRating)
		}
		filter.MinRating = &rating
	}

	return filter, nil
}

func parsePriceBound(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, NewValidationError("%s must be a number", name)
	}
	if value.IsNegative() {
		return nil, NewValidationError("%s must not be negative", name)
	}
	// The exponent check must come first: comparing or printing a decimal
	// rescales it, and "1e300000000" would expand to 300 million digits.
	if exp := value.Exponent(); exp > maxBoundExponent || exp < -maxBoundExponent || value.GreaterThan(MaxPrice) {
		return nil, NewValidationError("%s must be between 0 and %s", name, MaxPrice.StringFixed(2))
	}
	return &value, nil
}

// CacheKey is a canonical rendering of the filter, stable across equivalent
// query strings ("10" and "10.0" map to the same key).
func (f ProductFilter) CacheKey() string {
	bound := func(d *decimal.Decimal) string {
		if d == nil {
			return "-"
		}
		return d.String()
	}
	rating := "-"
	if f.MinRating != nil {
		rating = strconv.FormatFloat(*f.MinRating, 'f', -1, 64)
	}
	return fmt.Sprintf("catalog:from=%s:to=%s:rating=%s:q=%s:sort=%s",
		bound(f.PriceFrom), bound(f.PriceTo), rating, strings.ToLower(f.Search), f.SortBy)
}
