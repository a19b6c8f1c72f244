package models

import (
	"math"
	"sort"
	"strings"
)

const (
	SortByPrice  = "price"
	SortByWeight = "weight"

	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// GemQuery holds the listing parameters. Fields are bound from the query
// string and validated before they reach a repository.
type GemQuery struct {
	Page      int    `query:"page" json:"page" validate:"gte=1"`
	Limit     int    `query:"limit" json:"limit" validate:"gte=1,lte=100"`
	SortBy    string `query:"sort_by" json:"sort_by" validate:"oneof=price weight"`
	SortOrder string `query:"sort_order" json:"sort_order" validate:"oneof=asc desc"`
	Type      string `query:"type" json:"type"`
	Search    string `query:"search" json:"search"`
}

// DefaultGemQuery returns a query with every default applied.
func DefaultGemQuery() GemQuery {
	return GemQuery{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortBy:    SortByPrice,
		SortOrder: SortAsc,
	}
}

// Offset is the number of matching records skipped before the page starts.
// It saturates at math.MaxInt instead of overflowing, so a huge page is
// simply past the end.
func (q GemQuery) Offset() int {
	if q.Page < 1 || q.Limit < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Descending reports whether results are ordered high to low.
func (q GemQuery) Descending() bool {
	return q.SortOrder == SortDesc
}

// SortField returns the column to order by, falling back to price for
// anything outside the allowed set.
func (q GemQuery) SortField() string {
	if q.SortBy == SortByWeight {
		return SortByWeight
	}
	return SortByPrice
}

// Matches is the in-memory form of the listing filter: type must equal
// case-insensitively, search must be a case-insensitive substring of name.
func (q GemQuery) Matches(g Gem) bool {
	if q.Type != "" && strings.ToLower(g.Type) != strings.ToLower(q.Type) {
		return false
	}
	if q.Search != "" && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(q.Search)) {
		return false
	}
	return true
}

func (q GemQuery) sortKey(g Gem) float64 {
	if q.SortField() == SortByWeight {
		return g.Weight
	}
	return g.Price
}

// Apply filters, sorts and slices gems in memory and returns the page and
// the filtered total. Ties keep their input order.
func (q GemQuery) Apply(gems []Gem) ([]Gem, int64) {
	matched := make([]Gem, 0, len(gems))
	for _, g := range gems {
		if q.Matches(g) {
			matched = append(matched, g)
		}
	}

	desc := q.Descending()
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := q.sortKey(matched[i]), q.sortKey(matched[j])
		if desc {
			return a > b
		}
		return a < b
	})

	total := int64(len(matched))
	start := q.Offset()
	if start < 0 || start >= len(matched) {
		return []Gem{}, total
	}
	end := len(matched)
	if q.Limit > 0 && q.Limit < end-start {
		end = start + q.Limit
	}
	return matched[start:end], total
}
