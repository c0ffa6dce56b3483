package shared

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	// pageWindowSize is the maximum number of page buttons a list screen shows.
	pageWindowSize = 5
)

// ListQuery is the state every list screen round-trips through the query
// string: page/limit, one sortable column with a direction, and a set of
// entity-specific filters.
type ListQuery struct {
	Page      int
	Limit     int
	SortField string
	SortDir   string
	Filters   url.Values
}

// ParseListQuery reads `page`, `limit`, `field` and `sort` plus the named
// filter keys from the request. Filter values of "" and the literal "0" are
// treated as unset and never forwarded to the store layer.
func ParseListQuery(r *http.Request, defaultLimit, maxLimit int, filterKeys ...string) ListQuery {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	dir := strings.ToLower(strings.TrimSpace(q.Get("sort")))
	if dir != SortAsc && dir != SortDesc {
		dir = SortAsc
	}

	filters := url.Values{}
	for _, key := range filterKeys {
		value := strings.TrimSpace(q.Get(key))
		if FilterUnset(value) {
			continue
		}
		filters.Set(key, value)
	}

	return ListQuery{
		Page:      page,
		Limit:     limit,
		SortField: strings.TrimSpace(q.Get("field")),
		SortDir:   dir,
		Filters:   filters,
	}
}

// FilterUnset reports whether a raw filter value counts as "not set".
// The empty string and the literal "0" are both unset; this mirrors the
// dashboard convention that a zero-valued dropdown means "all".
func FilterUnset(value string) bool {
	return value == "" || value == "0"
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// OrderBy resolves the requested sort column against an allow-list of
// queryable columns. Unknown or empty fields fall back to fallback.
func (q ListQuery) OrderBy(allowed map[string]string, fallback string) string {
	column, ok := allowed[q.SortField]
	if !ok {
		column = fallback
	}
	dir := "ASC"
	if q.SortDir == SortDesc {
		dir = "DESC"
	}
	return column + " " + dir
}

// TotalPages converts a row count into a page count for the current limit.
func (q ListQuery) TotalPages(total int) int {
	if total <= 0 || q.Limit <= 0 {
		return 0
	}
	return (total + q.Limit - 1) / q.Limit
}

// PageWindow returns the page buttons to display: at most five, centered on
// the current page, clamped to [1, totalPages] without centering past either
// edge.
func PageWindow(page, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	size := pageWindowSize
	if totalPages < size {
		size = totalPages
	}

	start := page - size/2
	if start < 1 {
		start = 1
	}
	if start+size-1 > totalPages {
		start = totalPages - size + 1
	}

	window := make([]int, size)
	for i := range window {
		window[i] = start + i
	}
	return window
}
