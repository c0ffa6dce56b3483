package shared

import (
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestPageWindowSmallTotals(t *testing.T) {
	for totalPages := 1; totalPages <= 5; totalPages++ {
		for page := 1; page <= totalPages; page++ {
			window := PageWindow(page, totalPages)
			if len(window) != totalPages {
				t.Fatalf("total %d page %d: expected %d buttons, got %v", totalPages, page, totalPages, window)
			}
			if window[0] != 1 || window[len(window)-1] != totalPages {
				t.Fatalf("total %d page %d: expected full range, got %v", totalPages, page, window)
			}
		}
	}
}

func TestPageWindowCentering(t *testing.T) {
	tests := []struct {
		page, totalPages int
		want             []int
	}{
		{1, 10, []int{1, 2, 3, 4, 5}},
		{2, 10, []int{1, 2, 3, 4, 5}},
		{3, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{9, 10, []int{6, 7, 8, 9, 10}},
		{10, 10, []int{6, 7, 8, 9, 10}},
	}
	for _, tc := range tests {
		got := PageWindow(tc.page, tc.totalPages)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("PageWindow(%d, %d) = %v, want %v", tc.page, tc.totalPages, got, tc.want)
		}
	}
}

func TestPageWindowAlwaysContainsCurrentPage(t *testing.T) {
	for totalPages := 6; totalPages <= 40; totalPages++ {
		for page := 1; page <= totalPages; page++ {
			window := PageWindow(page, totalPages)
			if len(window) != 5 {
				t.Fatalf("total %d page %d: expected 5 buttons, got %v", totalPages, page, window)
			}
			found := false
			for _, p := range window {
				if p == page {
					found = true
				}
				if p < 1 || p > totalPages {
					t.Fatalf("total %d page %d: button %d out of range", totalPages, page, p)
				}
			}
			if !found {
				t.Fatalf("total %d page %d: window %v missing current page", totalPages, page, window)
			}
		}
	}
}

func TestPageWindowEmpty(t *testing.T) {
	if window := PageWindow(1, 0); window != nil {
		t.Fatalf("expected nil window for zero pages, got %v", window)
	}
}

func TestParseListQueryStripsUnsetFilters(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units?page=2&limit=25&field=name&sort=desc&unit_id=0&shift=&operator=budi", nil)
	q := ParseListQuery(r, 10, 100, "unit_id", "shift", "operator")

	if q.Page != 2 || q.Limit != 25 {
		t.Fatalf("unexpected page/limit: %+v", q)
	}
	if q.SortField != "name" || q.SortDir != SortDesc {
		t.Fatalf("unexpected sort: %+v", q)
	}
	if q.Filters.Has("unit_id") {
		t.Error("unit_id=0 should be stripped")
	}
	if q.Filters.Has("shift") {
		t.Error("empty shift should be stripped")
	}
	if got := q.Filters.Get("operator"); got != "budi" {
		t.Errorf("operator filter = %q, want budi", got)
	}
}

func TestParseListQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/units?page=-1&limit=9999&sort=sideways", nil)
	q := ParseListQuery(r, 10, 100)

	if q.Page != 1 {
		t.Errorf("page = %d, want 1", q.Page)
	}
	if q.Limit != 100 {
		t.Errorf("limit = %d, want clamped 100", q.Limit)
	}
	if q.SortDir != SortAsc {
		t.Errorf("sort dir = %q, want asc", q.SortDir)
	}
	if q.Offset() != 0 {
		t.Errorf("offset = %d, want 0", q.Offset())
	}
}

func TestOrderByAllowList(t *testing.T) {
	allowed := map[string]string{"name": "u.name", "code": "u.code"}
	q := ListQuery{SortField: "name", SortDir: SortDesc}
	if got := q.OrderBy(allowed, "u.created_at"); got != "u.name DESC" {
		t.Errorf("OrderBy = %q", got)
	}
	q = ListQuery{SortField: "drop table", SortDir: SortAsc}
	if got := q.OrderBy(allowed, "u.created_at"); got != "u.created_at ASC" {
		t.Errorf("OrderBy fallback = %q", got)
	}
}

func TestTotalPages(t *testing.T) {
	q := ListQuery{Limit: 10}
	tests := []struct{ total, want int }{{0, 0}, {1, 1}, {10, 1}, {11, 2}, {100, 10}}
	for _, tc := range tests {
		if got := q.TotalPages(tc.total); got != tc.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tc.total, got, tc.want)
		}
	}
}
