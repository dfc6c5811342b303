package listutil

import (
	"net/url"
	"slices"
	"testing"
)

// TestParseParams covers defaults and clamping.
func TestParseParams(t *testing.T) {
	tests := []struct {
		name string
		q    url.Values
		want Params
	}{
		{"defaults", url.Values{}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"valid", url.Values{"page": {"3"}, "per_page": {"25"}, "q": {" pri "}}, Params{Page: 3, PerPage: 25, Search: "pri"}},
		{"unsupported per_page", url.Values{"per_page": {"7"}}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"negative page", url.Values{"page": {"-2"}}, Params{Page: 1, PerPage: DefaultPerPage}},
		{"garbage page", url.Values{"page": {"two"}}, Params{Page: 1, PerPage: DefaultPerPage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseParams(tt.q); got != tt.want {
				t.Errorf("ParseParams = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestNewPageInfo covers clamping and row bounds.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                 string
		page, perPage, total int
		wantPage, wantPages  int
		wantStart, wantEnd   int
	}{
		{"empty", 1, 10, 0, 1, 1, 0, 0},
		{"first page", 1, 10, 25, 1, 3, 1, 10},
		{"last partial page", 3, 10, 25, 3, 3, 21, 25},
		{"page past end clamps", 9, 10, 25, 3, 3, 21, 25},
		{"zero per page uses default", 1, 0, 5, 1, 1, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPageInfo(tt.page, tt.perPage, tt.total)
			if p.Page != tt.wantPage || p.TotalPages != tt.wantPages {
				t.Errorf("page/pages = %d/%d, want %d/%d", p.Page, p.TotalPages, tt.wantPage, tt.wantPages)
			}
			if p.StartRow() != tt.wantStart || p.EndRow() != tt.wantEnd {
				t.Errorf("rows = %d-%d, want %d-%d", p.StartRow(), p.EndRow(), tt.wantStart, tt.wantEnd)
			}
		})
	}
}

// TestPageNumbers shows a five-page window.
func TestPageNumbers(t *testing.T) {
	tests := []struct {
		page, pages int
		want        []int
	}{
		{1, 1, []int{1}},
		{1, 10, []int{1, 2, 3, 4, 5}},
		{5, 10, []int{3, 4, 5, 6, 7}},
		{10, 10, []int{6, 7, 8, 9, 10}},
		{2, 3, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		p := NewPageInfo(tt.page, 10, tt.pages*10)
		if got := p.PageNumbers(); !slices.Equal(got, tt.want) {
			t.Errorf("page %d of %d: got %v, want %v", tt.page, tt.pages, got, tt.want)
		}
	}
}

// TestPaginate slices the requested page.
func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	page := Paginate(items, Params{Page: 2, PerPage: 10})
	if !slices.Equal(page.Items, []int{11, 12}) {
		t.Errorf("Items = %v", page.Items)
	}
	if !page.Info.HasPrev() || page.Info.HasNext() || !page.Info.ShowPagination() {
		t.Errorf("Info = %+v", page.Info)
	}

	empty := Paginate([]int(nil), Params{Page: 4, PerPage: 10})
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Errorf("empty Items = %#v", empty.Items)
	}
	if empty.Info.ShowPagination() {
		t.Error("single page should hide pagination")
	}
}

// TestFilter matches any field case-insensitively.
func TestFilter(t *testing.T) {
	type row struct{ name, role string }
	rows := []row{{"admin", "admin"}, {"Priya", "user"}, {"sam", "user"}}
	fields := func(r row) []string { return []string{r.name, r.role} }

	if got := Filter(rows, "", fields); len(got) != 3 {
		t.Errorf("empty search kept %d", len(got))
	}
	if got := Filter(rows, "PRI", fields); len(got) != 1 || got[0].name != "Priya" {
		t.Errorf("PRI = %v", got)
	}
	if got := Filter(rows, "user", fields); len(got) != 2 {
		t.Errorf("user = %v", got)
	}
	if got := Filter(rows, "zzz", fields); len(got) != 0 {
		t.Errorf("zzz = %v", got)
	}
}
