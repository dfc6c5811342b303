// Package listutil pages and filters in-memory lists for the admin tables.
package listutil

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// DefaultPerPage is the page size used when none or an unsupported one is requested.
const DefaultPerPage = 10

// PerPageOptions are the page sizes offered in the UI.
var PerPageOptions = []int{10, 25, 50}

// Params are the list parameters read from a query string.
type Params struct {
	Page    int    // 1-indexed
	PerPage int    // one of PerPageOptions
	Search  string // case-insensitive substring, trimmed
}

// ParseParams reads page, per_page and q.
// POST: Page >= 1 and PerPage is one of PerPageOptions
func ParseParams(q url.Values) Params {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !slices.Contains(PerPageOptions, perPage) {
		perPage = DefaultPerPage
	}
	return Params{Page: page, PerPage: perPage, Search: strings.TrimSpace(q.Get("q"))}
}

// PageInfo describes one page of a list.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPageInfo clamps page into [1, TotalPages]. An empty list has one empty page.
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := max(1, (total+perPage-1)/perPage)
	return PageInfo{
		Page:       min(max(page, 1), totalPages),
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset is the index of the first item on the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// StartRow is the 1-indexed first row shown, 0 for an empty list.
func (p PageInfo) StartRow() int {
	if p.Total == 0 {
		return 0
	}
	return p.Offset() + 1
}

// EndRow is the 1-indexed last row shown.
func (p PageInfo) EndRow() int {
	return min(p.Offset()+p.PerPage, p.Total)
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// ShowPagination reports whether the list spans more than one page.
func (p PageInfo) ShowPagination() bool {
	return p.TotalPages > 1
}

// PageNumbers returns up to five page numbers around the current page.
func (p PageInfo) PageNumbers() []int {
	const window = 5
	start := max(1, p.Page-window/2)
	end := min(p.TotalPages, start+window-1)
	start = max(1, end-window+1)
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// Page is one page of items plus its metadata.
type Page[T any] struct {
	Items []T
	Info  PageInfo
}

// Paginate slices items for params.Page.
// POST: Items is never nil
func Paginate[T any](items []T, params Params) Page[T] {
	info := NewPageInfo(params.Page, params.PerPage, len(items))
	start := min(info.Offset(), len(items))
	end := min(start+info.PerPage, len(items))
	page := make([]T, end-start)
	copy(page, items[start:end])
	return Page[T]{Items: page, Info: info}
}

// Filter keeps items for which any of the fields returned by text contains search,
// ignoring case. An empty search keeps everything.
func Filter[T any](items []T, search string, text func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return items
	}
	var out []T
	for _, it := range items {
		for _, field := range text(it) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
