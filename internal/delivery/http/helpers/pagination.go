package helpers

import (
	"net/http"
	"strconv"

	"deptevents/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationMeta is returned next to every paged event list.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ListQuery is the parsed query string of GET /api/events.
type ListQuery struct {
	Tab domain.Tab
	domain.PaginationParams
}

// ParseListQuery reads tab, page and page_size. Unknown tabs mean upcoming;
// unparsable or out-of-range numbers fall back to the defaults.
func ParseListQuery(r *http.Request) ListQuery {
	q := r.URL.Query()
	pageSize := positiveInt(q.Get("page_size"), DefaultPageSize)
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return ListQuery{
		Tab: domain.ParseTab(q.Get("tab")),
		PaginationParams: domain.PaginationParams{
			Page:     positiveInt(q.Get("page"), DefaultPage),
			PageSize: pageSize,
		},
	}
}

func positiveInt(s string, fallback int) int {
	if v, err := strconv.Atoi(s); err == nil && v >= 1 {
		return v
	}
	return fallback
}

// Paginate cuts one page out of items. The page is never nil so it
// encodes as [] rather than null.
func Paginate[T any](items []T, p domain.PaginationParams) ([]T, PaginationMeta) {
	start, end := p.Window(len(items))
	page := make([]T, 0, end-start)
	page = append(page, items[start:end]...)

	meta := PaginationMeta{Page: p.Page, PageSize: p.PageSize, Total: len(items)}
	if p.PageSize > 0 {
		meta.TotalPages = (len(items) + p.PageSize - 1) / p.PageSize
	}
	return page, meta
}
