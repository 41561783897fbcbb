package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"deptevents/internal/domain"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		tab      domain.Tab
		page     int
		pageSize int
	}{
		{"defaults", "/api/events", domain.TabUpcoming, DefaultPage, DefaultPageSize},
		{"past tab", "/api/events?tab=past&page=2&page_size=5", domain.TabPast, 2, 5},
		{"unknown tab", "/api/events?tab=archive", domain.TabUpcoming, DefaultPage, DefaultPageSize},
		{"page size clamped", "/api/events?page_size=500", domain.TabUpcoming, DefaultPage, MaxPageSize},
		{"garbage numbers", "/api/events?page=x&page_size=-3", domain.TabUpcoming, DefaultPage, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseListQuery(httptest.NewRequest("GET", tt.url, nil))
			assert.Equal(t, tt.tab, q.Tab)
			assert.Equal(t, tt.page, q.Page)
			assert.Equal(t, tt.pageSize, q.PageSize)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, meta := Paginate(items, domain.PaginationParams{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 2, Total: 5, TotalPages: 3}, meta)

	page, meta = Paginate(items, domain.PaginationParams{Page: 9, PageSize: 2})
	assert.NotNil(t, page)
	assert.Empty(t, page)
	assert.Equal(t, 3, meta.TotalPages)

	page, meta = Paginate([]int(nil), domain.PaginationParams{Page: 1, PageSize: 20})
	assert.NotNil(t, page)
	assert.Equal(t, 0, meta.TotalPages)
}
