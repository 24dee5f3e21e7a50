package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		total    int
		pageSize int
		want     int
	}{
		{"first page", 1, 25, 10, 1},
		{"middle page", 2, 25, 10, 2},
		{"last page", 3, 25, 10, 3},
		{"past the end clamps to last", 7, 25, 10, 3},
		{"exact multiple", 3, 30, 10, 3},
		{"past exact multiple", 4, 30, 10, 3},
		{"empty result set", 5, 0, 10, 1},
		{"zero page", 0, 25, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.page, tt.total, tt.pageSize))
		})
	}
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(2, 25, 10)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	// Overrun page returns the last page, not an empty slice
	start, end = PageBounds(9, 25, 10)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(1, 0, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestExtractPaginationParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/project?pageNumber=3&pageSize=5&order=asc", nil)
	params := ExtractPaginationParams(r)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 5, params.PageSize)
	assert.True(t, params.Ascending())

	r = httptest.NewRequest("GET", "/api/project?pageSize=500", nil)
	params = ExtractPaginationParams(r)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 100, params.PageSize)
	assert.False(t, params.Ascending())
}
