package common

import (
	"net/http"
	"strconv"
)

// PaginationParams represents pagination and ordering parameters
type PaginationParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Order    string `json:"order,omitempty"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:     1,
		PageSize: 10,
		Order:    "desc",
	}
}

// Ascending reports whether results should be returned oldest first
func (p PaginationParams) Ascending() bool {
	return p.Order == "asc"
}

// ExtractPaginationParams extracts pagination parameters from request
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if page := r.URL.Query().Get("pageNumber"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if pageSize := r.URL.Query().Get("pageSize"); pageSize != "" {
		if ps, err := strconv.Atoi(pageSize); err == nil && ps > 0 {
			if ps > 100 {
				ps = 100 // Max page size
			}
			params.PageSize = ps
		}
	}

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.Order = order
	}

	return params
}

// CalculateTotalPages calculates total number of pages
func CalculateTotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// ClampPage clamps a requested page number into [1, ceil(total/pageSize)].
// Requesting a page past the end yields the last page, never an empty overrun.
func ClampPage(page, total, pageSize int) int {
	totalPages := CalculateTotalPages(total, pageSize)
	if totalPages == 0 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageBounds returns the slice bounds [start, end) of the clamped page over a
// result set of the given size.
func PageBounds(page, total, pageSize int) (int, int) {
	if total == 0 || pageSize <= 0 {
		return 0, 0
	}
	page = ClampPage(page, total, pageSize)
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// PaginatedResult represents one page of a listing plus the total count
type PaginatedResult struct {
	TotalCount int         `json:"totalCount"`
	Items      interface{} `json:"items"`
}
