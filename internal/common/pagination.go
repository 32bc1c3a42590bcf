package common

import (
	"net/http"
	"strconv"

	"socialnet/api"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

// ParsePagination reads page/limit query params. Absent params fall back to
// the defaults; out-of-range values are validation errors, not clamped.
func ParsePagination(r *http.Request) (page, limit int, err error) {
	page, limit = DefaultPage, DefaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			return 0, 0, NewValidationError(FieldError{Field: "page", Message: "Page must be a positive integer"})
		}
		page = n
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 || n > MaxLimit {
			return 0, 0, NewValidationError(FieldError{Field: "limit", Message: "Limit must be between 1 and 50"})
		}
		limit = n
	}

	return page, limit, nil
}

// NewPagination derives the page metadata block: totalPages = ceil(total/limit),
// hasNext iff page < totalPages, hasPrev iff page > 1.
func NewPagination(page, limit int, total int64) api.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return api.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Offset converts a page to the skip value: (page-1)*limit.
func Offset(page, limit int) int {
	return (page - 1) * limit
}
