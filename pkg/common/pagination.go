package common

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is used when no limit parameter is supplied
	DefaultPageSize = 10
	// MaxPageSize bounds the limit parameter; larger values are clamped
	MaxPageSize = 100
)

// PaginationParams represents pagination parameters. Pages are 1-indexed.
type PaginationParams struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultPaginationParams returns default pagination parameters
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Page:  1,
		Limit: DefaultPageSize,
	}
}

// ExtractPaginationParams extracts page and limit from request query
// parameters. Out-of-range values are clamped, not rejected.
func ExtractPaginationParams(r *http.Request) PaginationParams {
	params := DefaultPaginationParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.Limit = l
		}
	}

	return params.Clamp()
}

// Clamp normalizes the parameters into their valid ranges
func (p PaginationParams) Clamp() PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset calculates the number of records to skip
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationInfo contains pagination details for a response
type PaginationInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// BuildPaginationInfo builds pagination metadata for a response
func BuildPaginationInfo(params PaginationParams, total int) PaginationInfo {
	return PaginationInfo{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Pages: CalculateTotalPages(total, params.Limit),
	}
}

// CalculateTotalPages calculates total number of pages
func CalculateTotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit > 0 {
		pages++
	}
	return pages
}
