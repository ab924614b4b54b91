// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"gyh/internal/core/id"
	"gyh/internal/domain"
)

// --- List Request ---

// ListRequest contains common list query parameters.
type ListRequest struct {
	Search  string `form:"search"`
	OrderBy string `form:"orderBy"`
	Limit   int    `form:"limit"`
	Offset  int    `form:"offset"`
}

// ToFilter converts the request to a domain list filter.
func (r *ListRequest) ToFilter() domain.ListFilter {
	f := domain.ListFilter{
		Search:  r.Search,
		OrderBy: r.OrderBy,
		Limit:   r.Limit,
		Offset:  r.Offset,
	}
	f.Normalize()
	return f
}

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse builds a ListResponse from a domain list result.
func NewListResponse[T any](r domain.ListResult[T]) ListResponse {
	items := r.Items
	if items == nil {
		items = []T{}
	}
	return ListResponse{
		Items:      items,
		TotalCount: r.TotalCount,
		Limit:      r.Limit,
		Offset:     r.Offset,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
