// internal/discovery/paginate/paginate.go

// Package paginate slices result sets into pages with navigation metadata.
package paginate

import (
	"fmt"

	cerrors "discovery-service/internal/common/errors"
)

// Result is one page of items plus pagination metadata. Derived per request,
// never stored.
type Result[T any] struct {
	Data       []T  `json:"data"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// Paginate slices items into the page addressed by limit and offset.
//
// limit must be positive; a non-positive limit is an INVALID_ARGUMENT error.
// A negative offset clamps to 0 so that sloppy callers still get the first
// page instead of a failure.
func Paginate[T any](items []T, limit, offset int) (Result[T], error) {
	if limit <= 0 {
		return Result[T]{}, cerrors.NewInvalidArgumentError(fmt.Sprintf("limit must be positive, got %d", limit))
	}
	if offset < 0 {
		offset = 0
	}

	total := len(items)

	start := offset
	if start > total {
		start = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	totalPages := (total + limit - 1) / limit

	return Result[T]{
		Data:       items[start:end],
		Page:       offset/limit + 1,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    offset+limit < total,
		HasPrev:    offset > 0,
	}, nil
}
