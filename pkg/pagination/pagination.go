// Package pagination slices ordered listings into fixed-size pages.
package pagination

import (
	"strconv"

	"newsagency.com/newsroom/pkg/dto"
)

// PageSize is the number of rows on every list screen.
const PageSize = 5

// ParsePage reads the 1-based page query value. Anything that is not a
// positive integer yields page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// CalculateTotalPages uses ceiling division and always reports at least one
// page, so an empty listing still has a valid first page.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// NewMeta builds the metadata for the requested page, clamping it into
// [1, total pages].
func NewMeta(requested int, total int64, limit int) dto.PaginationMeta {
	if limit <= 0 {
		limit = PageSize
	}
	totalPages := CalculateTotalPages(total, limit)

	page := requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	meta := dto.PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
	if meta.HasNext {
		meta.NextPage = page + 1
	}
	if meta.HasPrevious {
		meta.PreviousPage = page - 1
	}
	return meta
}
