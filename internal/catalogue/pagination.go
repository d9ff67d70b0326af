package catalogue

import (
	"math"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/models"
)

// Offset saturates at math.MaxInt instead of wrapping negative.
func Offset(page, limit int) int {
	if page < 1 || limit < 1 {
		return 0
	}

	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}

	return (page - 1) * limit
}

// Calculate derives the page metadata for a result set of size total.
// Pages past the end are valid and simply have no items.
func Calculate(page, limit int, total int64) models.Pagination {
	if page < 1 {
		page = 1
	}
	if total < 0 {
		total = 0
	}

	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return models.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
