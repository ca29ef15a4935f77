package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscore/api/internal/app/models/dto"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1
)

// CalculateOffsetLimit converts a 1-based page and a limit into a SQL
// offset/limit pair, clamping out-of-range values.
func CalculateOffsetLimit(page, limit int) (offset int, clamped int) {
	if limit <= 0 || limit > MaxLimit {
		clamped = DefaultLimit
	} else {
		clamped = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	return (page - 1) * clamped, clamped
}

// NewPaginationInfo creates the pagination metadata attached to list
// responses.
func NewPaginationInfo(total int64, page, limit int) dto.PaginationInfo {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}

	return dto.PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ParsePaginationParams extracts and validates pagination parameters from
// the request query string.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return page, limit
}
