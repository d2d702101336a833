package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/class-union/union-server/internal/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseContentFilters reads the shared list query params. Bad values fall
// back to defaults rather than failing the request.
func parseContentFilters(c *gin.Context) repositories.ContentFilters {
	filters := repositories.ContentFilters{
		Limit:     defaultPageSize,
		SortOrder: c.DefaultQuery("sort", "desc"),
	}

	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		if limit > maxPageSize {
			limit = maxPageSize
		}
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filters.Offset = offset
	}
	if author := c.Query("author"); author != "" {
		filters.AuthorID = &author
	}

	return filters
}
