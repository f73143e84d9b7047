package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination converts ?page and ?limit query params into an offset
// window. Pages are 1-based; out-of-range values fall back to defaults.
func pagination(c *gin.Context) (page, limit, offset int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit = queryInt(c, "limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = (page - 1) * limit
	return page, limit, offset
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return val
}

// pathID parses a numeric path parameter, returning false for
// non-numeric or non-positive values.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
