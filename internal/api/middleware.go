package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// identityHeader carries the authenticated user id, injected by the
// upstream gateway. This service trusts it; authentication itself
// happens before requests reach us.
const identityHeader = "X-User-ID"

const contextUserKey = "user_id"

// Identity extracts the caller's user id from the request headers and
// stores it in the request context. Requests without the header pass
// through anonymously; handlers that need an actor use requireUser.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(identityHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				c.Set(contextUserKey, id)
			}
		}
		c.Next()
	}
}

// currentUser returns the caller's id when the identity header was
// present and valid.
func currentUser(c *gin.Context) (int64, bool) {
	val, ok := c.Get(contextUserKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}

// requireUser aborts with 401 when no identity was provided.
func requireUser(c *gin.Context) (int64, bool) {
	id, ok := currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return 0, false
	}
	return id, true
}

// viewerID returns the caller's id as an optional pointer for
// endpoints that work anonymously but personalize when possible.
func viewerID(c *gin.Context) *int64 {
	if id, ok := currentUser(c); ok {
		return &id
	}
	return nil
}
