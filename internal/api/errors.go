package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ripple-social/ripple/pkg/logging"
)

// Negative lookups and ownership mismatches share one message per
// resource, so callers cannot probe which of the two occurred.
const (
	msgPostNotFound    = "Post not found or unauthorized"
	msgCommentNotFound = "Comment not found or unauthorized"
)

func respondValidation(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, gin.H{"error": message})
}

func respondForbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, gin.H{"error": message})
}

// respondInternal logs the cause and returns a generic body; store
// errors never leak details to clients.
func respondInternal(c *gin.Context, err error) {
	logging.GetLogger().Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
