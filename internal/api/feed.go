package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ripple-social/ripple/internal/feed"
)

// FeedAPI handles the aggregated feed endpoint
type FeedAPI struct {
	feed *feed.Service
}

// NewFeedAPI creates a new feed API handler
func NewFeedAPI(service *feed.Service) *FeedAPI {
	return &FeedAPI{feed: service}
}

// Get handles GET /feed
func (a *FeedAPI) Get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	page, limit, offset := pagination(c)

	result, err := a.feed.GetFeed(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": result.Posts,
		"pagination": gin.H{
			"page":     page,
			"limit":    limit,
			"has_more": result.HasMore,
		},
	})
}
