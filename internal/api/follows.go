package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ripple-social/ripple/internal/follows"
)

// FollowAPI handles follow graph endpoints
type FollowAPI struct {
	follows *follows.Service
}

// NewFollowAPI creates a new follow API handler
func NewFollowAPI(service *follows.Service) *FollowAPI {
	return &FollowAPI{follows: service}
}

// Follow handles POST /users/:user_id/follow
func (a *FollowAPI) Follow(c *gin.Context) {
	followerID, ok := requireUser(c)
	if !ok {
		return
	}
	followingID, ok := pathID(c, "user_id")
	if !ok {
		respondValidation(c, "Invalid user id")
		return
	}

	follow, err := a.follows.Follow(c.Request.Context(), followerID, followingID)
	switch {
	case err == follows.ErrSelfFollow:
		respondValidation(c, "Cannot follow yourself")
		return
	case err == follows.ErrAlreadyFollowing:
		respondConflict(c, "Already following this user")
		return
	case err != nil:
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"follower_id":  follow.FollowerID,
		"following_id": follow.FollowingID,
		"created_at":   follow.CreatedAt,
	})
}

// Unfollow handles DELETE /users/:user_id/follow
func (a *FollowAPI) Unfollow(c *gin.Context) {
	followerID, ok := requireUser(c)
	if !ok {
		return
	}
	followingID, ok := pathID(c, "user_id")
	if !ok {
		respondValidation(c, "Invalid user id")
		return
	}

	removed, err := a.follows.Unfollow(c.Request.Context(), followerID, followingID)
	if err != nil {
		respondInternal(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "Follow not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// Followers handles GET /users/:user_id/followers
func (a *FollowAPI) Followers(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		respondValidation(c, "Invalid user id")
		return
	}
	_, limit, offset := pagination(c)

	entries, count, err := a.follows.Followers(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": entries,
		"count":     count,
	})
}

// Following handles GET /users/:user_id/following
func (a *FollowAPI) Following(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		respondValidation(c, "Invalid user id")
		return
	}
	_, limit, offset := pagination(c)

	entries, count, err := a.follows.Following(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following": entries,
		"count":     count,
	})
}
