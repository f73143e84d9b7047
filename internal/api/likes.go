package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ripple-social/ripple/internal/likes"
)

// LikeAPI handles like endpoints
type LikeAPI struct {
	likes *likes.Service
}

// NewLikeAPI creates a new like API handler
func NewLikeAPI(service *likes.Service) *LikeAPI {
	return &LikeAPI{likes: service}
}

// Like handles POST /posts/:post_id/like
func (a *LikeAPI) Like(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}

	like, err := a.likes.Like(c.Request.Context(), postID, userID)
	switch {
	case err == likes.ErrPostNotFound:
		respondNotFound(c, msgPostNotFound)
		return
	case err == likes.ErrAlreadyLiked:
		respondConflict(c, "Post already liked")
		return
	case err != nil:
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"post_id":    like.PostID,
		"user_id":    like.UserID,
		"created_at": like.CreatedAt,
	})
}

// Unlike handles DELETE /posts/:post_id/like
func (a *LikeAPI) Unlike(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}

	removed, err := a.likes.Unlike(c.Request.Context(), postID, userID)
	if err != nil {
		respondInternal(c, err)
		return
	}
	if !removed {
		respondNotFound(c, "Like not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

// List handles GET /posts/:post_id/likes
func (a *LikeAPI) List(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}
	_, limit, offset := pagination(c)

	entries, count, err := a.likes.ListForPost(c.Request.Context(), postID, limit, offset)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"likes": entries,
		"count": count,
	})
}
