package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripple-social/ripple/internal/comments"
	"github.com/ripple-social/ripple/internal/models"
)

// CommentAPI handles comment endpoints
type CommentAPI struct {
	comments *comments.Service
}

// NewCommentAPI creates a new comment API handler
func NewCommentAPI(service *comments.Service) *CommentAPI {
	return &CommentAPI{comments: service}
}

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentResponse(comment *models.Comment) *commentResponse {
	return &commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// Create handles POST /posts/:post_id/comments
func (a *CommentAPI) Create(c *gin.Context) {
	authorID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	comment, err := a.comments.Create(c.Request.Context(), postID, authorID, req.Content)
	switch {
	case err == comments.ErrEmptyContent:
		respondValidation(c, "Comment content must not be empty")
		return
	case err == comments.ErrPostNotFound:
		respondNotFound(c, msgPostNotFound)
		return
	case err == comments.ErrCommentsDisabled:
		respondForbidden(c, "Comments are disabled for this post")
		return
	case err != nil:
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// List handles GET /posts/:post_id/comments
func (a *CommentAPI) List(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}
	page, limit, offset := pagination(c)

	entries, err := a.comments.ListForPost(c.Request.Context(), postID, limit, offset)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": entries,
		"pagination": gin.H{
			"page":     page,
			"limit":    limit,
			"has_more": len(entries) == limit && len(entries) > 0,
		},
	})
}

// Update handles PUT /comments/:comment_id
func (a *CommentAPI) Update(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		respondValidation(c, "Invalid comment id")
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	comment, err := a.comments.Update(c.Request.Context(), commentID, actorID, req.Content)
	switch {
	case err == comments.ErrEmptyContent:
		respondValidation(c, "Comment content must not be empty")
		return
	case err == comments.ErrCommentsDisabled:
		respondForbidden(c, "Comments are disabled for this post")
		return
	case err != nil:
		respondInternal(c, err)
		return
	case comment == nil:
		respondNotFound(c, msgCommentNotFound)
		return
	}

	c.JSON(http.StatusOK, toCommentResponse(comment))
}

// Delete handles DELETE /comments/:comment_id
func (a *CommentAPI) Delete(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		respondValidation(c, "Invalid comment id")
		return
	}

	deleted, err := a.comments.Delete(c.Request.Context(), commentID, actorID)
	if err != nil {
		respondInternal(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, msgCommentNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
