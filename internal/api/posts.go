package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/models"
	"github.com/ripple-social/ripple/internal/posts"
)

// PostAPI handles post lifecycle endpoints
type PostAPI struct {
	posts *posts.Service
}

// NewPostAPI creates a new post API handler
func NewPostAPI(service *posts.Service) *PostAPI {
	return &PostAPI{posts: service}
}

type createPostRequest struct {
	Content         string     `json:"content"`
	MediaURL        *string    `json:"media_url"`
	CommentsEnabled *bool      `json:"comments_enabled"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
}

type updatePostRequest struct {
	Content         *string `json:"content"`
	MediaURL        *string `json:"media_url"`
	CommentsEnabled *bool   `json:"comments_enabled"`
}

// postResponse is the wire shape of a post owned by the caller.
// Published posts viewed by others go out as EnrichedPost instead.
type postResponse struct {
	ID              int64      `json:"id"`
	AuthorID        int64      `json:"author_id"`
	Content         string     `json:"content"`
	MediaURL        *string    `json:"media_url"`
	CommentsEnabled bool       `json:"comments_enabled"`
	Status          string     `json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toPostResponse(post *models.Post) *postResponse {
	resp := &postResponse{
		ID:              post.ID,
		AuthorID:        post.AuthorID,
		Content:         post.Content,
		CommentsEnabled: post.CommentsEnabled,
		Status:          post.Status,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
	if post.MediaURL.Valid {
		url := post.MediaURL.String
		resp.MediaURL = &url
	}
	if post.ScheduledAt.Valid {
		at := post.ScheduledAt.Time
		resp.ScheduledAt = &at
	}
	return resp
}

// Create handles POST /posts
func (a *PostAPI) Create(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	post, err := a.posts.CreatePost(c.Request.Context(), posts.CreateInput{
		AuthorID:        actorID,
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		CommentsEnabled: req.CommentsEnabled,
		ScheduledAt:     req.ScheduledAt,
	})
	switch {
	case err == posts.ErrEmptyContent:
		respondValidation(c, "Post content must not be empty")
		return
	case err == posts.ErrInvalidSchedule:
		respondValidation(c, "scheduled_at must be in the future")
		return
	case err != nil:
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

// Get handles GET /posts/:post_id
func (a *PostAPI) Get(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}

	post, err := a.posts.GetPostDetail(c.Request.Context(), postID, viewerID(c))
	if err != nil {
		respondInternal(c, err)
		return
	}
	if post == nil {
		respondNotFound(c, msgPostNotFound)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListMine handles GET /posts/me
func (a *PostAPI) ListMine(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	a.listByAuthor(c, actorID)
}

// ListByUser handles GET /users/:user_id/posts
func (a *PostAPI) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		respondValidation(c, "Invalid user id")
		return
	}
	a.listByAuthor(c, userID)
}

func (a *PostAPI) listByAuthor(c *gin.Context, authorID int64) {
	page, limit, offset := pagination(c)

	rows, err := a.posts.ListUserPosts(c.Request.Context(), authorID, viewerID(c), limit, offset)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": rows,
		"pagination": gin.H{
			"page":     page,
			"limit":    limit,
			"has_more": len(rows) == limit && len(rows) > 0,
		},
	})
}

// ListScheduled handles GET /posts/scheduled
func (a *PostAPI) ListScheduled(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}

	rows, err := a.posts.ListScheduledPosts(c.Request.Context(), actorID)
	if err != nil {
		respondInternal(c, err)
		return
	}

	out := make([]*postResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPostResponse(row))
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

// Update handles PUT /posts/:post_id
func (a *PostAPI) Update(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}

	post, err := a.posts.UpdatePost(c.Request.Context(), postID, actorID, db.PostUpdate{
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		CommentsEnabled: req.CommentsEnabled,
	})
	switch {
	case err == posts.ErrEmptyContent:
		respondValidation(c, "Post content must not be empty")
		return
	case err != nil:
		respondInternal(c, err)
		return
	case post == nil:
		respondNotFound(c, msgPostNotFound)
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

// Delete handles DELETE /posts/:post_id
func (a *PostAPI) Delete(c *gin.Context) {
	actorID, ok := requireUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "post_id")
	if !ok {
		respondValidation(c, "Invalid post id")
		return
	}

	deleted, err := a.posts.DeletePost(c.Request.Context(), postID, actorID)
	if err != nil {
		respondInternal(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, msgPostNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
