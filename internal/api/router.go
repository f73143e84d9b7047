package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ripple-social/ripple/internal/cache"
	"github.com/ripple-social/ripple/internal/comments"
	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/feed"
	"github.com/ripple-social/ripple/internal/follows"
	"github.com/ripple-social/ripple/internal/likes"
	"github.com/ripple-social/ripple/internal/posts"
	"github.com/ripple-social/ripple/pkg/logging"
)

// Router sets up API routes
type Router struct {
	db     *db.DB
	cache  *cache.Cache
	logger *zap.Logger

	posts    *PostAPI
	feed     *FeedAPI
	likes    *LikeAPI
	comments *CommentAPI
	follows  *FollowAPI
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache) *Router {
	repo := db.NewRepository(database.DB)

	return &Router{
		db:       database,
		cache:    redisCache,
		logger:   logging.WithComponent("api-router"),
		posts:    NewPostAPI(posts.NewService(repo)),
		feed:     NewFeedAPI(feed.NewService(repo)),
		likes:    NewLikeAPI(likes.NewService(repo)),
		comments: NewCommentAPI(comments.NewService(repo)),
		follows:  NewFollowAPI(follows.NewService(repo)),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	authed := engine.Group("/", Identity())

	// Post lifecycle
	authed.POST("/posts", r.posts.Create)
	authed.GET("/posts/me", r.posts.ListMine)
	authed.GET("/posts/scheduled", r.posts.ListScheduled)
	authed.GET("/posts/:post_id", r.posts.Get)
	authed.PUT("/posts/:post_id", r.posts.Update)
	authed.DELETE("/posts/:post_id", r.posts.Delete)
	authed.GET("/users/:user_id/posts", r.posts.ListByUser)

	// Feed
	authed.GET("/feed", r.feed.Get)

	// Engagement
	authed.POST("/posts/:post_id/like", r.likes.Like)
	authed.DELETE("/posts/:post_id/like", r.likes.Unlike)
	authed.GET("/posts/:post_id/likes", r.likes.List)
	authed.POST("/posts/:post_id/comments", r.comments.Create)
	authed.GET("/posts/:post_id/comments", r.comments.List)
	authed.PUT("/comments/:comment_id", r.comments.Update)
	authed.DELETE("/comments/:comment_id", r.comments.Delete)

	// Follow graph
	authed.POST("/users/:user_id/follow", r.follows.Follow)
	authed.DELETE("/users/:user_id/follow", r.follows.Unfollow)
	authed.GET("/users/:user_id/followers", r.follows.Followers)
	authed.GET("/users/:user_id/following", r.follows.Following)
}

// healthHandler reports database, Redis, and scheduler sweep health.
func (r *Router) healthHandler(c *gin.Context) {
	ctx := c.Request.Context()

	status := http.StatusOK
	dbStatus := "OK"
	if err := r.db.Health(ctx); err != nil {
		dbStatus = "FAIL"
		status = http.StatusServiceUnavailable
	}

	redisStatus := "OK"
	if err := r.cache.Health(ctx); err == cache.ErrCacheDisabled {
		redisStatus = "disabled"
	} else if err != nil {
		redisStatus = "FAIL"
	}

	body := gin.H{
		"status":  "OK",
		"service": "ripple",
		"checks": gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	}
	if last, err := r.cache.LastSweep(ctx); err == nil && !last.IsZero() {
		body["last_sweep_age_seconds"] = int64(time.Since(last).Seconds())
	}
	if status != http.StatusOK {
		body["status"] = "FAIL"
	}

	c.JSON(status, body)
}
