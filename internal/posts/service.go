package posts

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/models"
	"github.com/ripple-social/ripple/pkg/logging"
)

// Service owns the post lifecycle: creation with deterministic status,
// author-only mutation, and the single scheduled-to-published
// transition path shared by the poller.
type Service struct {
	posts      *db.PostRepository
	engagement *db.EngagementRepository
	logger     *zap.Logger

	// now is the clock; tests override it
	now func() time.Time
}

// NewService creates a new post lifecycle service
func NewService(repo *db.Repository) *Service {
	return &Service{
		posts:      db.NewPostRepository(repo),
		engagement: db.NewEngagementRepository(repo),
		logger:     logging.WithComponent("posts"),
		now:        time.Now,
	}
}

// CreateInput carries the fields for a new post.
type CreateInput struct {
	AuthorID        int64
	Content         string
	MediaURL        *string
	CommentsEnabled *bool
	ScheduledAt     *time.Time
}

// CreatePost validates the input and writes one post row. Status is
// computed at creation time: a scheduled_at strictly in the future
// yields a scheduled post, absence yields an immediately published one.
// A scheduled_at at or before now is rejected before any write.
func (s *Service) CreatePost(ctx context.Context, in CreateInput) (*models.Post, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, ErrEmptyContent
	}

	now := s.now().UTC()
	status := models.PostStatusPublished
	var scheduledAt sql.NullTime
	if in.ScheduledAt != nil {
		if !in.ScheduledAt.After(now) {
			return nil, ErrInvalidSchedule
		}
		status = models.PostStatusScheduled
		scheduledAt = sql.NullTime{Time: in.ScheduledAt.UTC(), Valid: true}
	}

	commentsEnabled := true
	if in.CommentsEnabled != nil {
		commentsEnabled = *in.CommentsEnabled
	}

	var mediaURL sql.NullString
	if in.MediaURL != nil {
		mediaURL = sql.NullString{String: *in.MediaURL, Valid: true}
	}

	post := &models.Post{
		AuthorID:        in.AuthorID,
		Content:         in.Content,
		MediaURL:        mediaURL,
		CommentsEnabled: commentsEnabled,
		Status:          status,
		ScheduledAt:     scheduledAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("Post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", in.AuthorID),
		zap.String("status", status))

	return post, nil
}

// DeletePost soft-deletes a post owned by the actor. A missing post and
// an ownership mismatch both return false; callers cannot tell which.
func (s *Service) DeletePost(ctx context.Context, postID, actorID int64) (bool, error) {
	ok, err := s.posts.SoftDelete(ctx, postID, actorID, s.now().UTC())
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("Post deleted",
			zap.Int64("post_id", postID),
			zap.Int64("author_id", actorID))
	}
	return ok, nil
}

// UpdatePost edits the author-editable fields. Status and scheduled_at
// are never mutated here. Returns nil for missing posts and ownership
// mismatches alike.
func (s *Service) UpdatePost(ctx context.Context, postID, actorID int64, upd db.PostUpdate) (*models.Post, error) {
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		return nil, ErrEmptyContent
	}
	post, err := s.posts.UpdateOwned(ctx, postID, actorID, upd, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if post != nil {
		s.logger.Info("Post updated",
			zap.Int64("post_id", postID),
			zap.Int64("author_id", actorID))
	}
	return post, nil
}

// GetPostDetail retrieves a published post enriched with engagement.
// Returns nil for missing, deleted, or still-scheduled posts.
func (s *Service) GetPostDetail(ctx context.Context, postID int64, viewerID *int64) (*models.EnrichedPost, error) {
	post, err := s.posts.GetPublishedDetail(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}

	eng, err := s.engagement.ForPost(ctx, post.ID, viewerID)
	if err != nil {
		return nil, err
	}
	post.LikesCount = eng.LikesCount
	post.CommentsCount = eng.CommentsCount
	post.LikedByViewer = eng.LikedByViewer
	return post, nil
}

// ListUserPosts retrieves an author's published posts, enriched,
// newest first.
func (s *Service) ListUserPosts(ctx context.Context, authorID int64, viewerID *int64, limit, offset int) ([]*models.EnrichedPost, error) {
	rows, err := s.posts.ListPublishedByAuthor(ctx, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, rows, viewerID); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListScheduledPosts retrieves the actor's own pending scheduled posts.
func (s *Service) ListScheduledPosts(ctx context.Context, actorID int64) ([]*models.Post, error) {
	return s.posts.ListScheduledByAuthor(ctx, actorID)
}

// ListDue retrieves scheduled posts whose publication time has elapsed.
// Used by the poller to select sweep candidates.
func (s *Service) ListDue(ctx context.Context) ([]*models.Post, error) {
	return s.posts.ListDueScheduled(ctx, s.now().UTC())
}

// PublishDue is the single transition path from scheduled to published.
// Idempotent: a post already published, or deleted since selection,
// yields (false, nil).
func (s *Service) PublishDue(ctx context.Context, postID int64) (bool, error) {
	return s.posts.MarkPublished(ctx, postID, s.now().UTC())
}

func (s *Service) enrich(ctx context.Context, rows []*models.EnrichedPost, viewerID *int64) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	engs, err := s.engagement.ForPosts(ctx, ids, viewerID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		e := engs[row.ID]
		row.LikesCount = e.LikesCount
		row.CommentsCount = e.CommentsCount
		row.LikedByViewer = e.LikedByViewer
	}
	return nil
}
