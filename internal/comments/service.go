package comments

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/models"
	"github.com/ripple-social/ripple/pkg/logging"
)

var (
	// ErrPostNotFound is returned when the target post is missing,
	// deleted, or not yet published
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentsDisabled is returned when the post's author has turned
	// comments off. Existing comments stay visible; only new ones are
	// blocked.
	ErrCommentsDisabled = errors.New("comments disabled for this post")

	// ErrEmptyContent is returned when a comment has no content
	ErrEmptyContent = errors.New("comment content must not be empty")
)

// Service handles comment creation and author-only edits.
type Service struct {
	comments *db.CommentRepository
	posts    *db.PostRepository
	logger   *zap.Logger

	now func() time.Time
}

// NewService creates a new comment service
func NewService(repo *db.Repository) *Service {
	return &Service{
		comments: db.NewCommentRepository(repo),
		posts:    db.NewPostRepository(repo),
		logger:   logging.WithComponent("comments"),
		now:      time.Now,
	}
}

// Create adds a comment to a published post with comments enabled.
func (s *Service) Create(ctx context.Context, postID, authorID int64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	post, err := s.posts.GetPublished(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.CommentsEnabled {
		return nil, ErrCommentsDisabled
	}

	now := s.now().UTC()
	comment := &models.Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("post_id", postID),
		zap.Int64("author_id", authorID))

	return comment, nil
}

// ListForPost retrieves the visible comments on a post, newest first.
func (s *Service) ListForPost(ctx context.Context, postID int64, limit, offset int) ([]*db.CommentEntry, error) {
	entries, err := s.comments.ListForPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*db.CommentEntry{}
	}
	return entries, nil
}

// Update edits a comment's content. Returns nil for missing comments
// and ownership mismatches alike; ErrCommentsDisabled when the parent
// post no longer accepts comments.
func (s *Service) Update(ctx context.Context, commentID, actorID int64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	existing, err := s.comments.GetVisible(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	post, err := s.posts.GetByID(ctx, existing.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.IsDeleted || !post.CommentsEnabled {
		return nil, ErrCommentsDisabled
	}

	return s.comments.UpdateOwned(ctx, commentID, actorID, content, s.now().UTC())
}

// Delete soft-deletes a comment owned by the actor. Returns false for
// missing comments and ownership mismatches alike.
func (s *Service) Delete(ctx context.Context, commentID, actorID int64) (bool, error) {
	ok, err := s.comments.SoftDelete(ctx, commentID, actorID, s.now().UTC())
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("Comment deleted",
			zap.Int64("comment_id", commentID),
			zap.Int64("author_id", actorID))
	}
	return ok, nil
}
