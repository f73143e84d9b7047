package likes

import (
	"context"
	"errors"
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

	// ErrAlreadyLiked is returned when the (post, user) like already
	// exists
	ErrAlreadyLiked = errors.New("post already liked")
)

// Service handles like and unlike operations.
type Service struct {
	likes  *db.LikeRepository
	posts  *db.PostRepository
	logger *zap.Logger

	now func() time.Time
}

// NewService creates a new like service
func NewService(repo *db.Repository) *Service {
	return &Service{
		likes:  db.NewLikeRepository(repo),
		posts:  db.NewPostRepository(repo),
		logger: logging.WithComponent("likes"),
		now:    time.Now,
	}
}

// Like records a like on a published post. The uniqueness constraint on
// (post_id, user_id) makes the insert at-most-once; a duplicate returns
// ErrAlreadyLiked, not a new row.
func (s *Service) Like(ctx context.Context, postID, userID int64) (*models.Like, error) {
	post, err := s.posts.GetPublished(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	now := s.now().UTC()
	outcome, err := s.likes.Insert(ctx, postID, userID, now)
	if err != nil {
		return nil, err
	}
	if outcome == db.InsertAlreadyExists {
		return nil, ErrAlreadyLiked
	}

	s.logger.Info("Post liked",
		zap.Int64("post_id", postID),
		zap.Int64("user_id", userID))

	return &models.Like{PostID: postID, UserID: userID, CreatedAt: now}, nil
}

// Unlike removes a like. Returns false when no such like existed.
func (s *Service) Unlike(ctx context.Context, postID, userID int64) (bool, error) {
	ok, err := s.likes.Delete(ctx, postID, userID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("Post unliked",
			zap.Int64("post_id", postID),
			zap.Int64("user_id", userID))
	}
	return ok, nil
}

// ListForPost retrieves the likes on a post with liker display fields,
// plus the current count.
func (s *Service) ListForPost(ctx context.Context, postID int64, limit, offset int) ([]*db.LikeEntry, int64, error) {
	entries, err := s.likes.ListForPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.likes.CountForPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	if entries == nil {
		entries = []*db.LikeEntry{}
	}
	return entries, count, nil
}
