package follows

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
	// ErrSelfFollow is returned when a user tries to follow themselves
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing is returned when the follow edge already exists
	ErrAlreadyFollowing = errors.New("already following")
)

// Service handles the follow graph.
type Service struct {
	follows *db.FollowRepository
	logger  *zap.Logger

	now func() time.Time
}

// NewService creates a new follow service
func NewService(repo *db.Repository) *Service {
	return &Service{
		follows: db.NewFollowRepository(repo),
		logger:  logging.WithComponent("follows"),
		now:     time.Now,
	}
}

// Follow records a follow edge. Self-follows are rejected; duplicates
// return ErrAlreadyFollowing via the ordered-pair uniqueness
// constraint.
func (s *Service) Follow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	if followerID == followingID {
		return nil, ErrSelfFollow
	}

	now := s.now().UTC()
	outcome, err := s.follows.Insert(ctx, followerID, followingID, now)
	if err != nil {
		return nil, err
	}
	if outcome == db.InsertAlreadyExists {
		return nil, ErrAlreadyFollowing
	}

	s.logger.Info("Follow created",
		zap.Int64("follower_id", followerID),
		zap.Int64("following_id", followingID))

	return &models.Follow{FollowerID: followerID, FollowingID: followingID, CreatedAt: now}, nil
}

// Unfollow removes a follow edge. Returns false when no edge existed.
func (s *Service) Unfollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	ok, err := s.follows.Delete(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	if ok {
		s.logger.Info("Follow removed",
			zap.Int64("follower_id", followerID),
			zap.Int64("following_id", followingID))
	}
	return ok, nil
}

// Following lists the accounts a user follows, with the total count.
func (s *Service) Following(ctx context.Context, userID int64, limit, offset int) ([]*db.FollowEntry, int64, error) {
	entries, err := s.follows.ListFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.follows.CountFollowing(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if entries == nil {
		entries = []*db.FollowEntry{}
	}
	return entries, count, nil
}

// Followers lists a user's followers, with the total count.
func (s *Service) Followers(ctx context.Context, userID int64, limit, offset int) ([]*db.FollowEntry, int64, error) {
	entries, err := s.follows.ListFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.follows.CountFollowers(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	if entries == nil {
		entries = []*db.FollowEntry{}
	}
	return entries, count, nil
}

// IsFollowing reports whether follower follows following.
func (s *Service) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	return s.follows.IsFollowing(ctx, followerID, followingID)
}
