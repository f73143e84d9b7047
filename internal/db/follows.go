package db

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/ripple-social/ripple/internal/models"
)

// FollowRepository provides follow-graph database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// FollowEntry is the read model for follower/following listings.
type FollowEntry struct {
	UserID     int64     `gorm:"column:user_id" json:"user_id"`
	Username   string    `gorm:"column:username" json:"username"`
	FullName   string    `gorm:"column:full_name" json:"full_name"`
	FollowedAt time.Time `gorm:"column:followed_at" json:"followed_at"`
}

// Insert records a follow edge. The ordered-pair uniqueness constraint
// turns a duplicate into InsertAlreadyExists rather than an error.
func (r *FollowRepository) Insert(ctx context.Context, followerID, followingID int64, now time.Time) (InsertOutcome, error) {
	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   now,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	if res.Error != nil {
		return InsertAlreadyExists, res.Error
	}
	if res.RowsAffected == 0 {
		return InsertAlreadyExists, nil
	}
	return InsertCreated, nil
}

// Delete removes a follow edge. Returns false when no such edge existed.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followingID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListFollowing retrieves the accounts a user follows, newest edge
// first, excluding soft-deleted accounts.
func (r *FollowRepository) ListFollowing(ctx context.Context, userID int64, limit, offset int) ([]*FollowEntry, error) {
	var entries []*FollowEntry
	err := r.db.WithContext(ctx).
		Table("follows").
		Select("users.id AS user_id, users.username, users.full_name, follows.created_at AS followed_at").
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.follower_id = ? AND users.is_deleted = ?", userID, false).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ListFollowers retrieves a user's followers, newest edge first,
// excluding soft-deleted accounts.
func (r *FollowRepository) ListFollowers(ctx context.Context, userID int64, limit, offset int) ([]*FollowEntry, error) {
	var entries []*FollowEntry
	err := r.db.WithContext(ctx).
		Table("follows").
		Select("users.id AS user_id, users.username, users.full_name, follows.created_at AS followed_at").
		Joins("JOIN users ON users.id = follows.follower_id").
		Where("follows.following_id = ? AND users.is_deleted = ?", userID, false).
		Order("follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountFollowing counts the accounts a user follows.
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountFollowers counts a user's followers.
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

// IsFollowing reports whether the edge exists.
func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}
