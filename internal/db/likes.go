package db

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/ripple-social/ripple/internal/models"
)

// LikeRepository provides like-related database operations
type LikeRepository struct {
	*Repository
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(repo *Repository) *LikeRepository {
	return &LikeRepository{Repository: repo}
}

// LikeEntry is the read model for "who liked this post" listings.
type LikeEntry struct {
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	Username  string    `gorm:"column:username" json:"username"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// Insert records a like. The (post_id, user_id) uniqueness constraint
// turns a duplicate into InsertAlreadyExists rather than an error.
func (r *LikeRepository) Insert(ctx context.Context, postID, userID int64, now time.Time) (InsertOutcome, error) {
	like := &models.Like{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: now,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(like)
	if res.Error != nil {
		return InsertAlreadyExists, res.Error
	}
	if res.RowsAffected == 0 {
		return InsertAlreadyExists, nil
	}
	return InsertCreated, nil
}

// Delete removes a like. Returns false when no such like existed.
func (r *LikeRepository) Delete(ctx context.Context, postID, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListForPost retrieves the likes on a post with liker display fields,
// newest first.
func (r *LikeRepository) ListForPost(ctx context.Context, postID int64, limit, offset int) ([]*LikeEntry, error) {
	var entries []*LikeEntry
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("likes.user_id, users.username, users.full_name, likes.created_at").
		Joins("JOIN users ON users.id = likes.user_id").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("likes.post_id = ? AND posts.is_deleted = ?", postID, false).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountForPost counts likes on a post, excluding soft-deleted likers.
func (r *LikeRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("likes").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ? AND users.is_deleted = ?", postID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
