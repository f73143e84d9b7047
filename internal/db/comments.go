package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ripple-social/ripple/internal/models"
)

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// CommentEntry is the read model for comment listings.
type CommentEntry struct {
	ID        int64     `gorm:"column:id" json:"id"`
	PostID    int64     `gorm:"column:post_id" json:"post_id"`
	AuthorID  int64     `gorm:"column:author_id" json:"author_id"`
	Username  string    `gorm:"column:username" json:"username"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	Content   string    `gorm:"column:content" json:"content"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetVisible retrieves a comment if neither it nor its parent post is
// deleted. Returns nil otherwise.
func (r *CommentRepository) GetVisible(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ? AND post_id IN (?)",
			id, false,
			r.db.Table("posts").Select("id").Where("is_deleted = ?", false),
		).
		First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListForPost retrieves the visible comments on a post with author
// display fields, newest first.
func (r *CommentRepository) ListForPost(ctx context.Context, postID int64, limit, offset int) ([]*CommentEntry, error) {
	var entries []*CommentEntry
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.post_id, comments.author_id, users.username, users.full_name, comments.content, comments.created_at, comments.updated_at").
		Joins("JOIN users ON users.id = comments.author_id").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Where("comments.post_id = ? AND comments.is_deleted = ? AND posts.is_deleted = ?", postID, false, false).
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateOwned edits a comment's content if the actor authored it and
// neither the comment nor the parent post is deleted. Returns nil when
// no row matched.
func (r *CommentRepository) UpdateOwned(ctx context.Context, commentID, actorID int64, content string, now time.Time) (*models.Comment, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND author_id = ? AND is_deleted = ? AND post_id IN (?)",
			commentID, actorID, false,
			r.db.Table("posts").Select("id").Where("is_deleted = ?", false),
		).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// SoftDelete marks a comment deleted under the same ownership predicate
// as UpdateOwned, minus the parent-post check: authors may remove their
// comments even from deleted posts.
func (r *CommentRepository) SoftDelete(ctx context.Context, commentID, actorID int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND author_id = ? AND is_deleted = ?", commentID, actorID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CountForPost counts visible comments whose authors are not deleted.
func (r *CommentRepository) CountForPost(ctx context.Context, postID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("comments").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ? AND comments.is_deleted = ? AND users.is_deleted = ?", postID, false, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
