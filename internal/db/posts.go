package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ripple-social/ripple/internal/models"
)

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// PostUpdate carries the author-editable fields. Nil means "leave
// unchanged". Status and scheduled_at are never touched by updates.
type PostUpdate struct {
	Content         *string
	MediaURL        *string
	CommentsEnabled *bool
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetByID retrieves a post by ID regardless of status or deletion.
// Internal use only; read paths go through GetPublished.
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPublished retrieves a post visible to readers: published and not
// deleted. Returns nil for missing, deleted, or still-scheduled posts.
func (r *PostRepository) GetPublished(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ? AND status = ?", id, false, models.PostStatusPublished).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedDetail retrieves a published post joined with its author's
// display fields. Engagement values are filled by the aggregator.
func (r *PostRepository) GetPublishedDetail(ctx context.Context, id int64) (*models.EnrichedPost, error) {
	var row models.EnrichedPost
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.username, users.full_name").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND posts.is_deleted = ? AND posts.status = ?", id, false, models.PostStatusPublished).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

// ListPublishedByAuthor retrieves an author's published posts, newest
// first.
func (r *PostRepository) ListPublishedByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.EnrichedPost, error) {
	var rows []*models.EnrichedPost
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.username, users.full_name").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.author_id = ? AND posts.is_deleted = ? AND posts.status = ?", authorID, false, models.PostStatusPublished).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListScheduledByAuthor retrieves an author's pending scheduled posts,
// soonest first. Only the author ever sees these.
func (r *PostRepository) ListScheduledByAuthor(ctx context.Context, authorID int64) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND status = ? AND is_deleted = ?", authorID, models.PostStatusScheduled, false).
		Order("scheduled_at ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SoftDelete marks a post deleted if it exists, is not already deleted,
// and belongs to the actor. Ownership mismatch and nonexistence are
// indistinguishable in the result.
func (r *PostRepository) SoftDelete(ctx context.Context, postID, actorID int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND author_id = ? AND is_deleted = ?", postID, actorID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateOwned applies the author-editable fields under the same
// ownership predicate as SoftDelete. Returns the updated post, or nil
// when no row matched.
func (r *PostRepository) UpdateOwned(ctx context.Context, postID, actorID int64, upd PostUpdate, now time.Time) (*models.Post, error) {
	fields := map[string]interface{}{"updated_at": now}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.MediaURL != nil {
		fields["media_url"] = *upd.MediaURL
	}
	if upd.CommentsEnabled != nil {
		fields["comments_enabled"] = *upd.CommentsEnabled
	}

	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND author_id = ? AND is_deleted = ?", postID, actorID, false).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, postID)
}

// ListDueScheduled retrieves scheduled posts whose publication time has
// elapsed.
func (r *PostRepository) ListDueScheduled(ctx context.Context, now time.Time) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ? AND is_deleted = ?", models.PostStatusScheduled, now, false).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// MarkPublished flips a scheduled post to published with a single
// conditional update. Zero rows affected is a success: the post was
// already published, or was deleted between selection and transition.
// Returns whether this call performed the transition.
func (r *PostRepository) MarkPublished(ctx context.Context, postID int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND status = ? AND is_deleted = ?", postID, models.PostStatusScheduled, false).
		Updates(map[string]interface{}{
			"status":     models.PostStatusPublished,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
