package db

import (
	"context"

	"github.com/ripple-social/ripple/internal/models"
)

// FeedRepository provides the feed page query
type FeedRepository struct {
	*Repository
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(repo *Repository) *FeedRepository {
	return &FeedRepository{Repository: repo}
}

// Page retrieves one page of the viewer's feed: published posts by the
// viewer or accounts the viewer follows, from non-deleted authors,
// newest first. Ties on created_at break on id descending so the order
// is deterministic under same-timestamp collisions.
func (r *FeedRepository) Page(ctx context.Context, viewerID int64, limit, offset int) ([]*models.EnrichedPost, error) {
	followed := r.db.
		Table("follows").
		Select("following_id").
		Where("follower_id = ?", viewerID)

	var rows []*models.EnrichedPost
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.*, users.username, users.full_name").
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.is_deleted = ? AND users.is_deleted = ? AND posts.status = ?", false, false, models.PostStatusPublished).
		Where("posts.author_id = ? OR posts.author_id IN (?)", viewerID, followed).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
