package db

import (
	"context"
)

// EngagementRepository computes like and comment aggregates at read
// time from current rows. Counts are never cached or denormalized, so
// they are exact against concurrent like/unlike and comment activity.
type EngagementRepository struct {
	*Repository
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(repo *Repository) *EngagementRepository {
	return &EngagementRepository{Repository: repo}
}

// Engagement holds the derived values for one post.
type Engagement struct {
	LikesCount    int64
	CommentsCount int64
	LikedByViewer bool
}

type countRow struct {
	PostID int64 `gorm:"column:post_id"`
	Cnt    int64 `gorm:"column:cnt"`
}

// ForPosts computes engagement for a set of posts in three grouped
// queries. viewerID nil means no viewer: LikedByViewer stays false.
// Posts with no engagement get a zero-valued entry.
func (r *EngagementRepository) ForPosts(ctx context.Context, postIDs []int64, viewerID *int64) (map[int64]Engagement, error) {
	result := make(map[int64]Engagement, len(postIDs))
	for _, id := range postIDs {
		result[id] = Engagement{}
	}
	if len(postIDs) == 0 {
		return result, nil
	}

	// Likes from non-deleted likers
	var likeRows []countRow
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("likes.post_id AS post_id, COUNT(*) AS cnt").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id IN ? AND users.is_deleted = ?", postIDs, false).
		Group("likes.post_id").
		Scan(&likeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range likeRows {
		e := result[row.PostID]
		e.LikesCount = row.Cnt
		result[row.PostID] = e
	}

	// Visible comments from non-deleted authors
	var commentRows []countRow
	err = r.db.WithContext(ctx).
		Table("comments").
		Select("comments.post_id AS post_id, COUNT(*) AS cnt").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id IN ? AND comments.is_deleted = ? AND users.is_deleted = ?", postIDs, false, false).
		Group("comments.post_id").
		Scan(&commentRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range commentRows {
		e := result[row.PostID]
		e.CommentsCount = row.Cnt
		result[row.PostID] = e
	}

	if viewerID == nil {
		return result, nil
	}

	// Posts the viewer has liked
	var likedIDs []int64
	err = r.db.WithContext(ctx).
		Table("likes").
		Select("post_id").
		Where("post_id IN ? AND user_id = ?", postIDs, *viewerID).
		Scan(&likedIDs).Error
	if err != nil {
		return nil, err
	}
	for _, id := range likedIDs {
		e := result[id]
		e.LikedByViewer = true
		result[id] = e
	}

	return result, nil
}

// ForPost computes engagement for a single post.
func (r *EngagementRepository) ForPost(ctx context.Context, postID int64, viewerID *int64) (Engagement, error) {
	m, err := r.ForPosts(ctx, []int64{postID}, viewerID)
	if err != nil {
		return Engagement{}, err
	}
	return m[postID], nil
}
