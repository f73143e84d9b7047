package models

import (
	"time"
)

// EnrichedPost is the fixed read model returned by feed and post-detail
// queries: the post row joined with its author's display fields, plus
// engagement values computed at read time. It is decoded once at the
// store boundary and never written back.
type EnrichedPost struct {
	ID              int64          `gorm:"column:id" json:"id"`
	AuthorID        int64          `gorm:"column:author_id" json:"author_id"`
	Username        string         `gorm:"column:username" json:"username"`
	FullName        string         `gorm:"column:full_name" json:"full_name"`
	Content         string         `gorm:"column:content" json:"content"`
	MediaURL        *string        `gorm:"column:media_url" json:"media_url"`
	CommentsEnabled bool           `gorm:"column:comments_enabled" json:"comments_enabled"`
	Status          string         `gorm:"column:status" json:"status"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updated_at"`

	// Engagement, filled by the aggregator after the row is decoded.
	LikesCount    int64 `gorm:"-" json:"likes_count"`
	CommentsCount int64 `gorm:"-" json:"comments_count"`
	LikedByViewer bool  `gorm:"-" json:"liked_by_viewer"`
}
