package models

import (
	"database/sql"
	"time"
)

// Post status constants. A post is created as either published or
// scheduled; scheduled posts flip to published exactly once when their
// scheduled time elapses. Deletion is a separate flag, not a status.
const (
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Post is the central content entity.
type Post struct {
	ID              int64          `gorm:"primaryKey;autoIncrement;column:id"`
	AuthorID        int64          `gorm:"not null;index;column:author_id"`
	Content         string         `gorm:"type:text;not null;column:content"`
	MediaURL        sql.NullString `gorm:"type:varchar(1024);column:media_url"`
	CommentsEnabled bool           `gorm:"not null;default:true;column:comments_enabled"`
	Status          string         `gorm:"type:varchar(16);not null;default:'published';index;column:status"`
	ScheduledAt     sql.NullTime   `gorm:"column:scheduled_at"`
	CreatedAt       time.Time      `gorm:"not null;column:created_at"`
	UpdatedAt       time.Time      `gorm:"not null;column:updated_at"`
	IsDeleted       bool           `gorm:"not null;default:false;column:is_deleted"`

	// Relationships
	Author *User `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// IsPublished reports whether the post is visible to readers.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished && !p.IsDeleted
}
