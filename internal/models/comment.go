package models

import (
	"time"
)

// Comment is soft-deleted like Post. A comment is visible only when
// neither it nor its parent post is deleted.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    int64     `gorm:"not null;index;column:post_id"`
	AuthorID  int64     `gorm:"not null;index;column:author_id"`
	Content   string    `gorm:"type:varchar(500);not null;column:content"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
	IsDeleted bool      `gorm:"not null;default:false;column:is_deleted"`

	// Relationships
	Post   *Post `gorm:"foreignKey:PostID;references:ID"`
	Author *User `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}
