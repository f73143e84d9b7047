package models

import (
	"time"
)

// Like is a join row between a user and a post. The (post_id, user_id)
// pair is unique; a like either exists or it does not, so unlike is a
// hard delete.
type Like struct {
	PostID    int64     `gorm:"primaryKey;column:post_id"`
	UserID    int64     `gorm:"primaryKey;column:user_id"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
	User *User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Like
func (Like) TableName() string {
	return "likes"
}
