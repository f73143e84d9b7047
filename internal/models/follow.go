package models

import (
	"time"
)

// Follow is a directed edge in the follow graph, unique per ordered
// pair. Self-follows are rejected before insert. Existence of the row
// is the only state.
type Follow struct {
	FollowerID  int64     `gorm:"primaryKey;column:follower_id"`
	FollowingID int64     `gorm:"primaryKey;column:following_id"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower  *User `gorm:"foreignKey:FollowerID;references:ID"`
	Following *User `gorm:"foreignKey:FollowingID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "follows"
}
