package models

import (
	"time"
)

// User represents an account. Identity and profile management are owned
// by the auth service; this service only reads id, display fields, and
// the soft-delete flag.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Username  string    `gorm:"type:varchar(32);not null;uniqueIndex:users_ux1;column:username"`
	FullName  string    `gorm:"type:varchar(100);not null;default:'';column:full_name"`
	IsDeleted bool      `gorm:"not null;default:false;column:is_deleted"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
