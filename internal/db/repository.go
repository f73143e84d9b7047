package db

import (
	"gorm.io/gorm"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertOutcome is the tagged result of a conditional insert guarded by
// a uniqueness constraint. A constraint hit is a normal outcome, not an
// error.
type InsertOutcome int

const (
	// InsertCreated means a new row was written
	InsertCreated InsertOutcome = iota
	// InsertAlreadyExists means the unique constraint matched an existing row
	InsertAlreadyExists
)
