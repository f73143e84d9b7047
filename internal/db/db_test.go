package db

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"github.com/ripple-social/ripple/internal/models"
)

// openTestDB opens a per-test in-memory SQLite database with the full
// schema migrated.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := Open(sqlite.Open(dsn), "ERROR")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return database
}

func createTestUser(t *testing.T, database *DB, id int64, username string) {
	t.Helper()
	user := &models.User{
		ID:        id,
		Username:  username,
		FullName:  username + " Test",
		CreatedAt: time.Now().UTC(),
	}
	if err := database.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
}
