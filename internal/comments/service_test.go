package comments

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"github.com/ripple-social/ripple/internal/db"
	"github.com/ripple-social/ripple/internal/models"
)

func newTestService(t *testing.T) (*Service, *db.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := db.Open(sqlite.Open(dsn), "ERROR")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.AutoMigrate(
		&models.User{}, &models.Post{}, &models.Like{}, &models.Comment{}, &models.Follow{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	for id, username := range map[int64]string{1: "alice", 2: "bob"} {
		user := &models.User{ID: id, Username: username, FullName: username, CreatedAt: time.Now().UTC()}
		if err := database.Create(user).Error; err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	return NewService(db.NewRepository(database.DB)), database
}

func seedPost(t *testing.T, database *db.DB, commentsEnabled bool) *models.Post {
	t.Helper()
	now := time.Now().UTC()
	post := &models.Post{
		AuthorID:        1,
		Content:         "a post",
		CommentsEnabled: commentsEnabled,
		Status:          models.PostStatusPublished,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := database.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func TestCreateComment(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, database, true)

	comment, err := svc.Create(ctx, post.ID, 2, "well said")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if comment.ID == 0 || comment.PostID != post.ID {
		t.Errorf("comment = %+v", comment)
	}

	entries, err := svc.ListForPost(ctx, post.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListForPost failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Username != "bob" {
		t.Errorf("entries = %v, want one comment from bob", entries)
	}
}

func TestCreateCommentRejections(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()

	open := seedPost(t, database, true)
	closed := seedPost(t, database, false)

	if _, err := svc.Create(ctx, open.ID, 2, "  "); err != ErrEmptyContent {
		t.Errorf("empty content err = %v, want ErrEmptyContent", err)
	}
	if _, err := svc.Create(ctx, closed.ID, 2, "hi"); err != ErrCommentsDisabled {
		t.Errorf("disabled err = %v, want ErrCommentsDisabled", err)
	}
	if _, err := svc.Create(ctx, 9999, 2, "hi"); err != ErrPostNotFound {
		t.Errorf("missing post err = %v, want ErrPostNotFound", err)
	}
}

func TestUpdateCommentOwnership(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, database, true)

	comment, err := svc.Create(ctx, post.ID, 2, "first draft")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// A non-author edit looks like a missing comment.
	got, err := svc.Update(ctx, comment.ID, 1, "hijacked")
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got != nil {
		t.Error("non-author update should return nil")
	}

	got, err = svc.Update(ctx, comment.ID, 2, "second draft")
	if err != nil {
		t.Fatalf("author Update failed: %v", err)
	}
	if got == nil || got.Content != "second draft" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestDeleteCommentCollapse(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()
	post := seedPost(t, database, true)

	comment, err := svc.Create(ctx, post.ID, 2, "temporary")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if ok, _ := svc.Delete(ctx, comment.ID, 1); ok {
		t.Error("non-author delete should report false")
	}
	if ok, err := svc.Delete(ctx, comment.ID, 2); err != nil || !ok {
		t.Fatalf("author delete = (%v, %v), want (true, nil)", ok, err)
	}
	if ok, _ := svc.Delete(ctx, comment.ID, 2); ok {
		t.Error("second delete should report false")
	}

	entries, err := svc.ListForPost(ctx, post.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListForPost failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("deleted comment still listed: %v", entries)
	}
}
