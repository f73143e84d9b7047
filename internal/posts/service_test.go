package posts

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

	user := &models.User{ID: 1, Username: "alice", FullName: "Alice", CreatedAt: time.Now().UTC()}
	if err := database.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return NewService(db.NewRepository(database.DB)), database
}

func TestCreatePostStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	t.Run("immediate publish", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "hello"})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if post.Status != models.PostStatusPublished {
			t.Errorf("status = %q, want published", post.Status)
		}
		if post.ScheduledAt.Valid {
			t.Error("immediate post must not carry scheduled_at")
		}
	})

	t.Run("future schedule", func(t *testing.T) {
		at := clock.Add(time.Hour)
		post, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "later", ScheduledAt: &at})
		if err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
		if post.Status != models.PostStatusScheduled {
			t.Errorf("status = %q, want scheduled", post.Status)
		}
	})

	t.Run("past schedule rejected", func(t *testing.T) {
		at := clock.Add(-time.Minute)
		if _, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "late", ScheduledAt: &at}); err != ErrInvalidSchedule {
			t.Errorf("err = %v, want ErrInvalidSchedule", err)
		}
	})

	t.Run("schedule at now rejected", func(t *testing.T) {
		at := clock
		if _, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "now", ScheduledAt: &at}); err != ErrInvalidSchedule {
			t.Errorf("err = %v, want ErrInvalidSchedule", err)
		}
	})

	t.Run("empty content rejected", func(t *testing.T) {
		if _, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "   "}); err != ErrEmptyContent {
			t.Errorf("err = %v, want ErrEmptyContent", err)
		}
	})
}

func TestDeleteCollapsesNotFoundAndUnauthorized(t *testing.T) {
	svc, database := newTestService(t)
	ctx := context.Background()

	other := &models.User{ID: 2, Username: "bob", FullName: "Bob", CreatedAt: time.Now().UTC()}
	if err := database.Create(other).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	post, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "mine"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// Missing post and foreign post produce the same result.
	if ok, err := svc.DeletePost(ctx, 9999, 1); err != nil || ok {
		t.Errorf("delete missing = (%v, %v), want (false, nil)", ok, err)
	}
	if ok, err := svc.DeletePost(ctx, post.ID, 2); err != nil || ok {
		t.Errorf("delete foreign = (%v, %v), want (false, nil)", ok, err)
	}

	if ok, err := svc.DeletePost(ctx, post.ID, 1); err != nil || !ok {
		t.Fatalf("owner delete = (%v, %v), want (true, nil)", ok, err)
	}

	// Deletion is absorbing; a second delete is a quiet no-op.
	if ok, _ := svc.DeletePost(ctx, post.ID, 1); ok {
		t.Error("second delete should report false")
	}
	if detail, _ := svc.GetPostDetail(ctx, post.ID, nil); detail != nil {
		t.Error("deleted post still readable")
	}
}

func TestPublishDueIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	at := clock.Add(time.Minute)
	post, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "queued", ScheduledAt: &at})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// Not due yet.
	due, err := svc.ListDue(ctx)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("due = %d posts, want 0", len(due))
	}

	// Advance past the scheduled time.
	clock = clock.Add(2 * time.Minute)

	due, err = svc.ListDue(ctx)
	if err != nil {
		t.Fatalf("ListDue failed: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("due = %d posts, want 1", len(due))
	}

	ok, err := svc.PublishDue(ctx, post.ID)
	if err != nil || !ok {
		t.Fatalf("PublishDue = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = svc.PublishDue(ctx, post.ID)
	if err != nil {
		t.Fatalf("second PublishDue failed: %v", err)
	}
	if ok {
		t.Error("second PublishDue should be a no-op")
	}

	detail, err := svc.GetPostDetail(ctx, post.ID, nil)
	if err != nil {
		t.Fatalf("GetPostDetail failed: %v", err)
	}
	if detail == nil || detail.Status != models.PostStatusPublished {
		t.Errorf("post after publish = %+v, want published", detail)
	}
}

func TestScheduledPostHiddenFromReaders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	at := clock.Add(time.Hour)
	post, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "secret for now", ScheduledAt: &at})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	if detail, err := svc.GetPostDetail(ctx, post.ID, nil); err != nil || detail != nil {
		t.Errorf("scheduled detail = (%v, %v), want (nil, nil)", detail, err)
	}

	// The author sees it in their scheduled listing.
	pending, err := svc.ListScheduledPosts(ctx, 1)
	if err != nil {
		t.Fatalf("ListScheduledPosts failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != post.ID {
		t.Errorf("pending = %v, want just post %d", pending, post.ID)
	}
}

func TestUpdatePostKeepsStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, CreateInput{AuthorID: 1, Content: "draft wording"})
	if err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	content := "final wording"
	updated, err := svc.UpdatePost(ctx, post.ID, 1, db.PostUpdate{Content: &content})
	if err != nil {
		t.Fatalf("UpdatePost failed: %v", err)
	}
	if updated == nil || updated.Content != content {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.Status != post.Status {
		t.Errorf("status changed from %q to %q", post.Status, updated.Status)
	}

	empty := " "
	if _, err := svc.UpdatePost(ctx, post.ID, 1, db.PostUpdate{Content: &empty}); err != ErrEmptyContent {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
}
