package db

import (
	"context"
	"testing"
	"time"

	"github.com/ripple-social/ripple/internal/models"
)

func TestEngagementForPosts(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database.DB)
	engagement := NewEngagementRepository(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	createTestUser(t, database, 1, "alice")
	createTestUser(t, database, 2, "bob")
	createTestUser(t, database, 3, "carol")

	post := seedPost(t, database, &models.Post{
		AuthorID:        1,
		Content:         "popular",
		CommentsEnabled: true,
		Status:          models.PostStatusPublished,
	})
	quiet := seedPost(t, database, &models.Post{
		AuthorID:        1,
		Content:         "quiet",
		CommentsEnabled: true,
		Status:          models.PostStatusPublished,
	})

	for _, userID := range []int64{2, 3} {
		like := &models.Like{PostID: post.ID, UserID: userID, CreatedAt: now}
		if err := database.Create(like).Error; err != nil {
			t.Fatalf("failed to seed like: %v", err)
		}
	}
	comment := &models.Comment{PostID: post.ID, AuthorID: 2, Content: "nice", CreatedAt: now, UpdatedAt: now}
	if err := database.Create(comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}

	viewer := int64(2)
	result, err := engagement.ForPosts(ctx, []int64{post.ID, quiet.ID}, &viewer)
	if err != nil {
		t.Fatalf("ForPosts failed: %v", err)
	}

	got := result[post.ID]
	if got.LikesCount != 2 || got.CommentsCount != 1 || !got.LikedByViewer {
		t.Errorf("engagement = %+v, want 2 likes, 1 comment, liked", got)
	}

	// Posts with no activity still get a zero entry.
	if zero, ok := result[quiet.ID]; !ok || zero != (Engagement{}) {
		t.Errorf("quiet post engagement = %+v, want zero entry", zero)
	}
}

func TestEngagementExcludesDeletedUsers(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database.DB)
	engagement := NewEngagementRepository(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	createTestUser(t, database, 1, "alice")
	createTestUser(t, database, 2, "bob")

	post := seedPost(t, database, &models.Post{
		AuthorID:        1,
		Content:         "post",
		CommentsEnabled: true,
		Status:          models.PostStatusPublished,
	})

	if err := database.Create(&models.Like{PostID: post.ID, UserID: 2, CreatedAt: now}).Error; err != nil {
		t.Fatalf("failed to seed like: %v", err)
	}
	comment := &models.Comment{PostID: post.ID, AuthorID: 2, Content: "hi", CreatedAt: now, UpdatedAt: now}
	if err := database.Create(comment).Error; err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}

	// Bob leaves the platform; his engagement stops counting.
	if err := database.Model(&models.User{}).Where("id = ?", 2).Update("is_deleted", true).Error; err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	got, err := engagement.ForPost(ctx, post.ID, nil)
	if err != nil {
		t.Fatalf("ForPost failed: %v", err)
	}
	if got.LikesCount != 0 || got.CommentsCount != 0 {
		t.Errorf("engagement = %+v, want zeros after liker deletion", got)
	}
}

func TestLikeInsertOutcome(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database.DB)
	likes := NewLikeRepository(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	createTestUser(t, database, 1, "alice")
	createTestUser(t, database, 2, "bob")
	post := seedPost(t, database, &models.Post{
		AuthorID:        1,
		Content:         "post",
		CommentsEnabled: true,
		Status:          models.PostStatusPublished,
	})

	outcome, err := likes.Insert(ctx, post.ID, 2, now)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if outcome != InsertCreated {
		t.Fatalf("outcome = %v, want InsertCreated", outcome)
	}

	outcome, err = likes.Insert(ctx, post.ID, 2, now)
	if err != nil {
		t.Fatalf("duplicate Insert failed: %v", err)
	}
	if outcome != InsertAlreadyExists {
		t.Fatalf("outcome = %v, want InsertAlreadyExists", outcome)
	}

	count, err := likes.CountForPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("CountForPost failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	removed, err := likes.Delete(ctx, post.ID, 2)
	if err != nil || !removed {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", removed, err)
	}
	removed, _ = likes.Delete(ctx, post.ID, 2)
	if removed {
		t.Error("second delete should remove nothing")
	}
}

func TestFollowInsertOutcome(t *testing.T) {
	database := openTestDB(t)
	repo := NewRepository(database.DB)
	follows := NewFollowRepository(repo)
	ctx := context.Background()
	now := time.Now().UTC()

	createTestUser(t, database, 1, "alice")
	createTestUser(t, database, 2, "bob")

	outcome, err := follows.Insert(ctx, 1, 2, now)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if outcome != InsertCreated {
		t.Fatalf("outcome = %v, want InsertCreated", outcome)
	}

	outcome, err = follows.Insert(ctx, 1, 2, now)
	if err != nil {
		t.Fatalf("duplicate Insert failed: %v", err)
	}
	if outcome != InsertAlreadyExists {
		t.Fatalf("outcome = %v, want InsertAlreadyExists", outcome)
	}

	following, err := follows.IsFollowing(ctx, 1, 2)
	if err != nil || !following {
		t.Errorf("IsFollowing = (%v, %v), want (true, nil)", following, err)
	}
	reverse, _ := follows.IsFollowing(ctx, 2, 1)
	if reverse {
		t.Error("follow edges are directed; reverse must be false")
	}
}
