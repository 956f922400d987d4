package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/telmov/inkpress/internal/model"
)

func TestDBUserRepository(t *testing.T) {
	database := setupTestDB(t)
	users := NewDBUserRepository(database)

	seedUser(t, users, "u1", "alice", model.RoleAdmin, model.RoleEditor)

	t.Run("FindByID returns roles", func(t *testing.T) {
		user, err := users.FindByID("u1")
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Expected username alice, got %q", user.Username)
		}
		if len(user.Roles) != 2 {
			t.Fatalf("Expected 2 roles, got %v", user.Roles)
		}
	})

	t.Run("FindByEmail and FindByUsername agree", func(t *testing.T) {
		byEmail, err := users.FindByEmail("alice@example.com")
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		byUsername, err := users.FindByUsername("alice")
		if err != nil {
			t.Fatalf("FindByUsername failed: %v", err)
		}
		if byEmail.ID != byUsername.ID {
			t.Errorf("Expected same user, got %v and %v", byEmail.ID, byUsername.ID)
		}
	})

	t.Run("missing user returns sql.ErrNoRows", func(t *testing.T) {
		if _, err := users.FindByEmail("nobody@example.com"); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("Expected sql.ErrNoRows, got %v", err)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		err := users.Add(&model.User{
			ID:           "u2",
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "x",
			CreatedAt:    time.Now().UTC(),
		})
		if err == nil {
			t.Error("Expected unique constraint violation")
		}
	})

	t.Run("Delete cascades roles", func(t *testing.T) {
		if err := users.Delete("u1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := users.FindByID("u1"); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("Expected sql.ErrNoRows after delete, got %v", err)
		}

		var count int
		if err := database.QueryRow(`SELECT COUNT(*) FROM user_roles WHERE user_id = ?`, "u1").Scan(&count); err != nil {
			t.Fatalf("Failed to count roles: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected roles to cascade, found %d", count)
		}
	})
}

func TestDBCommentRepository(t *testing.T) {
	database := setupTestDB(t)
	users := NewDBUserRepository(database)
	posts := NewDBPostRepository(database)
	comments := NewDBCommentRepository(database)

	author := seedUser(t, users, "u1", "author", model.RoleEditor)
	reader := seedUser(t, users, "u2", "reader", model.RoleReader)

	now := time.Now().UTC().Truncate(time.Second)
	postID, err := posts.Add(&model.Post{
		Title:       "Post",
		Content:     "body",
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: &now,
	})
	if err != nil {
		t.Fatalf("Add post failed: %v", err)
	}

	first, err := comments.Add(&model.Comment{PostID: postID, AuthorID: reader.ID, Content: "first!", CreatedAt: now})
	if err != nil {
		t.Fatalf("Add comment failed: %v", err)
	}
	if _, err := comments.Add(&model.Comment{PostID: postID, AuthorID: author.ID, Content: "thanks", CreatedAt: now}); err != nil {
		t.Fatalf("Add comment failed: %v", err)
	}

	list, err := comments.ListByPost(postID)
	if err != nil {
		t.Fatalf("ListByPost failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(list))
	}
	if list[0].ID != first || list[0].Content != "first!" {
		t.Errorf("Expected insertion order, got %+v", list[0])
	}
}
