package blog

import (
	"strings"
	"testing"
	"time"

	"github.com/telmov/inkpress/internal/apperr"
	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/repository"
)

type fixture struct {
	svc   *Service
	posts repository.PostRepository
}

func setup(t *testing.T, pageSize int) *fixture {
	t.Helper()

	database := db.NewSQLite(":memory:")
	if err := database.InitDB(); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	posts := repository.NewDBPostRepository(database)
	comments := repository.NewDBCommentRepository(database)
	users := repository.NewDBUserRepository(database)

	if err := users.Add(&model.User{
		ID: "u1", Username: "writer", Email: "writer@example.com",
		PasswordHash: "x", CreatedAt: time.Now().UTC(),
		Roles: []model.Role{model.RoleEditor},
	}); err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}

	return &fixture{svc: NewService(posts, comments, pageSize, "gruvbox"), posts: posts}
}

func (f *fixture) addPost(t *testing.T, title, content string, publishedAt *time.Time) model.PostID {
	t.Helper()
	now := time.Now().UTC()
	id, err := f.posts.Add(&model.Post{
		Title: title, Content: content, AuthorID: "u1",
		CreatedAt: now, UpdatedAt: now, PublishedAt: publishedAt,
	})
	if err != nil {
		t.Fatalf("Failed to seed post: %v", err)
	}
	return id
}

func ts(offset time.Duration) *time.Time {
	t := time.Now().UTC().Add(offset)
	return &t
}

func TestNewest(t *testing.T) {
	f := setup(t, 2)
	f.addPost(t, "Oldest", "c", ts(-3*time.Hour))
	f.addPost(t, "Middle", "c", ts(-2*time.Hour))
	f.addPost(t, "Newest", "c", ts(-1*time.Hour))
	f.addPost(t, "Draft", "c", nil)

	t.Run("first page is newest first", func(t *testing.T) {
		page, err := f.svc.Newest(0)
		if err != nil {
			t.Fatalf("Newest failed: %v", err)
		}
		if page.Total != 3 {
			t.Errorf("Expected total 3, got %d", page.Total)
		}
		if len(page.Posts) != 2 {
			t.Fatalf("Expected 2 posts on page 0, got %d", len(page.Posts))
		}
		if page.Posts[0].Title != "Newest" || page.Posts[1].Title != "Middle" {
			t.Errorf("Wrong order: %s, %s", page.Posts[0].Title, page.Posts[1].Title)
		}
		if page.Posts[0].Author.Username != "writer" {
			t.Errorf("Expected joined author, got %+v", page.Posts[0].Author)
		}
	})

	t.Run("second page has the remainder", func(t *testing.T) {
		page, err := f.svc.Newest(1)
		if err != nil {
			t.Fatalf("Newest failed: %v", err)
		}
		if len(page.Posts) != 1 || page.Posts[0].Title != "Oldest" {
			t.Errorf("Unexpected page 1: %+v", page.Posts)
		}
	})

	t.Run("out-of-range page is empty, not an error", func(t *testing.T) {
		page, err := f.svc.Newest(10)
		if err != nil {
			t.Fatalf("Newest failed: %v", err)
		}
		if len(page.Posts) != 0 {
			t.Errorf("Expected empty page, got %d posts", len(page.Posts))
		}
		if page.Total != 3 {
			t.Errorf("Total should still be reported, got %d", page.Total)
		}
	})

	t.Run("negative page reads as page zero", func(t *testing.T) {
		page, err := f.svc.Newest(-1)
		if err != nil {
			t.Fatalf("Newest failed: %v", err)
		}
		if page.Page != 0 || len(page.Posts) != 2 {
			t.Errorf("Expected page 0 content, got page %d with %d posts", page.Page, len(page.Posts))
		}
	})
}

func TestGetByID(t *testing.T) {
	f := setup(t, 10)
	published := f.addPost(t, "Hello", "# Heading\n\nSome *markdown*.", ts(-time.Hour))
	draft := f.addPost(t, "Hidden", "draft body", nil)

	t.Run("renders markdown and includes comments", func(t *testing.T) {
		if _, err := f.svc.CreateComment(model.Identity{UserID: "u1"}, published, CommentFormData{Content: "Nice"}); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}

		detail, err := f.svc.GetByID(published)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if detail.Title != "Hello" {
			t.Errorf("Expected title Hello, got %s", detail.Title)
		}
		if !strings.Contains(detail.HTML, "<h1") || !strings.Contains(detail.HTML, "<em>") {
			t.Errorf("Markdown not rendered: %q", detail.HTML)
		}
		if len(detail.Comments) != 1 || detail.Comments[0].Content != "Nice" {
			t.Errorf("Unexpected comments: %+v", detail.Comments)
		}
	})

	t.Run("draft id reads as NotFound", func(t *testing.T) {
		if _, err := f.svc.GetByID(draft); !apperr.IsNotFound(err) {
			t.Errorf("Expected NotFound for a draft, got %v", err)
		}
	})

	t.Run("missing id is NotFound", func(t *testing.T) {
		if _, err := f.svc.GetByID(9999); !apperr.IsNotFound(err) {
			t.Errorf("Expected NotFound, got %v", err)
		}
	})
}

func TestCreateComment(t *testing.T) {
	f := setup(t, 10)
	published := f.addPost(t, "Post", "c", ts(-time.Hour))
	draft := f.addPost(t, "Draft", "c", nil)
	caller := model.Identity{UserID: "u1", Roles: []model.Role{model.RoleReader}}

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := f.svc.CreateComment(caller, published, CommentFormData{})
		if !apperr.IsValidation(err) {
			t.Errorf("Expected ValidationFailed, got %v", err)
		}
	})

	t.Run("commenting on a draft is NotFound", func(t *testing.T) {
		_, err := f.svc.CreateComment(caller, draft, CommentFormData{Content: "hi"})
		if !apperr.IsNotFound(err) {
			t.Errorf("Expected NotFound, got %v", err)
		}
	})

	t.Run("comment is attributed to the caller", func(t *testing.T) {
		id, err := f.svc.CreateComment(caller, published, CommentFormData{Content: "First!"})
		if err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
		if id == 0 {
			t.Error("Expected a non-zero comment id")
		}

		detail, err := f.svc.GetByID(published)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		last := detail.Comments[len(detail.Comments)-1]
		if last.AuthorID != "u1" || last.Content != "First!" {
			t.Errorf("Unexpected comment: %+v", last)
		}
	})
}
