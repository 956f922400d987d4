// Package blog serves the public side of the platform: published posts,
// post detail and comment creation.
package blog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/telmov/inkpress/internal/apperr"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/render"
	"github.com/telmov/inkpress/internal/repository"
	"github.com/telmov/inkpress/internal/validate"
)

var blogLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	blogLogger = l
}

type Writer struct {
	ID       model.UserID `json:"id"`
	Username string       `json:"username"`
}

type Post struct {
	ID          model.PostID `json:"id"`
	Title       string       `json:"title"`
	Author      Writer       `json:"author"`
	PublishedAt time.Time    `json:"publishedAt"`
}

type Comment struct {
	ID        model.CommentID `json:"id"`
	AuthorID  model.UserID    `json:"authorId"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"createdAt"`
}

type PostDetail struct {
	ID          model.PostID `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	HTML        string       `json:"html"`
	Author      Writer       `json:"author"`
	PublishedAt time.Time    `json:"publishedAt"`
	Comments    []Comment    `json:"comments"`
}

// PostsPage is one page of the newest-first published feed.
type PostsPage struct {
	Posts    []Post `json:"posts"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
}

type CommentFormData struct {
	Content string `json:"content" validate:"required"`
}

type Service struct {
	posts    repository.PostRepository
	comments repository.CommentRepository

	pageSize    int
	syntaxTheme string
}

func NewService(posts repository.PostRepository, comments repository.CommentRepository, pageSize int, syntaxTheme string) *Service {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Service{
		posts:    posts,
		comments: comments,

		pageSize:    pageSize,
		syntaxTheme: syntaxTheme,
	}
}

// Newest returns one page of published posts, newest published first.
// Pages are zero-based; an out-of-range page yields an empty list.
func (s *Service) Newest(page int) (*PostsPage, error) {
	if page < 0 {
		page = 0
	}

	total, err := s.posts.CountPublished()
	if err != nil {
		return nil, fmt.Errorf("error counting posts: %w", err)
	}

	rows, err := s.posts.ListPublished(page*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	posts := make([]Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, Post{
			ID:          row.Post.ID,
			Title:       row.Post.Title,
			Author:      Writer{ID: row.Author.ID, Username: row.Author.Username},
			PublishedAt: *row.Post.PublishedAt,
		})
	}

	return &PostsPage{
		Posts:    posts,
		Page:     page,
		PageSize: s.pageSize,
		Total:    total,
	}, nil
}

// GetByID returns a published post with rendered HTML and its comments.
// Drafts are invisible here: an unpublished id reads as NotFound.
func (s *Service) GetByID(id model.PostID) (*PostDetail, error) {
	row, err := s.posts.FindPublishedByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("post", id)
	} else if err != nil {
		return nil, fmt.Errorf("error reading post: %w", err)
	}

	comments, err := s.comments.ListByPost(id)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}

	views := make([]Comment, 0, len(comments))
	for _, c := range comments {
		views = append(views, Comment{
			ID:        c.ID,
			AuthorID:  c.AuthorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	return &PostDetail{
		ID:          row.Post.ID,
		Title:       row.Post.Title,
		Content:     row.Post.Content,
		HTML:        string(render.RenderMarkdown([]byte(row.Post.Content), s.syntaxTheme)),
		Author:      Writer{ID: row.Author.ID, Username: row.Author.Username},
		PublishedAt: *row.Post.PublishedAt,
		Comments:    views,
	}, nil
}

// CreateComment attaches the caller as comment author. Any authenticated
// user may comment; the post must exist and be published.
func (s *Service) CreateComment(identity model.Identity, postID model.PostID, data CommentFormData) (model.CommentID, error) {
	if err := validate.Struct(data); err != nil {
		return 0, err
	}

	if _, err := s.posts.FindPublishedByID(postID); errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound("post", postID)
	} else if err != nil {
		return 0, fmt.Errorf("error reading post: %w", err)
	}

	comment := &model.Comment{
		PostID:    postID,
		AuthorID:  identity.UserID,
		Content:   data.Content,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.comments.Add(comment)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	blogLogger.Info().
		Int64("comment_id", int64(id)).
		Int64("post_id", int64(postID)).
		Msg("Comment created")
	return id, nil
}
