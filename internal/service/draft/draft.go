// Package draft orchestrates CRUD over unpublished posts: role and ownership
// checks, input validation and projection to response shapes.
package draft

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/telmov/inkpress/internal/apperr"
	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/repository"
	"github.com/telmov/inkpress/internal/validate"
)

var draftLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	draftLogger = l
}

// AllowedRoles may read and create drafts. Ownership is additionally
// required for mutation.
var AllowedRoles = []model.Role{model.RoleAdmin, model.RoleEditor}

type Writer struct {
	ID       model.UserID `json:"id"`
	Username string       `json:"username"`
}

type Draft struct {
	ID     model.PostID `json:"id"`
	Title  string       `json:"title"`
	Author Writer       `json:"author"`
}

type DraftDetail struct {
	ID      model.PostID `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Author  Writer       `json:"author"`
}

type FormData struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	Publish bool   `json:"publish"`
}

type Service struct {
	posts repository.PostRepository
	users repository.UserRepository
}

func NewService(posts repository.PostRepository, users repository.UserRepository) *Service {
	return &Service{posts: posts, users: users}
}

// List returns every draft joined with its author. Any Admin or Editor may
// list all drafts regardless of who owns them.
func (s *Service) List(identity model.Identity) ([]Draft, error) {
	if err := auth.RequireRole(identity, AllowedRoles...); err != nil {
		return nil, err
	}

	rows, err := s.posts.ListUnpublishedWithAuthor()
	if err != nil {
		return nil, fmt.Errorf("error listing drafts: %w", err)
	}

	drafts := make([]Draft, 0, len(rows))
	for _, row := range rows {
		drafts = append(drafts, Draft{
			ID:     row.Post.ID,
			Title:  row.Post.Title,
			Author: Writer{ID: row.Author.ID, Username: row.Author.Username},
		})
	}
	return drafts, nil
}

func (s *Service) GetByID(identity model.Identity, id model.PostID) (*DraftDetail, error) {
	if err := auth.RequireRole(identity, AllowedRoles...); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("post", id)
	} else if err != nil {
		return nil, fmt.Errorf("error reading post: %w", err)
	}

	// The author is assumed always resolvable; a dangling author id is a
	// store-level failure, not a NotFound.
	author, err := s.users.FindByID(post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("error resolving author %s: %w", post.AuthorID, err)
	}

	return &DraftDetail{
		ID:      post.ID,
		Title:   post.Title,
		Content: post.Content,
		Author:  Writer{ID: author.ID, Username: author.Username},
	}, nil
}

// Create persists a new post authored by the caller and returns its id.
// Publish=true publishes immediately; otherwise the post starts as a draft.
func (s *Service) Create(identity model.Identity, data FormData) (model.PostID, error) {
	if err := auth.RequireRole(identity, AllowedRoles...); err != nil {
		return 0, err
	}
	if err := validate.Struct(data); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	post := &model.Post{
		Title:     data.Title,
		Content:   data.Content,
		AuthorID:  identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if data.Publish {
		post.PublishedAt = &now
	}

	id, err := s.posts.Add(post)
	if err != nil {
		return 0, fmt.Errorf("error creating draft: %w", err)
	}

	draftLogger.Info().
		Int64("post_id", int64(id)).
		Str("author_id", string(identity.UserID)).
		Bool("published", data.Publish).
		Msg("Draft created")
	return id, nil
}

// Update applies title/content and, when Publish is set, stamps PublishedAt.
// Publishing is one-way: a false or omitted Publish never unpublishes.
// Existence is checked before ownership, so a non-owner probing a missing id
// sees NotFound rather than Forbidden.
func (s *Service) Update(identity model.Identity, id model.PostID, data FormData) error {
	if err := auth.RequireRole(identity, AllowedRoles...); err != nil {
		return err
	}
	if err := validate.Struct(data); err != nil {
		return err
	}

	post, err := s.posts.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("post", id)
	} else if err != nil {
		return fmt.Errorf("error reading post: %w", err)
	}

	if err := auth.RequireUser(identity, post.AuthorID); err != nil {
		return err
	}

	now := time.Now().UTC()
	post.Title = data.Title
	post.Content = data.Content
	post.UpdatedAt = now
	if data.Publish {
		post.PublishedAt = &now
	}

	if err := s.posts.Update(post); err != nil {
		return fmt.Errorf("error updating draft: %w", err)
	}
	return nil
}

func (s *Service) Delete(identity model.Identity, id model.PostID) error {
	if err := auth.RequireRole(identity, AllowedRoles...); err != nil {
		return err
	}

	post, err := s.posts.FindByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("post", id)
	} else if err != nil {
		return fmt.Errorf("error reading post: %w", err)
	}

	if err := auth.RequireUser(identity, post.AuthorID); err != nil {
		return err
	}

	if err := s.posts.Delete(id); err != nil {
		return fmt.Errorf("error deleting draft: %w", err)
	}

	draftLogger.Info().Int64("post_id", int64(id)).Msg("Draft deleted")
	return nil
}
