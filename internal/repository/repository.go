// Package repository provides persistence for users, posts and comments over
// the SQLite store. Lookups that miss return sql.ErrNoRows; the service layer
// maps that to its NotFound kind.
package repository

import (
	"github.com/rs/zerolog"

	"github.com/telmov/inkpress/internal/model"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

// PostWithAuthor is the join row used by listings and detail reads.
type PostWithAuthor struct {
	Post   model.Post
	Author model.User
}

type PostRepository interface {
	// ListUnpublishedWithAuthor returns every draft joined with its author,
	// in primary-key order.
	ListUnpublishedWithAuthor() ([]PostWithAuthor, error)

	// ListPublished returns a page of published posts joined with their
	// authors, newest-published first.
	ListPublished(offset, limit int) ([]PostWithAuthor, error)
	CountPublished() (int, error)

	FindByID(id model.PostID) (*model.Post, error)
	FindPublishedByID(id model.PostID) (*PostWithAuthor, error)

	Add(post *model.Post) (model.PostID, error)
	Update(post *model.Post) error
	Delete(id model.PostID) error
}

type UserRepository interface {
	FindByID(id model.UserID) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)

	// Add persists the user together with its role memberships.
	Add(user *model.User) error
	Delete(id model.UserID) error
}

type CommentRepository interface {
	Add(comment *model.Comment) (model.CommentID, error)
	ListByPost(postID model.PostID) ([]model.Comment, error)
}
