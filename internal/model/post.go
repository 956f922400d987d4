package model

import "time"

type PostID int64

type Post struct {
	ID PostID

	Title   string
	Content string

	AuthorID UserID

	CreatedAt time.Time
	UpdatedAt time.Time

	// A nil PublishedAt marks the post as a draft. The transition is
	// one-way: once set it is never cleared.
	PublishedAt *time.Time
}

func (p *Post) IsDraft() bool {
	return p.PublishedAt == nil
}
