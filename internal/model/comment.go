package model

import "time"

type CommentID int64

type Comment struct {
	ID        CommentID
	PostID    PostID
	AuthorID  UserID
	Content   string
	CreatedAt time.Time
}
