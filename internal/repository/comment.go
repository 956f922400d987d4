package repository

import (
	"fmt"

	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/model"
)

type DBCommentRepository struct { // implements CommentRepository
	db db.DB
}

func NewDBCommentRepository(db db.DB) *DBCommentRepository {
	return &DBCommentRepository{db: db}
}

func (r *DBCommentRepository) Add(comment *model.Comment) (model.CommentID, error) {
	res, err := r.db.Exec(
		`INSERT INTO comments (post_id, author_id, content, created_at) VALUES (?, ?, ?, ?)`,
		comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("error saving comment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading new comment id: %w", err)
	}
	comment.ID = model.CommentID(id)
	return comment.ID, nil
}

func (r *DBCommentRepository) ListByPost(postID model.PostID) ([]model.Comment, error) {
	rows, err := r.db.Query(
		`SELECT id, post_id, author_id, content, created_at FROM comments WHERE post_id = ? ORDER BY id`,
		postID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
