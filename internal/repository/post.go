package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/util/compression"
)

type DBPostRepository struct { // implements PostRepository
	db         db.DB
	compressor compression.Compressor
}

func NewDBPostRepository(db db.DB) *DBPostRepository {
	return &DBPostRepository{
		db: db,

		compressor: compression.ZstdCompressor{},
	}
}

func (r *DBPostRepository) ListUnpublishedWithAuthor() ([]PostWithAuthor, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.title, p.author_id, p.created_at, p.updated_at,
		       u.id, u.username
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.published_at IS NULL
		ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("error querying drafts: %w", err)
	}
	defer rows.Close()

	drafts := make([]PostWithAuthor, 0)
	for rows.Next() {
		var row PostWithAuthor
		err := rows.Scan(
			&row.Post.ID, &row.Post.Title, &row.Post.AuthorID,
			&row.Post.CreatedAt, &row.Post.UpdatedAt,
			&row.Author.ID, &row.Author.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning draft: %w", err)
		}
		drafts = append(drafts, row)
	}
	return drafts, rows.Err()
}

func (r *DBPostRepository) ListPublished(offset, limit int) ([]PostWithAuthor, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.title, p.author_id, p.created_at, p.updated_at, p.published_at,
		       u.id, u.username
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.published_at IS NOT NULL
		ORDER BY p.published_at DESC, p.id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error querying published posts: %w", err)
	}
	defer rows.Close()

	posts := make([]PostWithAuthor, 0)
	for rows.Next() {
		var row PostWithAuthor
		var publishedAt sql.NullTime
		err := rows.Scan(
			&row.Post.ID, &row.Post.Title, &row.Post.AuthorID,
			&row.Post.CreatedAt, &row.Post.UpdatedAt, &publishedAt,
			&row.Author.ID, &row.Author.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning published post: %w", err)
		}
		if publishedAt.Valid {
			t := publishedAt.Time
			row.Post.PublishedAt = &t
		}
		posts = append(posts, row)
	}
	return posts, rows.Err()
}

func (r *DBPostRepository) CountPublished() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE published_at IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting published posts: %w", err)
	}
	return count, nil
}

func (r *DBPostRepository) FindByID(id model.PostID) (*model.Post, error) {
	var post model.Post
	var compressed []byte
	var publishedAt sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, title, content, author_id, created_at, updated_at, published_at
		FROM posts WHERE id = ?`, id).
		Scan(&post.ID, &post.Title, &compressed, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt, &publishedAt)
	if err != nil {
		return nil, err
	}

	content, err := r.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing content: %w", err)
	}
	post.Content = string(content)

	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	return &post, nil
}

func (r *DBPostRepository) FindPublishedByID(id model.PostID) (*PostWithAuthor, error) {
	var row PostWithAuthor
	var compressed []byte
	var publishedAt sql.NullTime

	err := r.db.QueryRow(`
		SELECT p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at, p.published_at,
		       u.id, u.username
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = ? AND p.published_at IS NOT NULL`, id).
		Scan(&row.Post.ID, &row.Post.Title, &compressed, &row.Post.AuthorID,
			&row.Post.CreatedAt, &row.Post.UpdatedAt, &publishedAt,
			&row.Author.ID, &row.Author.Username)
	if err != nil {
		return nil, err
	}

	content, err := r.compressor.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("error decompressing content: %w", err)
	}
	row.Post.Content = string(content)

	if publishedAt.Valid {
		t := publishedAt.Time
		row.Post.PublishedAt = &t
	}
	return &row, nil
}

func (r *DBPostRepository) Add(post *model.Post) (model.PostID, error) {
	compressed, err := r.compressor.Compress([]byte(post.Content))
	if err != nil {
		return 0, fmt.Errorf("error compressing content: %w", err)
	}

	res, err := r.db.Exec(
		`INSERT INTO posts (title, content, author_id, created_at, updated_at, published_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		post.Title, compressed, post.AuthorID, post.CreatedAt, post.UpdatedAt, nullableTime(post.PublishedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("error saving post: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("error reading new post id: %w", err)
	}
	post.ID = model.PostID(id)

	repoLogger.Debug().Int64("post_id", id).Msg("Post saved")
	return post.ID, nil
}

func (r *DBPostRepository) Update(post *model.Post) error {
	compressed, err := r.compressor.Compress([]byte(post.Content))
	if err != nil {
		return fmt.Errorf("error compressing content: %w", err)
	}

	res, err := r.db.Exec(
		`UPDATE posts SET title = ?, content = ?, updated_at = ?, published_at = ? WHERE id = ?`,
		post.Title, compressed, post.UpdatedAt, nullableTime(post.PublishedAt), post.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	repoLogger.Debug().Interface("result", res).Msg("Post updated")
	return nil
}

func (r *DBPostRepository) Delete(id model.PostID) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
