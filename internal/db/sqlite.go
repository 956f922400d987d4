package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	path string
	conn *sql.DB
}

func NewSQLite(path string) *SQLite {
	return &SQLite{
		path: path,
		conn: nil,
	}
}

func (s *SQLite) InitDB() error {
	var err error
	s.conn, err = sql.Open("sqlite3", s.path)
	if err != nil {
		return err
	}

	res, err := s.conn.Exec(`
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    email TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS user_roles (
    user_id TEXT NOT NULL,
    role TEXT NOT NULL,
    PRIMARY KEY (user_id, role),
    FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    content BLOB,
    author_id TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    published_at DATETIME,
    FOREIGN KEY(author_id) REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS comments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    post_id INTEGER NOT NULL,
    author_id TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    FOREIGN KEY(post_id) REFERENCES posts(id) ON DELETE CASCADE,
    FOREIGN KEY(author_id) REFERENCES users(id)
);`)

	dbLogger.Info().Any("db_result", res).Msg("Database initialized")
	return err
}

func (s *SQLite) Get() *sql.DB {
	return s.conn
}

func (s *SQLite) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *SQLite) Query(query string, args ...interface{}) (*sql.Rows, error) {
	dbLogger.Debug().Str("query", query).Msg("Query")
	return s.conn.Query(query, args...)
}

func (s *SQLite) QueryRow(query string, args ...interface{}) *sql.Row {
	dbLogger.Debug().Str("query", query).Msg("QueryRow")
	return s.conn.QueryRow(query, args...)
}

func (s *SQLite) Exec(query string, args ...interface{}) (sql.Result, error) {
	dbLogger.Debug().Str("query", query).Msg("Exec")
	return s.conn.Exec(query, args...)
}
