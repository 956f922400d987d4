// Package model defines core data structures and types for the blog platform.
package model

import "time"

type UserID string

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// Argon2id encoded hash; never serialized.
	PasswordHash string `json:"-"`

	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}
