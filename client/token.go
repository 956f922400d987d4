// Package client is a Go client for the Inkpress API. It keeps the bearer
// token in durable storage so sessions survive restarts, and re-resolves the
// current user whenever the token changes.
package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenKey is the fixed name the token is stored under.
const TokenKey = "jwt"

// TokenStore persists the bearer token as a file in a state directory.
// An absent file means no session.
type TokenStore struct {
	mu   sync.Mutex
	path string
}

func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{path: filepath.Join(dir, TokenKey)}
}

func (s *TokenStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Set stores the token; an empty token clears the session.
func (s *TokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		err := os.Remove(s.path)
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}
