// Package auth implements token issuance and verification, password hashing
// and the authorization checks used by the service layer.
package auth

import (
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/telmov/inkpress/internal/model"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	ErrNeedSigningKey = TokenError("cannot sign token without a signing key")
	ErrInvalidToken   = TokenError("invalid token")
)

// TokenManager signs and verifies the bearer tokens issued at login.
type TokenManager struct {
	key []byte
	ttl time.Duration
}

func NewTokenManager(key string, ttl time.Duration) *TokenManager {
	return &TokenManager{key: []byte(key), ttl: ttl}
}

// Issue signs a token carrying the user's id, username and role set.
func (tm *TokenManager) Issue(user *model.User) (string, error) {
	if len(tm.key) == 0 {
		return "", ErrNeedSigningKey
	}

	roles := make([]string, len(user.Roles))
	for i, r := range user.Roles {
		roles[i] = string(r)
	}

	now := time.Now()
	claims := jwtstd.MapClaims{
		"jti":      uuid.New().String(),
		"sub":      string(user.ID),
		"username": user.Username,
		"roles":    roles,
		"iat":      now.Unix(),
		"exp":      now.Add(tm.ttl).Unix(),
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString(tm.key)
}

// Verify parses and validates a token string and reconstructs the caller's
// identity from its claims.
func (tm *TokenManager) Verify(tokenString string) (model.Identity, error) {
	if len(tm.key) == 0 {
		return model.Identity{}, ErrNeedSigningKey
	}

	token, err := jwtstd.Parse(tokenString, func(token *jwtstd.Token) (any, error) {
		if _, ok := token.Method.(*jwtstd.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.key, nil
	})
	if err != nil {
		return model.Identity{}, err
	}
	if !token.Valid {
		return model.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtstd.MapClaims)
	if !ok {
		return model.Identity{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.Identity{}, ErrInvalidToken
	}

	identity := model.Identity{UserID: model.UserID(sub)}
	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	}
	if raw, ok := claims["roles"].([]any); ok {
		for _, item := range raw {
			if role, ok := item.(string); ok {
				identity.Roles = append(identity.Roles, model.Role(role))
			}
		}
	}

	return identity, nil
}
