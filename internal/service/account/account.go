// Package account implements login, registration and current-user lookup.
package account

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/telmov/inkpress/internal/apperr"
	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/repository"
	"github.com/telmov/inkpress/internal/validate"
)

var accountLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	accountLogger = l
}

// ErrInvalidCredentials is deliberately generic: login failures never reveal
// whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterData struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserInfo struct {
	ID       model.UserID `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Roles    []model.Role `json:"roles"`
}

type Service struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewService(users repository.UserRepository, tokens *auth.TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login verifies the credentials and returns a signed bearer token.
func (s *Service) Login(creds Credentials) (string, error) {
	if err := validate.Struct(creds); err != nil {
		return "", err
	}

	user, err := s.users.FindByEmail(creds.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	} else if err != nil {
		return "", fmt.Errorf("error reading user: %w", err)
	}

	if !auth.VerifyPassword(creds.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}

	accountLogger.Info().Str("user_id", string(user.ID)).Msg("User logged in")
	return token, nil
}

// Register creates a Reader-role user. Roles are assigned once at creation;
// elevated roles come from seeding, not self-registration.
func (s *Service) Register(data RegisterData) (*UserInfo, error) {
	if err := validate.Struct(data); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByUsername(data.Username); err == nil {
		return nil, apperr.ValidationField("username", "is already taken")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	if _, err := s.users.FindByEmail(data.Email); err == nil {
		return nil, apperr.ValidationField("email", "is already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error reading user: %w", err)
	}

	hash, err := auth.HashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &model.User{
		ID:           model.UserID(uuid.New().String()),
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: hash,
		Roles:        []model.Role{model.RoleReader},
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Add(user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	accountLogger.Info().Str("user_id", string(user.ID)).Str("username", user.Username).Msg("User registered")
	return userInfo(user), nil
}

// UserInfo resolves the caller's account details from their identity.
func (s *Service) UserInfo(identity model.Identity) (*UserInfo, error) {
	user, err := s.users.FindByID(identity.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user", identity.UserID)
	} else if err != nil {
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	return userInfo(user), nil
}

func userInfo(user *model.User) *UserInfo {
	return &UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}
}
