package repository

import (
	"fmt"

	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/model"
)

type DBUserRepository struct { // implements UserRepository
	db db.DB
}

func NewDBUserRepository(db db.DB) *DBUserRepository {
	return &DBUserRepository{db: db}
}

func (r *DBUserRepository) FindByID(id model.UserID) (*model.User, error) {
	return r.findBy(`id = ?`, id)
}

func (r *DBUserRepository) FindByEmail(email string) (*model.User, error) {
	return r.findBy(`email = ?`, email)
}

func (r *DBUserRepository) FindByUsername(username string) (*model.User, error) {
	return r.findBy(`username = ?`, username)
}

func (r *DBUserRepository) findBy(where string, arg any) (*model.User, error) {
	var user model.User
	err := r.db.QueryRow(
		`SELECT id, username, email, password_hash, created_at FROM users WHERE `+where, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	roles, err := r.rolesFor(user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles

	return &user, nil
}

func (r *DBUserRepository) rolesFor(id model.UserID) ([]model.Role, error) {
	rows, err := r.db.Query(`SELECT role FROM user_roles WHERE user_id = ? ORDER BY role`, id)
	if err != nil {
		return nil, fmt.Errorf("error querying roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var role model.Role
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("error scanning role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *DBUserRepository) Add(user *model.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, username, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving user: %w", err)
	}

	for _, role := range user.Roles {
		_, err := r.db.Exec(`INSERT INTO user_roles (user_id, role) VALUES (?, ?)`, user.ID, role)
		if err != nil {
			return fmt.Errorf("error saving role: %w", err)
		}
	}

	repoLogger.Debug().Str("user_id", string(user.ID)).Msg("User saved")
	return nil
}

func (r *DBUserRepository) Delete(id model.UserID) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}
