// Seeds the database with the default role accounts and a first published
// post, so a fresh install has something to log in with. Safe to run twice.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/config"
	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/repository"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the config file")
	flag.Parse()

	_ = godotenv.Load()

	if err := config.LoadConfig(*configPath); err != nil {
		fatal(err)
	}
	cfg := config.AppConfig

	database := db.NewSQLite(cfg.Database.Path)
	if err := database.InitDB(); err != nil {
		fatal(err)
	}
	defer database.Close()

	users := repository.NewDBUserRepository(database)
	posts := repository.NewDBPostRepository(database)

	password := os.Getenv("INKPRESS_SEED_PASSWORD")
	if password == "" {
		password = "S3cret!"
	}

	admin, err := seedUser(users, "admin@example.com", password, model.RoleAdmin)
	if err != nil {
		fatal(err)
	}
	if _, err := seedUser(users, "editor@example.com", password, model.RoleEditor); err != nil {
		fatal(err)
	}
	if _, err := seedUser(users, "reader@example.com", password, model.RoleReader); err != nil {
		fatal(err)
	}

	if err := seedFirstPost(posts, admin.ID); err != nil {
		fatal(err)
	}

	fmt.Println(okStyle.Render("Seeding complete."))
}

// seedUser creates username@example.com-style accounts, one role each.
// Existing accounts are left untouched.
func seedUser(users repository.UserRepository, email, password string, role model.Role) (*model.User, error) {
	existing, err := users.FindByEmail(email)
	if err == nil {
		fmt.Println(skipStyle.Render("skip  " + email + " (exists)"))
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           model.UserID(uuid.New().String()),
		Username:     email,
		Email:        email,
		PasswordHash: hash,
		Roles:        []model.Role{role},
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Add(user); err != nil {
		return nil, err
	}

	fmt.Println(okStyle.Render("seed  ") + email + " (" + string(role) + ")")
	return user, nil
}

func seedFirstPost(posts repository.PostRepository, authorID model.UserID) error {
	count, err := posts.CountPublished()
	if err != nil {
		return err
	}
	if count > 0 {
		fmt.Println(skipStyle.Render("skip  first post (posts exist)"))
		return nil
	}

	now := time.Now().UTC()
	post := &model.Post{
		Title:       "First post",
		Content:     "This is the first post",
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: &now,
	}
	id, err := posts.Add(post)
	if err != nil {
		return err
	}

	fmt.Println(okStyle.Render("seed  ") + fmt.Sprintf("first post (id %d)", id))
	return nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errStyle.Render("Error: ")+err.Error())
	os.Exit(1)
}
