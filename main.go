package main

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/telmov/inkpress/internal/auth"
	"github.com/telmov/inkpress/internal/config"
	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/httpapi"
	"github.com/telmov/inkpress/internal/logger"
	"github.com/telmov/inkpress/internal/repository"
	"github.com/telmov/inkpress/internal/service/account"
	"github.com/telmov/inkpress/internal/service/blog"
	"github.com/telmov/inkpress/internal/service/draft"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := config.LoadConfig("config.yaml"); err != nil {
		panic(err)
	}
	cfg := config.AppConfig

	l := logger.New(cfg.Logging.Level)
	config.SetLogger(l)
	db.SetLogger(l)
	repository.SetLogger(l)
	account.SetLogger(l)
	blog.SetLogger(l)
	draft.SetLogger(l)
	httpapi.SetLogger(l)

	signingKey := cfg.SigningKey()
	if signingKey == "" {
		l.Fatal().Str("env", cfg.Auth.SigningKeyEnv).Msg("JWT signing key not set")
	}

	database := db.NewSQLite(cfg.Database.Path)
	if err := database.InitDB(); err != nil {
		l.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer database.Close()

	posts := repository.NewDBPostRepository(database)
	users := repository.NewDBUserRepository(database)
	comments := repository.NewDBCommentRepository(database)

	tokens := auth.NewTokenManager(signingKey, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	accountService := account.NewService(users, tokens)
	draftService := draft.NewService(posts, users)
	blogService := blog.NewService(posts, comments, cfg.Content.PostsPerPage, cfg.Content.SyntaxTheme)

	router := httpapi.NewRouter(
		tokens,
		httpapi.NewAuthHandler(accountService),
		httpapi.NewDraftHandler(draftService),
		httpapi.NewBlogHandler(blogService),
		l,
	)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	l.Info().Str("addr", addr).Str("site", cfg.Site.Name).Msg("Server starting")
	if err := router.Run(addr); err != nil {
		l.Fatal().Err(err).Msg("Server stopped")
	}
}
