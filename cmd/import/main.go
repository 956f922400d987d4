// Imports a directory of .md files as published posts owned by one author.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/telmov/inkpress/internal/config"
	"github.com/telmov/inkpress/internal/db"
	"github.com/telmov/inkpress/internal/model"
	"github.com/telmov/inkpress/internal/repository"
)

func main() {
	// Define command-line flags
	path := flag.String("path", "", "Path to the directory containing .md files")
	authorID := flag.String("author-id", "", "Author user ID for the posts")
	configPath := flag.String("config", "config.yaml", "Path to the config file")
	flag.Parse()

	// Validate required flags
	if *path == "" || *authorID == "" {
		log.Fatal("Both --path and --author-id flags are required")
	}

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize the SQLite database and ensure tables exist
	database := db.NewSQLite(config.AppConfig.Database.Path)
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.Close()

	// Create a repository instance to interact with the database
	repo := repository.NewDBPostRepository(database)

	// Read all files from the specified directory
	files, err := os.ReadDir(*path)
	if err != nil {
		log.Fatalf("Error reading directory %s: %v", *path, err)
	}

	// Process each .md file
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), ".md") {
			err := processFile(*path, file, repo, model.UserID(*authorID))
			if err != nil {
				log.Printf("Error processing file %s: %v", file.Name(), err)
				continue
			}
			log.Printf("Successfully imported post from file: %s", file.Name())
		}
	}
}

// processFile imports a single .md file as a published post.
func processFile(dirPath string, file os.DirEntry, repo repository.PostRepository, authorID model.UserID) error {
	filePath := filepath.Join(dirPath, file.Name())

	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	post := &model.Post{
		Title:       titleFor(file.Name(), content),
		Content:     string(content),
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: &now,
	}

	_, err = repo.Add(post)
	return err
}

// titleFor uses the first level-one heading, falling back to the file name.
func titleFor(filename string, content []byte) string {
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return strings.TrimSuffix(filename, ".md")
}
