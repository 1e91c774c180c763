// Package main provides a tool to seed the database with a demo account.
//
// It creates a demo user, an active editor configuration, and a couple of
// content snapshots so the dashboard and embed flow can be exercised right
// after a fresh install.
//
// Usage:
//
//	DB_PATH=~/editorcraft/editorcraft.db go run ./cmd/seed
//	DB_PATH=~/editorcraft/editorcraft.db go run ./cmd/seed --email demo@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/editorcraftapp/editorcraft-server/internal/auth"
	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	"github.com/editorcraftapp/editorcraft-server/internal/embed"
	"github.com/editorcraftapp/editorcraft-server/internal/id"
	"github.com/editorcraftapp/editorcraft-server/internal/store/sqlite"
)

var (
	email    = flag.String("email", "demo@editorcraft.local", "Email for the demo account")
	password = flag.String("password", "demo-password", "Password for the demo account")
	baseURL  = flag.String("base-url", "http://localhost:3000", "Public base URL used in the embed snippet")
)

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/editorcraft/editorcraft.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	user, err := s.GetUserByEmail(ctx, *email)
	if err == nil {
		fmt.Printf("User %s already exists (%s), reusing\n", user.Email, user.ID)
	} else {
		hash, err := auth.HashPassword(*password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user = &domain.User{
			ID:           id.MustGenerate("user"),
			Email:        *email,
			PasswordHash: hash,
			Name:         "Demo User",
		}
		user.InitTimestamps()

		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	}

	configData := domain.ConfigData{
		"theme":    "dark",
		"fontSize": 16,
		"features": map[string]any{
			"bold":   true,
			"italic": true,
			"lists":  true,
		},
	}

	generator := embed.NewGenerator(*baseURL)
	embedCode, err := generator.Generate(configData)
	if err != nil {
		log.Fatalf("Failed to generate embed code: %v", err)
	}

	cfg := &domain.EditorConfig{
		ID:         id.MustGenerate("cfg"),
		UserID:     user.ID,
		Name:       "Demo Editor",
		ConfigData: configData,
		EmbedCode:  embedCode,
		IsActive:   true,
	}
	cfg.InitTimestamps()

	if err := s.CreateConfig(ctx, cfg); err != nil {
		log.Fatalf("Failed to create config: %v", err)
	}
	fmt.Printf("Created config %q (%s)\n", cfg.Name, cfg.ID)

	snapshots := []any{
		map[string]any{"html": "<p>Welcome to EditorCraft.</p>"},
		map[string]any{"html": "<p>Welcome to EditorCraft.</p><p>Edit me!</p>"},
	}
	for _, data := range snapshots {
		content := &domain.EditorContent{
			ID:          id.MustGenerate("content"),
			ConfigID:    cfg.ID,
			ContentData: data,
			CreatedAt:   time.Now(),
		}

		if err := s.AppendContent(ctx, content); err != nil {
			log.Fatalf("Failed to append content: %v", err)
		}
		fmt.Printf("Saved content version %d\n", content.Version)
	}

	fmt.Println("\nDone. Log in with:")
	fmt.Printf("  email:    %s\n", *email)
	fmt.Printf("  password: %s\n", *password)
}
