package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/editorcraftapp/editorcraft-server/internal/auth"
	"github.com/editorcraftapp/editorcraft-server/internal/embed"
	"github.com/editorcraftapp/editorcraft-server/internal/store/sqlite"
)

// testEnv bundles the services under test, all backed by one temp database.
type testEnv struct {
	auth    *AuthService
	editor  *EditorService
	content *ContentService
	tokens  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i + 1)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	generator := embed.NewGenerator("http://localhost:3000")

	authSvc := NewAuthService(s, tokens, logger)
	editorSvc := NewEditorService(s, generator, logger)
	contentSvc := NewContentService(s, editorSvc, logger)

	return &testEnv{
		auth:    authSvc,
		editor:  editorSvc,
		content: contentSvc,
		tokens:  tokens,
	}
}

// registerUser registers a user and returns its ID.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), RegisterRequest{
		Email:    email,
		Password: "a secure password",
		Name:     "Test User",
	})
	require.NoError(t, err)
	return resp.User.ID
}
