package store

import (
	"context"
	"time"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
)

// Store is the persistence interface the service layer depends on.
// The SQLite implementation lives in store/sqlite.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error

	// Editor configurations
	CreateConfig(ctx context.Context, cfg *domain.EditorConfig) error
	GetConfig(ctx context.Context, id string) (*domain.EditorConfig, error)
	ListConfigsByUser(ctx context.Context, userID string) ([]*domain.EditorConfig, error)
	UpdateConfig(ctx context.Context, cfg *domain.EditorConfig) error
	SetConfigActive(ctx context.Context, userID, configID string, active bool, updatedAt time.Time) error
	DeleteConfig(ctx context.Context, id string) error

	// Content snapshots
	AppendContent(ctx context.Context, content *domain.EditorContent) error
	GetLatestContent(ctx context.Context, configID string) (*domain.EditorContent, error)
	ListContentVersions(ctx context.Context, configID string) ([]*domain.EditorContent, error)
	GetContentVersion(ctx context.Context, configID string, version int64) (*domain.EditorContent, error)

	Close() error
}
