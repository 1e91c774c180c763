package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	domainerrors "github.com/editorcraftapp/editorcraft-server/internal/errors"
	"github.com/editorcraftapp/editorcraft-server/internal/id"
	"github.com/editorcraftapp/editorcraft-server/internal/store"
)

// ContentService manages append-only content snapshots for editor configurations.
type ContentService struct {
	store  store.Store
	editor *EditorService
	logger *slog.Logger
}

// NewContentService creates a new content service.
func NewContentService(store store.Store, editor *EditorService, logger *slog.Logger) *ContentService {
	return &ContentService{
		store:  store,
		editor: editor,
		logger: logger,
	}
}

// SaveContentRequest carries a content snapshot to persist.
type SaveContentRequest struct {
	ContentData any `json:"contentData" validate:"required"`
}

// SaveContent appends a new snapshot for the config and returns its assigned
// version. Earlier snapshots are never modified.
func (s *ContentService) SaveContent(ctx context.Context, userID, configID string, req SaveContentRequest) (int64, error) {
	if err := validate.Struct(req); err != nil {
		return 0, formatValidationError(err)
	}

	if _, err := s.editor.getOwnedConfig(ctx, userID, configID); err != nil {
		return 0, err
	}

	contentID, err := id.Generate("content")
	if err != nil {
		return 0, fmt.Errorf("generate content ID: %w", err)
	}

	content := &domain.EditorContent{
		ID:          contentID,
		ConfigID:    configID,
		ContentData: req.ContentData,
		CreatedAt:   time.Now(),
	}

	if err := s.store.AppendContent(ctx, content); err != nil {
		return 0, fmt.Errorf("append content: %w", err)
	}

	s.logger.Debug("content snapshot saved",
		"config_id", configID,
		"version", content.Version,
	)

	return content.Version, nil
}

// GetLatestContent returns the newest snapshot for the config, or nil when
// nothing has been saved yet.
func (s *ContentService) GetLatestContent(ctx context.Context, userID, configID string) (*domain.EditorContent, error) {
	if _, err := s.editor.getOwnedConfig(ctx, userID, configID); err != nil {
		return nil, err
	}

	content, err := s.store.GetLatestContent(ctx, configID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// No snapshot yet is not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("get latest content: %w", err)
	}
	return content, nil
}

// ListVersions returns every snapshot for the config, newest first.
func (s *ContentService) ListVersions(ctx context.Context, userID, configID string) ([]*domain.EditorContent, error) {
	if _, err := s.editor.getOwnedConfig(ctx, userID, configID); err != nil {
		return nil, err
	}

	versions, err := s.store.ListContentVersions(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("list content versions: %w", err)
	}
	return versions, nil
}

// GetVersion returns one specific snapshot for the config.
func (s *ContentService) GetVersion(ctx context.Context, userID, configID string, version int64) (*domain.EditorContent, error) {
	if _, err := s.editor.getOwnedConfig(ctx, userID, configID); err != nil {
		return nil, err
	}

	content, err := s.store.GetContentVersion(ctx, configID, version)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("version %d not found", version)
		}
		return nil, fmt.Errorf("get content version: %w", err)
	}
	return content, nil
}
