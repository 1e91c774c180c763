package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	"github.com/editorcraftapp/editorcraft-server/internal/embed"
	domainerrors "github.com/editorcraftapp/editorcraft-server/internal/errors"
	"github.com/editorcraftapp/editorcraft-server/internal/id"
	"github.com/editorcraftapp/editorcraft-server/internal/store"
)

// EditorService manages named editor configurations and their embed snippets.
type EditorService struct {
	store     store.Store
	generator *embed.Generator
	logger    *slog.Logger
}

// NewEditorService creates a new editor configuration service.
func NewEditorService(store store.Store, generator *embed.Generator, logger *slog.Logger) *EditorService {
	return &EditorService{
		store:     store,
		generator: generator,
		logger:    logger,
	}
}

// SaveConfigRequest contains the fields for creating or updating a configuration.
type SaveConfigRequest struct {
	Name       string            `json:"name" validate:"required,max=200"`
	ConfigData domain.ConfigData `json:"configData" validate:"required"`
}

// ListConfigs returns the user's configurations, newest first.
func (s *EditorService) ListConfigs(ctx context.Context, userID string) ([]*domain.EditorConfig, error) {
	configs, err := s.store.ListConfigsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list configs: %w", err)
	}
	return configs, nil
}

// CreateConfig creates a new configuration for the user. The embed snippet is
// generated from the configuration data before saving.
func (s *EditorService) CreateConfig(ctx context.Context, userID string, req SaveConfigRequest) (*domain.EditorConfig, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	embedCode, err := s.generator.Generate(req.ConfigData)
	if err != nil {
		return nil, fmt.Errorf("generate embed code: %w", err)
	}

	configID, err := id.Generate("cfg")
	if err != nil {
		return nil, fmt.Errorf("generate config ID: %w", err)
	}

	cfg := &domain.EditorConfig{
		ID:         configID,
		UserID:     userID,
		Name:       req.Name,
		ConfigData: req.ConfigData,
		EmbedCode:  embedCode,
		IsActive:   true,
	}
	cfg.InitTimestamps()

	if err := s.store.CreateConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("create config: %w", err)
	}

	s.logger.Info("editor config created",
		"config_id", configID,
		"user_id", userID,
		"name", req.Name,
	)

	return cfg, nil
}

// UpdateConfig replaces a configuration's name and data, regenerating the
// embed snippet. The config must belong to the user.
func (s *EditorService) UpdateConfig(ctx context.Context, userID, configID string, req SaveConfigRequest) (*domain.EditorConfig, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	cfg, err := s.getOwnedConfig(ctx, userID, configID)
	if err != nil {
		return nil, err
	}

	embedCode, err := s.generator.Generate(req.ConfigData)
	if err != nil {
		return nil, fmt.Errorf("generate embed code: %w", err)
	}

	cfg.Name = req.Name
	cfg.ConfigData = req.ConfigData
	cfg.EmbedCode = embedCode
	cfg.Touch()

	if err := s.store.UpdateConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("update config: %w", err)
	}

	return cfg, nil
}

// SetActive toggles a configuration's visibility without touching its data or
// embed snippet. The config must belong to the user.
func (s *EditorService) SetActive(ctx context.Context, userID, configID string, active bool) (*domain.EditorConfig, error) {
	err := s.store.SetConfigActive(ctx, userID, configID, active, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("configuration not found")
		}
		return nil, fmt.Errorf("set config active: %w", err)
	}
	return s.getOwnedConfig(ctx, userID, configID)
}

// DeleteConfig removes a configuration and its content snapshots.
// The config must belong to the user.
func (s *EditorService) DeleteConfig(ctx context.Context, userID, configID string) error {
	if _, err := s.getOwnedConfig(ctx, userID, configID); err != nil {
		return err
	}

	if err := s.store.DeleteConfig(ctx, configID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("configuration not found")
		}
		return fmt.Errorf("delete config: %w", err)
	}

	s.logger.Info("editor config deleted",
		"config_id", configID,
		"user_id", userID,
	)
	return nil
}

// GetPublicConfig returns an active configuration without its owner, for
// rendering an embedded editor. No authentication is required; inactive
// configurations read as missing.
func (s *EditorService) GetPublicConfig(ctx context.Context, configID string) (*domain.PublicConfig, error) {
	cfg, err := s.getActiveConfig(ctx, configID)
	if err != nil {
		return nil, err
	}
	return cfg.Public(), nil
}

// GetEmbedCode returns the stored embed snippet for an active configuration.
// This is the other half of the unauthenticated embedding contract.
func (s *EditorService) GetEmbedCode(ctx context.Context, configID string) (string, error) {
	cfg, err := s.getActiveConfig(ctx, configID)
	if err != nil {
		return "", err
	}
	return cfg.EmbedCode, nil
}

// getActiveConfig fetches a config for the public read paths. Inactive
// configs are reported as not found so deactivation hides them completely.
func (s *EditorService) getActiveConfig(ctx context.Context, configID string) (*domain.EditorConfig, error) {
	cfg, err := s.store.GetConfig(ctx, configID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("configuration not found")
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	if !cfg.IsActive {
		return nil, domainerrors.NotFound("configuration not found")
	}
	return cfg, nil
}

// getOwnedConfig fetches a config and checks it belongs to userID.
// An ownership miss reads the same as a missing config, so config IDs
// can't be probed.
func (s *EditorService) getOwnedConfig(ctx context.Context, userID, configID string) (*domain.EditorConfig, error) {
	cfg, err := s.store.GetConfig(ctx, configID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("configuration not found")
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	if cfg.UserID != userID {
		return nil, domainerrors.NotFound("configuration not found")
	}
	return cfg, nil
}
