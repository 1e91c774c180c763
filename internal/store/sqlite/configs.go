package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	"github.com/editorcraftapp/editorcraft-server/internal/store"
)

// configColumns is the ordered list of columns selected in editor config queries.
// Must match the scan order in scanConfig.
const configColumns = `id, user_id, name, config_data, embed_code, is_active, created_at, updated_at`

// scanConfig scans a sql.Row (or sql.Rows via its Scan method) into a domain.EditorConfig.
func scanConfig(scanner interface{ Scan(dest ...any) error }) (*domain.EditorConfig, error) {
	var c domain.EditorConfig

	var (
		configData string
		isActive   int
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&configData,
		&c.EmbedCode,
		&isActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(configData), &c.ConfigData); err != nil {
		return nil, fmt.Errorf("decode config data for %s: %w", c.ID, err)
	}

	c.IsActive = isActive != 0

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateConfig inserts a new editor configuration.
// Returns store.ErrAlreadyExists if the ID is already taken.
func (s *Store) CreateConfig(ctx context.Context, cfg *domain.EditorConfig) error {
	configData, err := json.Marshal(cfg.ConfigData)
	if err != nil {
		return fmt.Errorf("encode config data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO editor_configs (id, user_id, name, config_data, embed_code, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.ID,
		cfg.UserID,
		cfg.Name,
		string(configData),
		cfg.EmbedCode,
		boolToInt(cfg.IsActive),
		formatTime(cfg.CreatedAt),
		formatTime(cfg.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetConfig retrieves an editor configuration by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetConfig(ctx context.Context, id string) (*domain.EditorConfig, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+configColumns+` FROM editor_configs WHERE id = ?`, id)

	c, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListConfigsByUser returns all configurations owned by the user, newest first.
func (s *Store) ListConfigsByUser(ctx context.Context, userID string) ([]*domain.EditorConfig, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+configColumns+` FROM editor_configs WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.EditorConfig
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return configs, nil
}

// UpdateConfig performs a full row update on an existing configuration.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) UpdateConfig(ctx context.Context, cfg *domain.EditorConfig) error {
	configData, err := json.Marshal(cfg.ConfigData)
	if err != nil {
		return fmt.Errorf("encode config data: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE editor_configs SET
			name = ?,
			config_data = ?,
			embed_code = ?,
			is_active = ?,
			updated_at = ?
		WHERE id = ?`,
		cfg.Name,
		string(configData),
		cfg.EmbedCode,
		boolToInt(cfg.IsActive),
		formatTime(cfg.UpdatedAt),
		cfg.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// SetConfigActive toggles a configuration's visibility flag without touching
// its data or embed code.
// Returns store.ErrNotFound if the config does not exist or isn't owned by the user.
func (s *Store) SetConfigActive(ctx context.Context, userID, configID string, active bool, updatedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE editor_configs SET is_active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		boolToInt(active), formatTime(updatedAt), configID, userID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteConfig removes a configuration. Content rows cascade via foreign keys.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteConfig(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM editor_configs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
