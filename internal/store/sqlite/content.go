package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	"github.com/editorcraftapp/editorcraft-server/internal/store"
)

// contentColumns is the ordered list of columns selected in content queries.
// Must match the scan order in scanContent.
const contentColumns = `id, config_id, content_data, version, created_at`

// scanContent scans a sql.Row (or sql.Rows via its Scan method) into a domain.EditorContent.
func scanContent(scanner interface{ Scan(dest ...any) error }) (*domain.EditorContent, error) {
	var c domain.EditorContent

	var (
		contentData string
		createdAt   string
	)

	err := scanner.Scan(
		&c.ID,
		&c.ConfigID,
		&contentData,
		&c.Version,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(contentData), &c.ContentData); err != nil {
		return nil, fmt.Errorf("decode content data for %s: %w", c.ID, err)
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// AppendContent inserts a new content snapshot for the config, assigning it
// the next version number. Version assignment and insert happen in one
// transaction so concurrent saves get distinct versions.
// The assigned version is written back to content.Version.
func (s *Store) AppendContent(ctx context.Context, content *domain.EditorContent) error {
	contentData, err := json.Marshal(content.ContentData)
	if err != nil {
		return fmt.Errorf("encode content data: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var version int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM editor_content WHERE config_id = ?`,
		content.ConfigID).Scan(&version)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO editor_content (id, config_id, content_data, version, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		content.ID,
		content.ConfigID,
		string(contentData),
		version,
		formatTime(content.CreatedAt),
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	content.Version = version
	return nil
}

// GetLatestContent returns the newest content snapshot for the config.
// Returns store.ErrNotFound if no snapshot has been saved yet.
func (s *Store) GetLatestContent(ctx context.Context, configID string) (*domain.EditorContent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM editor_content
		WHERE config_id = ? ORDER BY version DESC LIMIT 1`, configID)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListContentVersions returns all snapshots for the config, newest first.
func (s *Store) ListContentVersions(ctx context.Context, configID string) ([]*domain.EditorContent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contentColumns+` FROM editor_content
		WHERE config_id = ? ORDER BY version DESC`, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []*domain.EditorContent
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetContentVersion returns one specific snapshot for the config.
// Returns store.ErrNotFound if that version does not exist.
func (s *Store) GetContentVersion(ctx context.Context, configID string, version int64) (*domain.EditorContent, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contentColumns+` FROM editor_content
		WHERE config_id = ? AND version = ?`, configID, version)

	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
