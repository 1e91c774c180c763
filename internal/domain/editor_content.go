package domain

import "time"

// EditorContent is one versioned snapshot of the editable content belonging to
// a configuration. Snapshots are append-only: a save always inserts a new row
// with the next version number, and for a given config the versions form a
// gapless sequence starting at 1. The current content is the row with the
// highest version.
type EditorContent struct {
	ID          string    `json:"id"`
	ConfigID    string    `json:"config_id"`
	ContentData any       `json:"content_data"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
}
