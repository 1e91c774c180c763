package domain

import "time"

// ConfigData is the schema-less rendering configuration for an editor widget.
// It typically carries theme, fontSize, height, width, and a features map, but
// the store treats it as an opaque JSON document. Shape validation happens at
// the API boundary.
type ConfigData map[string]any

// Features returns the feature-flag map from the config data, or nil if the
// document has no features key (or it has the wrong shape).
func (c ConfigData) Features() map[string]bool {
	raw, ok := c["features"].(map[string]any)
	if !ok {
		return nil
	}
	features := make(map[string]bool, len(raw))
	for name, v := range raw {
		if enabled, ok := v.(bool); ok {
			features[name] = enabled
		}
	}
	return features
}

// EditorConfig is a named, user-owned set of editor rendering options plus its
// derived embed snippet.
//
// EmbedCode is always a pure function of ConfigData: the two are written
// together on every create and update so they can never drift apart.
type EditorConfig struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	ConfigData ConfigData `json:"config_data"`
	EmbedCode  string     `json:"embed_code"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Touch updates the config's modification timestamp.
func (c *EditorConfig) Touch() {
	c.UpdatedAt = time.Now()
}

// InitTimestamps sets creation and modification timestamps for a new config.
func (c *EditorConfig) InitTimestamps() {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// PublicConfig is the unauthenticated projection of an active EditorConfig,
// served to third-party embedding pages.
type PublicConfig struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	ConfigData ConfigData `json:"config_data"`
	EmbedCode  string     `json:"embed_code"`
}

// Public returns the projection of the config exposed on the public API.
func (c *EditorConfig) Public() *PublicConfig {
	return &PublicConfig{
		ID:         c.ID,
		Name:       c.Name,
		ConfigData: c.ConfigData,
		EmbedCode:  c.EmbedCode,
	}
}
