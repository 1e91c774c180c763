package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editorcraftapp/editorcraft-server/internal/domain"
	domainerrors "github.com/editorcraftapp/editorcraft-server/internal/errors"
)

// newContentFixture registers a user with one config and returns both IDs.
func newContentFixture(t *testing.T, env *testEnv) (userID, configID string) {
	t.Helper()
	userID = env.registerUser(t, "alice@example.com")
	cfg, err := env.editor.CreateConfig(context.Background(), userID, SaveConfigRequest{
		Name:       "Editor",
		ConfigData: domain.ConfigData{"theme": "dark"},
	})
	require.NoError(t, err)
	return userID, cfg.ID
}

func TestSaveContent_VersionsIncrement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, configID := newContentFixture(t, env)

	v1, err := env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>draft one</p>"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	v2, err := env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>draft two</p>"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)
}

func TestSaveContent_RequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, configID := newContentFixture(t, env)
	bob := env.registerUser(t, "bob@example.com")

	_, err := env.content.SaveContent(ctx, bob, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>intruder</p>"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSaveContent_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, configID := newContentFixture(t, env)

	_, err := env.content.SaveContent(ctx, userID, configID, SaveContentRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestGetLatestContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, configID := newContentFixture(t, env)

	// Nothing saved yet: nil, no error.
	content, err := env.content.GetLatestContent(ctx, userID, configID)
	require.NoError(t, err)
	assert.Nil(t, content)

	_, err = env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>one</p>"},
	})
	require.NoError(t, err)
	_, err = env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>two</p>"},
	})
	require.NoError(t, err)

	content, err = env.content.GetLatestContent(ctx, userID, configID)
	require.NoError(t, err)
	require.NotNil(t, content)
	assert.Equal(t, int64(2), content.Version)

	data, ok := content.ContentData.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "<p>two</p>", data["html"])
}

func TestListVersions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, configID := newContentFixture(t, env)

	for range 3 {
		_, err := env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
			ContentData: map[string]any{"html": "<p>x</p>"},
		})
		require.NoError(t, err)
	}

	versions, err := env.content.ListVersions(ctx, userID, configID)
	require.NoError(t, err)
	require.Len(t, versions, 3)

	// Newest first, and older snapshots are untouched.
	assert.Equal(t, int64(3), versions[0].Version)
	assert.Equal(t, int64(1), versions[2].Version)
}

func TestGetVersion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	userID, configID := newContentFixture(t, env)

	_, err := env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>original</p>"},
	})
	require.NoError(t, err)
	_, err = env.content.SaveContent(ctx, userID, configID, SaveContentRequest{
		ContentData: map[string]any{"html": "<p>revised</p>"},
	})
	require.NoError(t, err)

	content, err := env.content.GetVersion(ctx, userID, configID, 1)
	require.NoError(t, err)
	data, ok := content.ContentData.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "<p>original</p>", data["html"])

	_, err = env.content.GetVersion(ctx, userID, configID, 42)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
