package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/internal/storetest"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func setupBackend(t *testing.T, config types.Config) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) types.Service {
		return setupBackend(t, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	})
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, DatabaseFile))
	assert.NoError(t, err, "propai.db created")

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	setupBackend(t, types.Config{Backend: types.BackendSQLite, DataDir: dir})

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBackend_PersistsAcrossAttach(t *testing.T) {
	ctx := context.Background()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	col, err := b.Collections().Create(ctx, types.Collection{UserID: "u1", Name: "Saved", PropertyIDs: []string{"7", "7"}})
	require.NoError(t, err)
	_, err = b.Users().Create(ctx, types.User{Email: "kept@example.com", Name: "Kept", Role: types.RoleSeller})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	_, err = b.Collections().List(ctx)
	assert.ErrorIs(t, err, types.ErrServiceDetached)

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	got, err := b.Collections().Get(ctx, col.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *col, *got)

	_, err = b.Users().Create(ctx, types.User{Email: "kept@example.com", Name: "Again", Role: types.RoleBuyer})
	assert.ErrorIs(t, err, types.ErrEmailTaken)
}

func TestBackend_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir(), Seed: true}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	require.NoError(t, b.Detach())
	require.NoError(t, b.Attach(config))
	defer b.Detach()

	props, err := b.Properties().List(ctx)
	require.NoError(t, err)
	assert.Len(t, props, 6)

	jane, err := b.Users().ByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, jane)
	require.NotNil(t, jane.Avatar)
	assert.Equal(t, types.RoleSeller, jane.Role)

	favs, err := b.Collections().WithProperty(ctx, "4")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Favorites", favs[0].Name)
}

func TestBackend_CancelledContext(t *testing.T) {
	b := setupBackend(t, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Properties().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackend_AvatarRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := setupBackend(t, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})

	u, err := b.Users().Create(ctx, types.User{Email: "a@example.com", Name: "A", Role: types.RoleBuyer})
	require.NoError(t, err)

	got, err := b.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Avatar)

	updated, err := b.Users().Update(ctx, u.ID, types.UserPatch{Avatar: types.Ptr("https://example.com/a.png")})
	require.NoError(t, err)
	require.NotNil(t, updated.Avatar)

	got, err = b.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, "https://example.com/a.png", *got.Avatar)
}
