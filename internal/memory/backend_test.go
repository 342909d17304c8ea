package memory

import (
	"context"
	"testing"
	"time"

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
		return setupBackend(t, types.Config{Backend: types.BackendMemory})
	})
}

func TestAttach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))
	defer b.Detach()

	err := b.Attach(types.Config{Backend: types.BackendMemory})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestAttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendMemory, Latency: -time.Second})
	assert.ErrorIs(t, err, types.ErrLatencyNegative)

	_, err = b.Properties().List(context.Background())
	assert.ErrorIs(t, err, types.ErrServiceDetached)
}

func TestSeed(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b := NewBackend()
	b.SetClock(func() time.Time { return now })
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory, Seed: true}))
	t.Cleanup(func() { b.Detach() })
	ctx := context.Background()

	props, err := b.Properties().List(ctx)
	require.NoError(t, err)
	require.Len(t, props, 6)
	assert.Equal(t, "1", props[0].ID)
	assert.Equal(t, types.NowMillis(now.Add(-24*time.Hour)), props[0].CreatedAt)

	featured, err := b.Properties().Featured(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 3)

	john, err := b.Users().ByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	require.NotNil(t, john)
	assert.Equal(t, "user-1", john.ID)

	_, err = b.Users().Create(ctx, types.User{Email: "john@example.com", Name: "Impostor", Role: types.RoleBuyer})
	assert.ErrorIs(t, err, types.ErrEmailTaken)

	msgs, err := b.Messages().ForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "msg-2", msgs[0].ID, "assistant reply is newer")

	withOne, err := b.Collections().WithProperty(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, withOne, 2)
}

func TestDetachDropsState(t *testing.T) {
	b := setupBackend(t, types.Config{Backend: types.BackendMemory, Seed: true})
	require.NoError(t, b.Detach())
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))

	props, err := b.Properties().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestClockStampsCreates(t *testing.T) {
	b := setupBackend(t, types.Config{Backend: types.BackendMemory})
	at := time.Date(2026, 5, 5, 5, 5, 5, 0, time.UTC)
	b.SetClock(func() time.Time { return at })

	m, err := b.Messages().Create(context.Background(), types.Message{UserID: "u", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, types.NowMillis(at), m.Timestamp)
}

func TestMessagesSameTimestampLaterFirst(t *testing.T) {
	b := setupBackend(t, types.Config{Backend: types.BackendMemory})
	at := time.Now()
	b.SetClock(func() time.Time { return at })
	ctx := context.Background()

	first, err := b.Messages().Create(ctx, types.Message{UserID: "u", Content: "a"})
	require.NoError(t, err)
	second, err := b.Messages().Create(ctx, types.Message{UserID: "u", Content: "b"})
	require.NoError(t, err)

	msgs, err := b.Messages().ForUser(ctx, "u")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)
	assert.Equal(t, first.ID, msgs[1].ID)
}

func TestLatency(t *testing.T) {
	b := setupBackend(t, types.Config{Backend: types.BackendMemory, Latency: 30 * time.Millisecond})

	start := time.Now()
	_, err := b.Properties().List(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLatencyHonoursContext(t *testing.T) {
	b := setupBackend(t, types.Config{Backend: types.BackendMemory, Latency: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := b.Properties().Create(ctx, storetest.NewProperty("slow"))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancel()
	b.config.Latency = 0
	props, err := b.Properties().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, props, "cancelled create stored nothing")
}
