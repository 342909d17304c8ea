package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name   string
		config func(t *testing.T) types.Config
	}{
		{
			name: "memory",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: types.BackendMemory, Seed: true}
			},
		},
		{
			name: "sqlite",
			config: func(t *testing.T) types.Config {
				return types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir(), Seed: true}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := Open(tt.config(t))
			require.NoError(t, err)
			t.Cleanup(func() { svc.Detach() })

			props, err := svc.Properties().List(context.Background())
			require.NoError(t, err)
			assert.Len(t, props, 6)
		})
	}
}

func TestOpenErrors(t *testing.T) {
	t.Setenv(remote.EnvEndpoint, "")

	tests := []struct {
		name   string
		config types.Config
		want   error
	}{
		{"empty backend", types.Config{}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "postgres"}, types.ErrBackendUnknown},
		{"mysql without dsn", types.Config{Backend: types.BackendMySQL}, types.ErrDSNEmpty},
		{"strict remote without endpoint", types.Config{Backend: types.BackendRemote, Strict: true}, remote.ErrEndpointMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.config)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenRemoteIsLazy(t *testing.T) {
	svc, err := Open(types.Config{Backend: types.BackendRemote, Endpoint: "http://127.0.0.1:1"})
	require.NoError(t, err)
	defer svc.Detach()

	_, err = svc.Properties().List(context.Background())
	assert.ErrorIs(t, err, types.ErrTransport)
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{types.BackendMemory, types.BackendSQLite, types.BackendRemote, types.BackendMySQL} {
		svc, err := NewBackend(name)
		require.NoError(t, err, name)
		assert.NotNil(t, svc)
	}

	_, err := NewBackend("")
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
	_, err = NewBackend("redis")
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}
