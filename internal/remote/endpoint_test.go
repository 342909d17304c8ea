package remote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/pkg/types"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		env     string
		want    string
		wantErr error
	}{
		{
			name:   "config wins over env",
			config: types.Config{Endpoint: "http://store:9000/"},
			env:    "http://env:1",
			want:   "http://store:9000",
		},
		{
			name: "env when config empty",
			env:  "http://env:1",
			want: "http://env:1",
		},
		{
			name: "permissive default",
			want: DefaultEndpoint,
		},
		{
			name:    "strict fails fast",
			config:  types.Config{Strict: true},
			wantErr: ErrEndpointMissing,
		},
		{
			name:   "strict with env",
			config: types.Config{Strict: true},
			env:    "http://env:2",
			want:   "http://env:2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvEndpoint, tt.env)
			got, err := ResolveEndpoint(tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttachStrictWithoutEndpoint(t *testing.T) {
	t.Setenv(EnvEndpoint, "")
	b := NewBackend(nil)
	err := b.Attach(types.Config{Backend: types.BackendRemote, Strict: true})
	assert.ErrorIs(t, err, ErrEndpointMissing)
	assert.Nil(t, b.Client())
}
