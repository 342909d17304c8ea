package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{"buyer", User{Email: "john@example.com", Role: RoleBuyer}, nil},
		{"seller", User{Email: "jane@example.com", Role: RoleSeller}, nil},
		{"missing email", User{Role: RoleBuyer}, ErrInvalidData},
		{"unknown role", User{Email: "x@example.com", Role: "admin"}, ErrInvalidRole},
		{"empty role", User{Email: "x@example.com"}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserPatchApplyDoesNotAlias(t *testing.T) {
	avatar := "https://example.com/a.png"
	u := User{ID: "u1", Email: "a@example.com", Name: "A", Role: RoleBuyer, Avatar: &avatar}

	got := UserPatch{Role: Ptr(RoleSeller)}.Apply(u)
	require.NotNil(t, got.Avatar)
	assert.Equal(t, RoleSeller, got.Role)
	assert.Equal(t, "A", got.Name)

	*got.Avatar = "changed"
	assert.Equal(t, "https://example.com/a.png", *u.Avatar, "patched copy must not share the avatar pointer")
}

func TestUserMatches(t *testing.T) {
	u := User{Email: "jane@example.com", Name: "Jane Smith"}
	assert.True(t, u.Matches("SMITH"))
	assert.True(t, u.Matches("example.com"))
	assert.False(t, u.Matches("john"))
}
