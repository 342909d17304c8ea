package memory

import (
	"context"

	"github.com/mesh-intelligence/propai/pkg/types"
)

type usersTable struct {
	b *Backend
}

func (t *usersTable) List(ctx context.Context) ([]types.User, error) {
	var out []types.User
	err := t.b.read(ctx, func() { out = t.b.users.all() })
	return out, err
}

func (t *usersTable) Get(ctx context.Context, id string) (*types.User, error) {
	var out *types.User
	err := t.b.read(ctx, func() {
		if u, ok := t.b.users.get(id); ok {
			out = &u
		}
	})
	return out, err
}

// Create rejects a duplicate email with ErrEmailTaken. The lookup and the
// insert happen under the same write lock, so concurrent signups with one
// email cannot both succeed.
func (t *usersTable) Create(ctx context.Context, data types.User) (*types.User, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	var out *types.User
	err := t.b.write(ctx, func() error {
		if t.b.userByEmailLocked(data.Email) != nil {
			return types.ErrEmailTaken
		}
		u := data.Clone()
		u.ID = generateUUID()
		u.CreatedAt = t.b.nowMillis()
		t.b.users.insert(u.ID, u)
		out = &u
		return nil
	})
	return out, err
}

func (t *usersTable) Update(ctx context.Context, id string, patch types.UserPatch) (*types.User, error) {
	var out *types.User
	err := t.b.write(ctx, func() error {
		u, ok := t.b.users.get(id)
		if !ok {
			return nil
		}
		u = patch.Apply(u)
		if err := u.Validate(); err != nil {
			return err
		}
		t.b.users.replace(id, u)
		out = &u
		return nil
	})
	return out, err
}

func (t *usersTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.b.write(ctx, func() error {
		removed = t.b.users.remove(id)
		return nil
	})
	return removed, err
}

func (t *usersTable) ByEmail(ctx context.Context, email string) (*types.User, error) {
	var out *types.User
	err := t.b.read(ctx, func() { out = t.b.userByEmailLocked(email) })
	return out, err
}

func (t *usersTable) ByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	var out []types.User
	err := t.b.read(ctx, func() {
		out = t.b.users.filter(func(u types.User) bool { return u.Role == role })
	})
	return out, err
}

func (t *usersTable) Search(ctx context.Context, query string) ([]types.User, error) {
	var out []types.User
	err := t.b.read(ctx, func() {
		out = t.b.users.filter(func(u types.User) bool { return u.Matches(query) })
	})
	return out, err
}

// userByEmailLocked returns the first user with the given email.
// The caller must hold b.mu.
func (b *Backend) userByEmailLocked(email string) *types.User {
	matches := b.users.filter(func(u types.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}
