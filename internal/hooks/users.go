package hooks

import (
	"context"

	"github.com/mesh-intelligence/propai/internal/resource"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// NewUsers lists every user.
func NewUsers(svc types.Service) *resource.List[types.User, types.UserPatch] {
	t := svc.Users()
	return resource.NewList[types.User, types.UserPatch]("user", "users", t, t.List)
}

// NewUser tracks one user by id.
func NewUser(svc types.Service, id string) *resource.Item[types.User, types.UserPatch] {
	t := svc.Users()
	return resource.NewItem[types.User, types.UserPatch]("user", id, t, t.Get)
}

// NewUserByEmail looks a user up by email. An empty email loads nothing.
func NewUserByEmail(svc types.Service, email string) *resource.Query[*types.User] {
	return resource.NewKeyedQuery("user", email, svc.Users().ByEmail)
}

// NewUsersByRole lists the users holding role.
func NewUsersByRole(svc types.Service, role types.Role) *resource.Query[[]types.User] {
	t := svc.Users()
	return resource.NewKeyedQuery("users", string(role), func(ctx context.Context, key string) ([]types.User, error) {
		return t.ByRole(ctx, types.Role(key))
	})
}

// NewUserSearch searches user names and emails.
func NewUserSearch(svc types.Service) *resource.Search[types.User] {
	return resource.NewSearch("users", svc.Users().Search)
}
