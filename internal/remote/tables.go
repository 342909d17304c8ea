package remote

import (
	"context"

	"github.com/mesh-intelligence/propai/pkg/types"
)

var (
	_ types.PropertyTable   = (*propertiesTable)(nil)
	_ types.UserTable       = (*usersTable)(nil)
	_ types.MessageTable    = (*messagesTable)(nil)
	_ types.CollectionTable = (*collectionsTable)(nil)
)

type propertiesTable struct {
	backend *Backend
}

func (t *propertiesTable) List(ctx context.Context) ([]types.Property, error) {
	return list[types.Property](ctx, t.backend, FnGetProperties, nil)
}

func (t *propertiesTable) Get(ctx context.Context, id string) (*types.Property, error) {
	return one[types.Property](ctx, t.backend.query, FnGetProperty, IDArgs{ID: id})
}

func (t *propertiesTable) Create(ctx context.Context, data types.Property) (*types.Property, error) {
	return one[types.Property](ctx, t.backend.mutation, FnCreateProperty, data)
}

func (t *propertiesTable) Update(ctx context.Context, id string, patch types.PropertyPatch) (*types.Property, error) {
	return one[types.Property](ctx, t.backend.mutation, FnUpdateProperty, UpdatePropertyArgs{ID: id, PropertyPatch: patch})
}

func (t *propertiesTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.backend.mutation(ctx, FnDeleteProperty, IDArgs{ID: id}, &removed)
	return removed, err
}

func (t *propertiesTable) Search(ctx context.Context, query string) ([]types.Property, error) {
	return list[types.Property](ctx, t.backend, FnSearchProperties, QueryArgs{Query: query})
}

func (t *propertiesTable) Featured(ctx context.Context) ([]types.Property, error) {
	return list[types.Property](ctx, t.backend, FnGetFeaturedProperties, nil)
}

type usersTable struct {
	backend *Backend
}

func (t *usersTable) List(ctx context.Context) ([]types.User, error) {
	return list[types.User](ctx, t.backend, FnGetUsers, nil)
}

func (t *usersTable) Get(ctx context.Context, id string) (*types.User, error) {
	return one[types.User](ctx, t.backend.query, FnGetUser, IDArgs{ID: id})
}

func (t *usersTable) Create(ctx context.Context, data types.User) (*types.User, error) {
	return one[types.User](ctx, t.backend.mutation, FnCreateUser, data)
}

func (t *usersTable) Update(ctx context.Context, id string, patch types.UserPatch) (*types.User, error) {
	return one[types.User](ctx, t.backend.mutation, FnUpdateUser, UpdateUserArgs{ID: id, UserPatch: patch})
}

func (t *usersTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.backend.mutation(ctx, FnDeleteUser, IDArgs{ID: id}, &removed)
	return removed, err
}

func (t *usersTable) ByEmail(ctx context.Context, email string) (*types.User, error) {
	return one[types.User](ctx, t.backend.query, FnGetUserByEmail, EmailArgs{Email: email})
}

func (t *usersTable) ByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	return list[types.User](ctx, t.backend, FnGetUsersByRole, RoleArgs{Role: role})
}

func (t *usersTable) Search(ctx context.Context, query string) ([]types.User, error) {
	return list[types.User](ctx, t.backend, FnSearchUsers, QueryArgs{Query: query})
}

type messagesTable struct {
	backend *Backend
}

func (t *messagesTable) List(ctx context.Context) ([]types.Message, error) {
	return list[types.Message](ctx, t.backend, FnListMessages, nil)
}

func (t *messagesTable) Get(ctx context.Context, id string) (*types.Message, error) {
	return one[types.Message](ctx, t.backend.query, FnGetMessage, IDArgs{ID: id})
}

func (t *messagesTable) Create(ctx context.Context, data types.Message) (*types.Message, error) {
	return one[types.Message](ctx, t.backend.mutation, FnCreateMessage, data)
}

func (t *messagesTable) Update(ctx context.Context, id string, patch types.MessagePatch) (*types.Message, error) {
	return one[types.Message](ctx, t.backend.mutation, FnUpdateMessage, UpdateMessageArgs{ID: id, MessagePatch: patch})
}

func (t *messagesTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.backend.mutation(ctx, FnDeleteMessage, IDArgs{ID: id}, &removed)
	return removed, err
}

func (t *messagesTable) ForUser(ctx context.Context, userID string) ([]types.Message, error) {
	return list[types.Message](ctx, t.backend, FnGetMessages, UserIDArgs{UserID: userID})
}

func (t *messagesTable) Recent(ctx context.Context, userID string, limit int) ([]types.Message, error) {
	return list[types.Message](ctx, t.backend, FnGetRecentMessages, RecentArgs{UserID: userID, Limit: limit})
}

// ByAuthor maps onto the two author-filtered queries of the store.
func (t *messagesTable) ByAuthor(ctx context.Context, userID string, isAI bool) ([]types.Message, error) {
	path := FnGetUserMessages
	if isAI {
		path = FnGetAIMessages
	}
	return list[types.Message](ctx, t.backend, path, UserIDArgs{UserID: userID})
}

func (t *messagesTable) ClearForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := t.backend.mutation(ctx, FnClearUserMessages, UserIDArgs{UserID: userID}, &n)
	return n, err
}

type collectionsTable struct {
	backend *Backend
}

func (t *collectionsTable) List(ctx context.Context) ([]types.Collection, error) {
	return list[types.Collection](ctx, t.backend, FnListCollections, nil)
}

func (t *collectionsTable) Get(ctx context.Context, id string) (*types.Collection, error) {
	return one[types.Collection](ctx, t.backend.query, FnGetCollection, IDArgs{ID: id})
}

func (t *collectionsTable) Create(ctx context.Context, data types.Collection) (*types.Collection, error) {
	return one[types.Collection](ctx, t.backend.mutation, FnCreateCollection, data.Clone())
}

func (t *collectionsTable) Update(ctx context.Context, id string, patch types.CollectionPatch) (*types.Collection, error) {
	return one[types.Collection](ctx, t.backend.mutation, FnUpdateCollection, UpdateCollectionArgs{ID: id, CollectionPatch: patch})
}

func (t *collectionsTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.backend.mutation(ctx, FnDeleteCollection, IDArgs{ID: id}, &removed)
	return removed, err
}

func (t *collectionsTable) ForUser(ctx context.Context, userID string) ([]types.Collection, error) {
	return list[types.Collection](ctx, t.backend, FnGetUserCollections, UserIDArgs{UserID: userID})
}

func (t *collectionsTable) AddProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return one[types.Collection](ctx, t.backend.mutation, FnAddPropertyToCollection,
		MembershipArgs{CollectionID: collectionID, PropertyID: propertyID})
}

func (t *collectionsTable) RemoveProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return one[types.Collection](ctx, t.backend.mutation, FnRemovePropertyFromCollection,
		MembershipArgs{CollectionID: collectionID, PropertyID: propertyID})
}

func (t *collectionsTable) WithProperty(ctx context.Context, propertyID string) ([]types.Collection, error) {
	return list[types.Collection](ctx, t.backend, FnGetCollectionsWithProperty, PropertyIDArgs{PropertyID: propertyID})
}
