package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mesh-intelligence/propai/pkg/types"
)

var (
	_ types.PropertyTable   = (*propertiesTable)(nil)
	_ types.UserTable       = (*usersTable)(nil)
	_ types.MessageTable    = (*messagesTable)(nil)
	_ types.CollectionTable = (*collectionsTable)(nil)
)

func where(query string, args ...any) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

// newestFirst orders messages by timestamp, later insertion first on ties.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp DESC").Order("seq DESC")
}

func insert[R any](ctx context.Context, b *Backend, row *R) error {
	db, err := b.session(ctx)
	if err != nil {
		return err
	}
	return db.Create(row).Error
}

// Properties

type propertiesTable struct {
	backend *Backend
}

func (pt *propertiesTable) List(ctx context.Context) ([]types.Property, error) {
	return find[propertyRow, types.Property](ctx, pt.backend)
}

func (pt *propertiesTable) Get(ctx context.Context, id string) (*types.Property, error) {
	return first[propertyRow, types.Property](ctx, pt.backend, id)
}

func (pt *propertiesTable) Create(ctx context.Context, data types.Property) (*types.Property, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	data.ID = generateUUID()
	data.CreatedAt = pt.backend.nowMillis()
	row := newPropertyRow(data)
	if err := insert(ctx, pt.backend, &row); err != nil {
		return nil, fmt.Errorf("inserting property: %w", err)
	}
	return &data, nil
}

func (pt *propertiesTable) Update(ctx context.Context, id string, patch types.PropertyPatch) (*types.Property, error) {
	return modify(ctx, pt.backend, id, func(p types.Property) (propertyRow, error) {
		p = patch.Apply(p)
		return newPropertyRow(p), p.Validate()
	})
}

func (pt *propertiesTable) Delete(ctx context.Context, id string) (bool, error) {
	return remove[propertyRow](ctx, pt.backend, id)
}

func (pt *propertiesTable) Search(ctx context.Context, query string) ([]types.Property, error) {
	all, err := pt.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []types.Property{}
	for _, p := range all {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (pt *propertiesTable) Featured(ctx context.Context) ([]types.Property, error) {
	return find[propertyRow, types.Property](ctx, pt.backend, where("featured = ?", true))
}

// Users

type usersTable struct {
	backend *Backend
}

func (ut *usersTable) List(ctx context.Context) ([]types.User, error) {
	return find[userRow, types.User](ctx, ut.backend)
}

func (ut *usersTable) Get(ctx context.Context, id string) (*types.User, error) {
	return first[userRow, types.User](ctx, ut.backend, id)
}

// Create maps the unique-index violation on email to ErrEmailTaken.
func (ut *usersTable) Create(ctx context.Context, data types.User) (*types.User, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	u := data.Clone()
	u.ID = generateUUID()
	u.CreatedAt = ut.backend.nowMillis()
	row := newUserRow(u)
	if err := insert(ctx, ut.backend, &row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.ErrEmailTaken
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return &u, nil
}

func (ut *usersTable) Update(ctx context.Context, id string, patch types.UserPatch) (*types.User, error) {
	return modify(ctx, ut.backend, id, func(u types.User) (userRow, error) {
		u = patch.Apply(u)
		return newUserRow(u), u.Validate()
	})
}

func (ut *usersTable) Delete(ctx context.Context, id string) (bool, error) {
	return remove[userRow](ctx, ut.backend, id)
}

func (ut *usersTable) ByEmail(ctx context.Context, email string) (*types.User, error) {
	users, err := find[userRow, types.User](ctx, ut.backend, where("email = ?", email))
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return &users[0], nil
}

func (ut *usersTable) ByRole(ctx context.Context, role types.Role) ([]types.User, error) {
	return find[userRow, types.User](ctx, ut.backend, where("role = ?", string(role)))
}

func (ut *usersTable) Search(ctx context.Context, query string) ([]types.User, error) {
	all, err := ut.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []types.User{}
	for _, u := range all {
		if u.Matches(query) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Messages

type messagesTable struct {
	backend *Backend
}

func (mt *messagesTable) List(ctx context.Context) ([]types.Message, error) {
	return find[messageRow, types.Message](ctx, mt.backend)
}

func (mt *messagesTable) Get(ctx context.Context, id string) (*types.Message, error) {
	return first[messageRow, types.Message](ctx, mt.backend, id)
}

func (mt *messagesTable) Create(ctx context.Context, data types.Message) (*types.Message, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	data.ID = generateUUID()
	data.Timestamp = mt.backend.nowMillis()
	row := newMessageRow(data)
	if err := insert(ctx, mt.backend, &row); err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}
	return &data, nil
}

func (mt *messagesTable) Update(ctx context.Context, id string, patch types.MessagePatch) (*types.Message, error) {
	return modify(ctx, mt.backend, id, func(m types.Message) (messageRow, error) {
		return newMessageRow(patch.Apply(m)), nil
	})
}

func (mt *messagesTable) Delete(ctx context.Context, id string) (bool, error) {
	return remove[messageRow](ctx, mt.backend, id)
}

func (mt *messagesTable) ordered(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]types.Message, error) {
	db, err := mt.backend.session(ctx)
	if err != nil {
		return nil, err
	}
	var rows []messageRow
	if err := db.Scopes(scopes...).Scopes(newestFirst).Find(&rows).Error; err != nil {
		return nil, err
	}
	return entities[messageRow, types.Message](rows), nil
}

func (mt *messagesTable) ForUser(ctx context.Context, userID string) ([]types.Message, error) {
	return mt.ordered(ctx, where("user_id = ?", userID))
}

func (mt *messagesTable) Recent(ctx context.Context, userID string, limit int) ([]types.Message, error) {
	if limit <= 0 {
		limit = types.DefaultRecentLimit
	}
	return mt.ordered(ctx, where("user_id = ?", userID), func(db *gorm.DB) *gorm.DB { return db.Limit(limit) })
}

func (mt *messagesTable) ByAuthor(ctx context.Context, userID string, isAI bool) ([]types.Message, error) {
	return mt.ordered(ctx, where("user_id = ? AND is_ai = ?", userID, isAI))
}

func (mt *messagesTable) ClearForUser(ctx context.Context, userID string) (int, error) {
	db, err := mt.backend.session(ctx)
	if err != nil {
		return 0, err
	}
	res := db.Where("user_id = ?", userID).Delete(&messageRow{})
	return int(res.RowsAffected), res.Error
}

// Collections

type collectionsTable struct {
	backend *Backend
}

func (ct *collectionsTable) List(ctx context.Context) ([]types.Collection, error) {
	return find[collectionRow, types.Collection](ctx, ct.backend)
}

func (ct *collectionsTable) Get(ctx context.Context, id string) (*types.Collection, error) {
	return first[collectionRow, types.Collection](ctx, ct.backend, id)
}

func (ct *collectionsTable) Create(ctx context.Context, data types.Collection) (*types.Collection, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	c := data.Clone()
	c.ID = generateUUID()
	c.CreatedAt = ct.backend.nowMillis()
	row := newCollectionRow(c)
	if err := insert(ctx, ct.backend, &row); err != nil {
		return nil, fmt.Errorf("inserting collection: %w", err)
	}
	return &c, nil
}

func (ct *collectionsTable) Update(ctx context.Context, id string, patch types.CollectionPatch) (*types.Collection, error) {
	return modify(ctx, ct.backend, id, func(c types.Collection) (collectionRow, error) {
		c = patch.Apply(c)
		return newCollectionRow(c), c.Validate()
	})
}

func (ct *collectionsTable) Delete(ctx context.Context, id string) (bool, error) {
	return remove[collectionRow](ctx, ct.backend, id)
}

func (ct *collectionsTable) ForUser(ctx context.Context, userID string) ([]types.Collection, error) {
	return find[collectionRow, types.Collection](ctx, ct.backend, where("user_id = ?", userID))
}

func (ct *collectionsTable) AddProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return modify(ctx, ct.backend, collectionID, func(c types.Collection) (collectionRow, error) {
		return newCollectionRow(c.WithAdded(propertyID)), nil
	})
}

func (ct *collectionsTable) RemoveProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return modify(ctx, ct.backend, collectionID, func(c types.Collection) (collectionRow, error) {
		return newCollectionRow(c.WithRemoved(propertyID)), nil
	})
}

func (ct *collectionsTable) WithProperty(ctx context.Context, propertyID string) ([]types.Collection, error) {
	return find[collectionRow, types.Collection](ctx, ct.backend,
		where("JSON_CONTAINS(property_ids, JSON_QUOTE(?))", propertyID))
}
