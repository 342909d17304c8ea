package memory

import (
	"context"

	"github.com/mesh-intelligence/propai/pkg/types"
)

type collectionsTable struct {
	b *Backend
}

func (t *collectionsTable) List(ctx context.Context) ([]types.Collection, error) {
	var out []types.Collection
	err := t.b.read(ctx, func() { out = t.b.collections.all() })
	return out, err
}

func (t *collectionsTable) Get(ctx context.Context, id string) (*types.Collection, error) {
	var out *types.Collection
	err := t.b.read(ctx, func() {
		if c, ok := t.b.collections.get(id); ok {
			out = &c
		}
	})
	return out, err
}

func (t *collectionsTable) Create(ctx context.Context, data types.Collection) (*types.Collection, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	var out *types.Collection
	err := t.b.write(ctx, func() error {
		c := data.Clone()
		c.ID = generateUUID()
		c.CreatedAt = t.b.nowMillis()
		t.b.collections.insert(c.ID, c)
		out = &c
		return nil
	})
	return out, err
}

func (t *collectionsTable) Update(ctx context.Context, id string, patch types.CollectionPatch) (*types.Collection, error) {
	return t.modify(ctx, id, func(c types.Collection) (types.Collection, error) {
		c = patch.Apply(c)
		return c, c.Validate()
	})
}

func (t *collectionsTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.b.write(ctx, func() error {
		removed = t.b.collections.remove(id)
		return nil
	})
	return removed, err
}

func (t *collectionsTable) ForUser(ctx context.Context, userID string) ([]types.Collection, error) {
	var out []types.Collection
	err := t.b.read(ctx, func() {
		out = t.b.collections.filter(func(c types.Collection) bool { return c.UserID == userID })
	})
	return out, err
}

func (t *collectionsTable) AddProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return t.modify(ctx, collectionID, func(c types.Collection) (types.Collection, error) {
		return c.WithAdded(propertyID), nil
	})
}

func (t *collectionsTable) RemoveProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return t.modify(ctx, collectionID, func(c types.Collection) (types.Collection, error) {
		return c.WithRemoved(propertyID), nil
	})
}

func (t *collectionsTable) WithProperty(ctx context.Context, propertyID string) ([]types.Collection, error) {
	var out []types.Collection
	err := t.b.read(ctx, func() {
		out = t.b.collections.filter(func(c types.Collection) bool { return c.Contains(propertyID) })
	})
	return out, err
}

// modify applies fn to the stored collection as one read-modify-write under
// the write lock. It returns nil when the collection does not exist.
func (t *collectionsTable) modify(ctx context.Context, id string, fn func(types.Collection) (types.Collection, error)) (*types.Collection, error) {
	var out *types.Collection
	err := t.b.write(ctx, func() error {
		c, ok := t.b.collections.get(id)
		if !ok {
			return nil
		}
		c, err := fn(c)
		if err != nil {
			return err
		}
		t.b.collections.replace(id, c)
		out = &c
		return nil
	})
	return out, err
}
