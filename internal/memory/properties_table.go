package memory

import (
	"context"

	"github.com/mesh-intelligence/propai/pkg/types"
)

type propertiesTable struct {
	b *Backend
}

func (t *propertiesTable) List(ctx context.Context) ([]types.Property, error) {
	var out []types.Property
	err := t.b.read(ctx, func() { out = t.b.properties.all() })
	return out, err
}

func (t *propertiesTable) Get(ctx context.Context, id string) (*types.Property, error) {
	var out *types.Property
	err := t.b.read(ctx, func() {
		if p, ok := t.b.properties.get(id); ok {
			out = &p
		}
	})
	return out, err
}

func (t *propertiesTable) Create(ctx context.Context, data types.Property) (*types.Property, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	var out *types.Property
	err := t.b.write(ctx, func() error {
		data.ID = generateUUID()
		data.CreatedAt = t.b.nowMillis()
		t.b.properties.insert(data.ID, data)
		out = &data
		return nil
	})
	return out, err
}

func (t *propertiesTable) Update(ctx context.Context, id string, patch types.PropertyPatch) (*types.Property, error) {
	var out *types.Property
	err := t.b.write(ctx, func() error {
		p, ok := t.b.properties.get(id)
		if !ok {
			return nil
		}
		p = patch.Apply(p)
		if err := p.Validate(); err != nil {
			return err
		}
		t.b.properties.replace(id, p)
		out = &p
		return nil
	})
	return out, err
}

func (t *propertiesTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.b.write(ctx, func() error {
		removed = t.b.properties.remove(id)
		return nil
	})
	return removed, err
}

func (t *propertiesTable) Search(ctx context.Context, query string) ([]types.Property, error) {
	var out []types.Property
	err := t.b.read(ctx, func() {
		out = t.b.properties.filter(func(p types.Property) bool { return p.Matches(query) })
	})
	return out, err
}

func (t *propertiesTable) Featured(ctx context.Context) ([]types.Property, error) {
	var out []types.Property
	err := t.b.read(ctx, func() {
		out = t.b.properties.filter(func(p types.Property) bool { return p.Featured })
	})
	return out, err
}
