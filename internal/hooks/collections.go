package hooks

import (
	"context"

	"github.com/mesh-intelligence/propai/internal/resource"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// Collections is the list of collections a user owns.
type Collections struct {
	*resource.List[types.Collection, types.CollectionPatch]
	table types.CollectionTable
}

// NewCollections lists the collections of userID. An empty userID loads
// nothing.
func NewCollections(svc types.Service, userID string) *Collections {
	t := svc.Collections()
	l := resource.NewKeyedList[types.Collection, types.CollectionPatch]("collection", "collections", userID, t, t.ForUser)
	return &Collections{List: l, table: t}
}

// AddProperty appends propertyID to the collection and updates it in place.
func (c *Collections) AddProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return c.Modify(ctx, "add property to", func(ctx context.Context) (*types.Collection, error) {
		return c.table.AddProperty(ctx, collectionID, propertyID)
	})
}

// RemoveProperty drops propertyID from the collection and updates it in
// place.
func (c *Collections) RemoveProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return c.Modify(ctx, "remove property from", func(ctx context.Context) (*types.Collection, error) {
		return c.table.RemoveProperty(ctx, collectionID, propertyID)
	})
}

// NewCollection tracks one collection.
func NewCollection(svc types.Service, id string) *resource.Item[types.Collection, types.CollectionPatch] {
	t := svc.Collections()
	return resource.NewItem[types.Collection, types.CollectionPatch]("collection", id, t, t.Get)
}

// NewCollectionsWithProperty lists the collections that contain propertyID.
func NewCollectionsWithProperty(svc types.Service, propertyID string) *resource.Query[[]types.Collection] {
	return resource.NewKeyedQuery("collections", propertyID, svc.Collections().WithProperty)
}
