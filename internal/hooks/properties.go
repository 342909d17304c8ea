package hooks

import (
	"github.com/mesh-intelligence/propai/internal/resource"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// NewProperties lists every property.
func NewProperties(svc types.Service) *resource.List[types.Property, types.PropertyPatch] {
	t := svc.Properties()
	return resource.NewList[types.Property, types.PropertyPatch]("property", "properties", t, t.List)
}

// NewProperty tracks one property.
func NewProperty(svc types.Service, id string) *resource.Item[types.Property, types.PropertyPatch] {
	t := svc.Properties()
	return resource.NewItem[types.Property, types.PropertyPatch]("property", id, t, t.Get)
}

// NewFeaturedProperties lists the featured properties. It is read-only.
func NewFeaturedProperties(svc types.Service) *resource.Query[[]types.Property] {
	return resource.NewQuery("featured properties", svc.Properties().Featured)
}

// NewPropertySearch searches titles, locations and descriptions.
func NewPropertySearch(svc types.Service) *resource.Search[types.Property] {
	return resource.NewSearch("properties", svc.Properties().Search)
}
