package hooks

import (
	"context"

	"github.com/mesh-intelligence/propai/internal/resource"
	"github.com/mesh-intelligence/propai/internal/stats"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// NewUserStats reduces the collections and messages of userID on the
// client. LastActivity is nil for a user with no messages.
func NewUserStats(svc types.Service, userID string) *resource.Query[types.UserStats] {
	return resource.NewKeyedQuery("user stats", userID, func(ctx context.Context, key string) (types.UserStats, error) {
		return stats.UserOf(ctx, svc, key)
	})
}

// NewPlatformStats counts every entity in the store.
func NewPlatformStats(svc types.Service) *resource.Query[types.PlatformStats] {
	return resource.NewQuery("platform stats", func(ctx context.Context) (types.PlatformStats, error) {
		return stats.PlatformOf(ctx, svc)
	})
}

// NewUserActivity lists the newest messages and collections of userID.
func NewUserActivity(svc types.Service, userID string) *resource.Query[types.UserActivity] {
	return resource.NewKeyedQuery("user activity", userID, func(ctx context.Context, key string) (types.UserActivity, error) {
		return stats.ActivityOf(ctx, svc, key)
	})
}

// NewPropertyAnalytics reports how often propertyID was saved.
func NewPropertyAnalytics(svc types.Service, propertyID string) *resource.Query[types.PropertyAnalytics] {
	return resource.NewKeyedQuery("property analytics", propertyID, func(ctx context.Context, key string) (types.PropertyAnalytics, error) {
		return stats.PropertyOf(ctx, svc, key)
	})
}
