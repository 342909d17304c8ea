package remote

import (
	"context"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Analytics calls the store's server-side aggregation functions.
type Analytics struct {
	backend *Backend
}

// Analytics returns the aggregation functions of the attached store.
func (b *Backend) Analytics() *Analytics { return &Analytics{backend: b} }

// UserStats calls analytics:getUserStats.
func (a *Analytics) UserStats(ctx context.Context, userID string) (types.UserStats, error) {
	var out types.UserStats
	err := a.backend.query(ctx, FnGetUserStats, UserIDArgs{UserID: userID}, &out)
	return out, err
}

// PlatformStats calls analytics:getPlatformStats.
func (a *Analytics) PlatformStats(ctx context.Context) (types.PlatformStats, error) {
	var out types.PlatformStats
	err := a.backend.query(ctx, FnGetPlatformStats, nil, &out)
	return out, err
}

// UserActivity calls analytics:getUserActivity.
func (a *Analytics) UserActivity(ctx context.Context, userID string) (types.UserActivity, error) {
	var out types.UserActivity
	err := a.backend.query(ctx, FnGetUserActivity, UserIDArgs{UserID: userID}, &out)
	return out, err
}

// PropertyAnalytics calls analytics:getPropertyAnalytics.
func (a *Analytics) PropertyAnalytics(ctx context.Context, propertyID string) (types.PropertyAnalytics, error) {
	var out types.PropertyAnalytics
	err := a.backend.query(ctx, FnGetPropertyAnalytics, PropertyIDArgs{PropertyID: propertyID}, &out)
	return out, err
}
