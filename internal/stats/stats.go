// Package stats reduces entity lists into the analytics views: per-user
// stats, platform totals, recent activity and property analytics. The
// reducers are pure; the *Of helpers load their inputs from a Service.
package stats

import (
	"context"
	"slices"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Activity window sizes.
const (
	ActivityMessages    = 10
	ActivityCollections = 5
)

// User reduces one user's collections and messages.
func User(collections []types.Collection, messages []types.Message) types.UserStats {
	s := types.UserStats{
		CollectionsCount: len(collections),
		MessagesCount:    len(messages),
	}
	for _, c := range collections {
		s.TotalPropertiesInCollections += len(c.PropertyIDs)
	}
	for _, m := range messages {
		if s.LastActivity == nil || m.Timestamp > *s.LastActivity {
			ts := m.Timestamp
			s.LastActivity = &ts
		}
	}
	return s
}

// Platform counts every entity in the store.
func Platform(users []types.User, properties []types.Property, messages []types.Message, collections []types.Collection) types.PlatformStats {
	s := types.PlatformStats{
		TotalUsers:       len(users),
		TotalProperties:  len(properties),
		TotalMessages:    len(messages),
		TotalCollections: len(collections),
	}
	for _, u := range users {
		switch u.Role {
		case types.RoleBuyer:
			s.TotalBuyers++
		case types.RoleSeller:
			s.TotalSellers++
		}
	}
	for _, p := range properties {
		if p.Featured {
			s.FeaturedProperties++
		}
	}
	return s
}

// Activity keeps the newest ActivityMessages messages and the newest
// ActivityCollections collections. messages may be in any order;
// collections must be in insertion order.
func Activity(messages []types.Message, collections []types.Collection) types.UserActivity {
	msgs := append([]types.Message{}, messages...)
	slices.SortStableFunc(msgs, func(a, b types.Message) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})

	cols := make([]types.Collection, 0, len(collections))
	for i := len(collections) - 1; i >= 0; i-- {
		cols = append(cols, collections[i].Clone())
	}
	slices.SortStableFunc(cols, func(a, b types.Collection) int {
		switch {
		case a.CreatedAt > b.CreatedAt:
			return -1
		case a.CreatedAt < b.CreatedAt:
			return 1
		}
		return 0
	})

	return types.UserActivity{
		RecentMessages:    msgs[:min(len(msgs), ActivityMessages)],
		RecentCollections: cols[:min(len(cols), ActivityCollections)],
	}
}

// Property lists the collections that contain propertyID. A collection
// holding the id twice counts once.
func Property(propertyID string, collections []types.Collection) types.PropertyAnalytics {
	a := types.PropertyAnalytics{CollectionsContaining: []types.CollectionRef{}}
	for _, c := range collections {
		if c.Contains(propertyID) {
			a.CollectionsContaining = append(a.CollectionsContaining, types.CollectionRef{
				ID: c.ID, Name: c.Name, UserID: c.UserID,
			})
		}
	}
	a.TimesAddedToCollections = len(a.CollectionsContaining)
	return a
}

// UserOf loads and reduces the stats of userID.
func UserOf(ctx context.Context, svc types.Service, userID string) (types.UserStats, error) {
	cols, err := svc.Collections().ForUser(ctx, userID)
	if err != nil {
		return types.UserStats{}, err
	}
	msgs, err := svc.Messages().ForUser(ctx, userID)
	if err != nil {
		return types.UserStats{}, err
	}
	return User(cols, msgs), nil
}

// PlatformOf loads every table and counts it.
func PlatformOf(ctx context.Context, svc types.Service) (types.PlatformStats, error) {
	users, err := svc.Users().List(ctx)
	if err != nil {
		return types.PlatformStats{}, err
	}
	props, err := svc.Properties().List(ctx)
	if err != nil {
		return types.PlatformStats{}, err
	}
	msgs, err := svc.Messages().List(ctx)
	if err != nil {
		return types.PlatformStats{}, err
	}
	cols, err := svc.Collections().List(ctx)
	if err != nil {
		return types.PlatformStats{}, err
	}
	return Platform(users, props, msgs, cols), nil
}

// ActivityOf loads the recent activity of userID.
func ActivityOf(ctx context.Context, svc types.Service, userID string) (types.UserActivity, error) {
	msgs, err := svc.Messages().Recent(ctx, userID, ActivityMessages)
	if err != nil {
		return types.UserActivity{}, err
	}
	cols, err := svc.Collections().ForUser(ctx, userID)
	if err != nil {
		return types.UserActivity{}, err
	}
	return Activity(msgs, cols), nil
}

// PropertyOf loads the analytics of propertyID.
func PropertyOf(ctx context.Context, svc types.Service, propertyID string) (types.PropertyAnalytics, error) {
	cols, err := svc.Collections().WithProperty(ctx, propertyID)
	if err != nil {
		return types.PropertyAnalytics{}, err
	}
	return Property(propertyID, cols), nil
}
