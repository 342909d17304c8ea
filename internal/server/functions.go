package server

import (
	"context"

	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/internal/stats"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func (s *Server) registerProperties() {
	props := s.svc.Properties()
	q, m := s.queries, s.mutations

	register(q, remote.FnGetProperties, func(ctx context.Context, _ remote.NoArgs) (any, error) {
		return props.List(ctx)
	})
	register(q, remote.FnGetProperty, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return props.Get(ctx, a.ID)
	})
	register(q, remote.FnGetFeaturedProperties, func(ctx context.Context, _ remote.NoArgs) (any, error) {
		return props.Featured(ctx)
	})
	register(q, remote.FnSearchProperties, func(ctx context.Context, a remote.QueryArgs) (any, error) {
		return props.Search(ctx, a.Query)
	})
	register(m, remote.FnCreateProperty, func(ctx context.Context, a types.Property) (any, error) {
		p, err := props.Create(ctx, a)
		if err == nil {
			s.index("put", func(idx Indexer) error { return idx.Put(*p) })
		}
		return p, err
	})
	register(m, remote.FnUpdateProperty, func(ctx context.Context, a remote.UpdatePropertyArgs) (any, error) {
		p, err := props.Update(ctx, a.ID, a.PropertyPatch)
		if err == nil && p != nil {
			s.index("put", func(idx Indexer) error { return idx.Put(*p) })
		}
		return p, err
	})
	register(m, remote.FnDeleteProperty, func(ctx context.Context, a remote.IDArgs) (any, error) {
		removed, err := props.Delete(ctx, a.ID)
		if err == nil && removed {
			s.index("remove", func(idx Indexer) error { return idx.Remove(a.ID) })
		}
		return removed, err
	})
}

func (s *Server) registerUsers() {
	users := s.svc.Users()
	q, m := s.queries, s.mutations

	register(q, remote.FnGetUsers, func(ctx context.Context, _ remote.NoArgs) (any, error) {
		return users.List(ctx)
	})
	register(q, remote.FnGetUser, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return users.Get(ctx, a.ID)
	})
	register(q, remote.FnGetUserByEmail, func(ctx context.Context, a remote.EmailArgs) (any, error) {
		return users.ByEmail(ctx, a.Email)
	})
	register(q, remote.FnGetUsersByRole, func(ctx context.Context, a remote.RoleArgs) (any, error) {
		return users.ByRole(ctx, a.Role)
	})
	register(q, remote.FnSearchUsers, func(ctx context.Context, a remote.QueryArgs) (any, error) {
		return users.Search(ctx, a.Query)
	})
	register(m, remote.FnCreateUser, func(ctx context.Context, a types.User) (any, error) {
		return users.Create(ctx, a)
	})
	register(m, remote.FnUpdateUser, func(ctx context.Context, a remote.UpdateUserArgs) (any, error) {
		return users.Update(ctx, a.ID, a.UserPatch)
	})
	register(m, remote.FnDeleteUser, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return users.Delete(ctx, a.ID)
	})
}

func (s *Server) registerMessages() {
	msgs := s.svc.Messages()
	q, m := s.queries, s.mutations

	register(q, remote.FnListMessages, func(ctx context.Context, _ remote.NoArgs) (any, error) {
		return msgs.List(ctx)
	})
	register(q, remote.FnGetMessage, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return msgs.Get(ctx, a.ID)
	})
	register(q, remote.FnGetMessages, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return msgs.ForUser(ctx, a.UserID)
	})
	register(q, remote.FnGetRecentMessages, func(ctx context.Context, a remote.RecentArgs) (any, error) {
		return msgs.Recent(ctx, a.UserID, a.Limit)
	})
	register(q, remote.FnGetAIMessages, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return msgs.ByAuthor(ctx, a.UserID, true)
	})
	register(q, remote.FnGetUserMessages, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return msgs.ByAuthor(ctx, a.UserID, false)
	})
	register(m, remote.FnCreateMessage, func(ctx context.Context, a types.Message) (any, error) {
		return msgs.Create(ctx, a)
	})
	register(m, remote.FnUpdateMessage, func(ctx context.Context, a remote.UpdateMessageArgs) (any, error) {
		return msgs.Update(ctx, a.ID, a.MessagePatch)
	})
	register(m, remote.FnDeleteMessage, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return msgs.Delete(ctx, a.ID)
	})
	register(m, remote.FnClearUserMessages, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return msgs.ClearForUser(ctx, a.UserID)
	})
}

func (s *Server) registerCollections() {
	cols := s.svc.Collections()
	q, m := s.queries, s.mutations

	register(q, remote.FnListCollections, func(ctx context.Context, _ remote.NoArgs) (any, error) {
		return cols.List(ctx)
	})
	register(q, remote.FnGetCollection, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return cols.Get(ctx, a.ID)
	})
	register(q, remote.FnGetUserCollections, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return cols.ForUser(ctx, a.UserID)
	})
	register(q, remote.FnGetCollectionsWithProperty, func(ctx context.Context, a remote.PropertyIDArgs) (any, error) {
		return cols.WithProperty(ctx, a.PropertyID)
	})
	register(m, remote.FnCreateCollection, func(ctx context.Context, a types.Collection) (any, error) {
		return cols.Create(ctx, a)
	})
	register(m, remote.FnUpdateCollection, func(ctx context.Context, a remote.UpdateCollectionArgs) (any, error) {
		return cols.Update(ctx, a.ID, a.CollectionPatch)
	})
	register(m, remote.FnDeleteCollection, func(ctx context.Context, a remote.IDArgs) (any, error) {
		return cols.Delete(ctx, a.ID)
	})
	register(m, remote.FnAddPropertyToCollection, func(ctx context.Context, a remote.MembershipArgs) (any, error) {
		return cols.AddProperty(ctx, a.CollectionID, a.PropertyID)
	})
	register(m, remote.FnRemovePropertyFromCollection, func(ctx context.Context, a remote.MembershipArgs) (any, error) {
		return cols.RemoveProperty(ctx, a.CollectionID, a.PropertyID)
	})
}

func (s *Server) registerAnalytics() {
	q := s.queries

	register(q, remote.FnGetUserStats, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return stats.UserOf(ctx, s.svc, a.UserID)
	})
	register(q, remote.FnGetPlatformStats, func(ctx context.Context, _ remote.NoArgs) (any, error) {
		return stats.PlatformOf(ctx, s.svc)
	})
	register(q, remote.FnGetUserActivity, func(ctx context.Context, a remote.UserIDArgs) (any, error) {
		return stats.ActivityOf(ctx, s.svc, a.UserID)
	})
	register(q, remote.FnGetPropertyAnalytics, func(ctx context.Context, a remote.PropertyIDArgs) (any, error) {
		return stats.PropertyOf(ctx, s.svc, a.PropertyID)
	})
}
