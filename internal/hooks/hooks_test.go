package hooks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/internal/assistant"
	"github.com/mesh-intelligence/propai/internal/memory"
	"github.com/mesh-intelligence/propai/internal/resource"
	"github.com/mesh-intelligence/propai/internal/storetest"
	"github.com/mesh-intelligence/propai/pkg/types"
)

func setupService(t *testing.T, seed bool) *memory.Backend {
	t.Helper()
	b := memory.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory, Seed: seed}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func ids[E resource.Entity](es []E) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.EntityID()
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestMessagesForUserWithoutMessages(t *testing.T) {
	svc := setupService(t, false)
	m := NewMessages(svc, "u1")

	s := m.Activate(context.Background())
	assert.Equal(t, []types.Message{}, s.Data)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Equal(t, resource.Ready, s.Status)
}

func TestPropertiesLifecycle(t *testing.T) {
	svc := setupService(t, false)
	props := NewProperties(svc)
	featured := NewFeaturedProperties(svc)
	search := NewPropertySearch(svc)
	ctx := context.Background()

	require.Empty(t, props.Activate(ctx).Data)
	lake := storetest.NewProperty("Lakeview Condo")
	lake.Location = "Austin, Texas"
	created, err := props.Create(ctx, lake)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, ids(props.State().Data))

	s := search.Search(ctx, "lakeview")
	assert.Equal(t, []string{created.ID}, ids(s.Data))
	assert.Empty(t, featured.Activate(ctx).Data)

	_, err = props.Update(ctx, created.ID, types.PropertyPatch{Featured: ptr(true)})
	require.NoError(t, err)
	assert.True(t, props.State().Data[0].Featured)
	assert.Equal(t, []string{created.ID}, ids(featured.Refetch(ctx).Data))

	removed, err := props.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, props.State().Data)
}

func TestSeededReads(t *testing.T) {
	svc := setupService(t, true)
	ctx := context.Background()

	assert.Equal(t, []string{"1", "4", "5"}, ids(NewFeaturedProperties(svc).Activate(ctx).Data))
	assert.Equal(t, "Beachfront Villa", NewProperty(svc, "5").Activate(ctx).Data.Title)
	assert.Nil(t, NewProperty(svc, "nope").Activate(ctx).Data)

	assert.Len(t, NewUsers(svc).Activate(ctx).Data, 2)
	assert.Equal(t, "user-2", NewUserByEmail(svc, "jane@example.com").Activate(ctx).Data.ID)
	assert.Equal(t, []string{"user-1"}, ids(NewUsersByRole(svc, types.RoleBuyer).Activate(ctx).Data))
	assert.Equal(t, []string{"user-2"}, ids(NewUserSearch(svc).Search(ctx, "JANE").Data))

	assert.Equal(t, []string{"msg-2"}, ids(NewAIMessages(svc, "user-1").Activate(ctx).Data))
	assert.Equal(t, []string{"msg-1"}, ids(NewUserAuthoredMessages(svc, "user-1").Activate(ctx).Data))
	assert.Equal(t, []string{"msg-2"}, ids(NewRecentMessages(svc, "user-1", 1).Activate(ctx).Data))
	assert.Equal(t, []string{"msg-2", "msg-1"}, ids(NewMessages(svc, "user-1").Activate(ctx).Data))

	assert.Equal(t, "Favorites", NewCollection(svc, "col-1").Activate(ctx).Data.Name)
	assert.ElementsMatch(t, []string{"col-1", "col-2"}, ids(NewCollectionsWithProperty(svc, "1").Activate(ctx).Data))
}

func TestEmptyKeysLoadNothing(t *testing.T) {
	svc := setupService(t, true)
	ctx := context.Background()

	assert.Equal(t, resource.Uninitialized, NewMessages(svc, "").Activate(ctx).Status)
	assert.Equal(t, resource.Uninitialized, NewCollections(svc, "").Activate(ctx).Status)
	assert.Equal(t, resource.Uninitialized, NewUser(svc, "").Activate(ctx).Status)
	assert.Equal(t, resource.Uninitialized, NewUserByEmail(svc, "").Activate(ctx).Status)
	assert.Equal(t, resource.Uninitialized, NewUserStats(svc, "").Activate(ctx).Status)

	n, err := NewMessages(svc, "").Clear(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMessagesPostAndClear(t *testing.T) {
	svc := setupService(t, true)
	m := NewMessages(svc, "user-1")
	ctx := context.Background()
	m.Activate(ctx)

	posted, err := m.Post(ctx, "hello", false)
	require.NoError(t, err)
	assert.Equal(t, "user-1", posted.UserID)
	assert.Equal(t, posted.ID, m.State().Data[0].ID, "new messages go first")

	n, err := m.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, m.State().Data)

	left, err := svc.Messages().ForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestCollectionsMembership(t *testing.T) {
	svc := setupService(t, true)
	c := NewCollections(svc, "user-1")
	ctx := context.Background()
	require.Len(t, c.Activate(ctx).Data, 2)

	updated, err := c.AddProperty(ctx, "col-1", "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4", "6"}, updated.PropertyIDs)

	var cached types.Collection
	for _, col := range c.State().Data {
		if col.ID == "col-1" {
			cached = col
		}
	}
	assert.Equal(t, []string{"1", "4", "6"}, cached.PropertyIDs)

	_, err = c.RemoveProperty(ctx, "col-1", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "6"}, c.State().Data[0].PropertyIDs)

	missing, err := c.AddProperty(ctx, "nope", "1")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStatsHooks(t *testing.T) {
	svc := setupService(t, true)
	ctx := context.Background()

	us := NewUserStats(svc, "user-1").Activate(ctx).Data
	assert.Equal(t, 2, us.CollectionsCount)
	assert.Equal(t, 2, us.MessagesCount)
	assert.Equal(t, 4, us.TotalPropertiesInCollections)
	require.NotNil(t, us.LastActivity)

	quiet := NewUserStats(svc, "user-2").Activate(ctx)
	assert.Empty(t, quiet.Error)
	assert.Nil(t, quiet.Data.LastActivity)

	ps := NewPlatformStats(svc).Activate(ctx).Data
	assert.Equal(t, types.PlatformStats{
		TotalUsers:         2,
		TotalBuyers:        1,
		TotalSellers:       1,
		TotalProperties:    6,
		FeaturedProperties: 3,
		TotalMessages:      2,
		TotalCollections:   2,
	}, ps)

	act := NewUserActivity(svc, "user-1").Activate(ctx).Data
	assert.Equal(t, []string{"msg-2", "msg-1"}, ids(act.RecentMessages))
	assert.Equal(t, []string{"col-1", "col-2"}, ids(act.RecentCollections))

	pa := NewPropertyAnalytics(svc, "1").Activate(ctx).Data
	assert.Equal(t, 2, pa.TimesAddedToCollections)
}

func TestFetchFailureBecomesState(t *testing.T) {
	svc := setupService(t, true)
	props := NewProperties(svc)
	ctx := context.Background()
	require.Len(t, props.Activate(ctx).Data, 6)

	require.NoError(t, svc.Detach())
	s := props.Refetch(ctx)
	assert.Equal(t, "Failed to fetch properties", s.Error)
	assert.Len(t, s.Data, 6)

	_, err := props.Create(ctx, storetest.NewProperty("x"))
	assert.ErrorIs(t, err, types.ErrServiceDetached)
	assert.Equal(t, "Failed to create property", props.State().Error)
}

func TestChat(t *testing.T) {
	svc := setupService(t, false)
	chat := NewChat(svc, "u1", assistant.New())
	ctx := context.Background()
	chat.Activate(ctx)

	reply, err := chat.Send(ctx, "I want to buy a flat")
	require.NoError(t, err)
	assert.True(t, reply.IsAI)
	assert.Contains(t, reply.Content, "buying property")
	assert.False(t, chat.Sending())

	data := chat.State().Data
	require.Len(t, data, 2)
	assert.True(t, data[0].IsAI)
	assert.Equal(t, "I want to buy a flat", data[1].Content)

	none, err := chat.Send(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Len(t, chat.State().Data, 2)
}

func TestChatResponderFailure(t *testing.T) {
	svc := setupService(t, false)
	errDown := errors.New("responder down")
	var during bool
	var chat *Chat
	chat = NewChat(svc, "u1", assistant.ResponderFunc(func(ctx context.Context, text string) (string, error) {
		during = chat.Sending()
		return "", errDown
	}))
	ctx := context.Background()
	chat.Activate(ctx)

	_, err := chat.Send(ctx, "hello")
	assert.ErrorIs(t, err, errDown)
	assert.True(t, during)
	assert.False(t, chat.Sending())
	assert.Equal(t, "Failed to get a reply", chat.State().Error)
	assert.Len(t, chat.State().Data, 1, "the user message is kept")
}
