// Package storetest is the behavioural suite every types.Service backend
// must pass. Backend test files call Run with a factory that returns a
// freshly attached, empty service.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Factory returns an attached service with no stored entities. The factory
// registers its own cleanup.
type Factory func(t *testing.T) types.Service

// Run executes every conformance test against services produced by open.
func Run(t *testing.T, open Factory) {
	t.Run("Properties", func(t *testing.T) { testProperties(t, open) })
	t.Run("PropertySearch", func(t *testing.T) { testPropertySearch(t, open) })
	t.Run("Users", func(t *testing.T) { testUsers(t, open) })
	t.Run("UserEmailUnique", func(t *testing.T) { testUserEmailUnique(t, open) })
	t.Run("Messages", func(t *testing.T) { testMessages(t, open) })
	t.Run("Collections", func(t *testing.T) { testCollections(t, open) })
	t.Run("SnapshotIsolation", func(t *testing.T) { testSnapshotIsolation(t, open) })
	t.Run("ConcurrentCreates", func(t *testing.T) { testConcurrentCreates(t, open) })
	t.Run("EmptyKeys", func(t *testing.T) { testEmptyKeys(t, open) })
	t.Run("Detached", func(t *testing.T) { testDetached(t, open) })
}

// NewProperty returns a valid property with the given title.
func NewProperty(title string) types.Property {
	return types.Property{
		Title:       title,
		Price:       "$100,000",
		Location:    "Springfield",
		Bedrooms:    2,
		Bathrooms:   1.5,
		Area:        "900 sq ft",
		Image:       "https://example.com/p.jpg",
		Description: "A test listing.",
		Type:        "apartment",
	}
}

func testProperties(t *testing.T, open Factory) {
	ctx := context.Background()
	props := open(t).Properties()

	list, err := props.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	in := NewProperty("Loft")
	in.ID = "ignored"
	in.CreatedAt = 12345
	created, err := props.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, "ignored", created.ID)
	_, err = uuid.Parse(created.ID)
	assert.NoError(t, err, "ids are UUIDs")
	assert.NotEqual(t, int64(12345), created.CreatedAt)
	assert.Equal(t, "Loft", created.Title)
	assert.Equal(t, 1.5, created.Bathrooms)

	got, err := props.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)

	missing, err := props.Get(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)

	second, err := props.Create(ctx, NewProperty("Bungalow"))
	require.NoError(t, err)
	list, err = props.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID, "insertion order")
	assert.Equal(t, second.ID, list[1].ID)

	updated, err := props.Update(ctx, created.ID, types.PropertyPatch{
		Price:    types.Ptr("$120,000"),
		Featured: types.Ptr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "$120,000", updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Loft", updated.Title, "unpatched fields kept")
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	featured, err := props.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, created.ID, featured[0].ID)

	none, err := props.Update(ctx, "no-such-id", types.PropertyPatch{Title: types.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = props.Create(ctx, types.Property{})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	removed, err := props.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = props.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	list, err = props.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)
}

func testPropertySearch(t *testing.T, open Factory) {
	ctx := context.Background()
	props := open(t).Properties()

	a := NewProperty("Modern Downtown Apartment")
	a.Location = "Downtown, New York"
	b := NewProperty("Beachfront Villa")
	b.Location = "Miami, Florida"
	b.Description = "Direct OCEAN access."
	for _, p := range []types.Property{a, b} {
		_, err := props.Create(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"downtown", []string{"Modern Downtown Apartment"}},
		{"NEW YORK", []string{"Modern Downtown Apartment"}},
		{"ocean", []string{"Beachfront Villa"}},
		{"", []string{"Modern Downtown Apartment", "Beachfront Villa"}},
		{"castle", nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("q=%q", tt.query), func(t *testing.T) {
			got, err := props.Search(ctx, tt.query)
			require.NoError(t, err)
			var titles []string
			for _, p := range got {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func testUsers(t *testing.T, open Factory) {
	ctx := context.Background()
	users := open(t).Users()

	john, err := users.Create(ctx, types.User{Email: "john@example.com", Name: "John Doe", Role: types.RoleBuyer})
	require.NoError(t, err)
	assert.Nil(t, john.Avatar)
	jane, err := users.Create(ctx, types.User{
		Email:  "jane@example.com",
		Name:   "Jane Smith",
		Role:   types.RoleSeller,
		Avatar: types.Ptr("https://example.com/jane.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, jane.Avatar)

	byEmail, err := users.ByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, jane.ID, byEmail.ID)

	nobody, err := users.ByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, nobody)

	buyers, err := users.ByRole(ctx, types.RoleBuyer)
	require.NoError(t, err)
	require.Len(t, buyers, 1)
	assert.Equal(t, john.ID, buyers[0].ID)

	found, err := users.Search(ctx, "SMITH")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, jane.ID, found[0].ID)

	found, err = users.Search(ctx, "example.com")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	updated, err := users.Update(ctx, john.ID, types.UserPatch{Role: types.Ptr(types.RoleSeller)})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, types.RoleSeller, updated.Role)
	assert.Equal(t, "john@example.com", updated.Email)

	_, err = users.Update(ctx, john.ID, types.UserPatch{Role: types.Ptr(types.Role("admin"))})
	assert.ErrorIs(t, err, types.ErrInvalidRole)

	_, err = users.Create(ctx, types.User{Email: "x@example.com", Name: "X", Role: "admin"})
	assert.ErrorIs(t, err, types.ErrInvalidRole)

	removed, err := users.Delete(ctx, john.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func testUserEmailUnique(t *testing.T, open Factory) {
	ctx := context.Background()
	users := open(t).Users()

	_, err := users.Create(ctx, types.User{Email: "dup@example.com", Name: "First", Role: types.RoleBuyer})
	require.NoError(t, err)
	_, err = users.Create(ctx, types.User{Email: "dup@example.com", Name: "Second", Role: types.RoleSeller})
	assert.ErrorIs(t, err, types.ErrEmailTaken)

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := users.Create(ctx, types.User{
				Email: "race@example.com",
				Name:  fmt.Sprintf("Racer %d", i),
				Role:  types.RoleBuyer,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, types.ErrEmailTaken)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, succeeded, "exactly one concurrent signup wins")

	all, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testMessages(t *testing.T, open Factory) {
	ctx := context.Background()
	msgs := open(t).Messages()

	var created []types.Message
	for i, isAI := range []bool{false, true, false} {
		m, err := msgs.Create(ctx, types.Message{UserID: "user-1", Content: fmt.Sprintf("line %d", i), IsAI: isAI})
		require.NoError(t, err)
		assert.NotZero(t, m.Timestamp)
		created = append(created, *m)
	}
	_, err := msgs.Create(ctx, types.Message{UserID: "user-2", Content: "other"})
	require.NoError(t, err)

	_, err = msgs.Create(ctx, types.Message{Content: "orphan"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	mine, err := msgs.ForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, created[2].ID, mine[0].ID, "newest first")
	assert.Equal(t, created[0].ID, mine[2].ID)

	recent, err := msgs.Recent(ctx, "user-1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, created[2].ID, recent[0].ID)

	recent, err = msgs.Recent(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)

	ai, err := msgs.ByAuthor(ctx, "user-1", true)
	require.NoError(t, err)
	require.Len(t, ai, 1)
	assert.Equal(t, created[1].ID, ai[0].ID)

	human, err := msgs.ByAuthor(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Len(t, human, 2)

	edited, err := msgs.Update(ctx, created[0].ID, types.MessagePatch{Content: types.Ptr("edited")})
	require.NoError(t, err)
	require.NotNil(t, edited)
	assert.Equal(t, "edited", edited.Content)
	assert.Equal(t, created[0].Timestamp, edited.Timestamp)

	n, err := msgs.ClearForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mine, err = msgs.ForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.NotNil(t, mine)

	others, err := msgs.ForUser(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, others, 1)

	n, err = msgs.ClearForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testCollections(t *testing.T, open Factory) {
	ctx := context.Background()
	cols := open(t).Collections()

	fav, err := cols.Create(ctx, types.Collection{UserID: "user-1", Name: "Favorites"})
	require.NoError(t, err)
	assert.NotNil(t, fav.PropertyIDs)
	assert.Empty(t, fav.PropertyIDs)

	down, err := cols.Create(ctx, types.Collection{UserID: "user-1", Name: "Downtown", PropertyIDs: []string{"1", "3"}})
	require.NoError(t, err)
	_, err = cols.Create(ctx, types.Collection{UserID: "user-2", Name: "Theirs", PropertyIDs: []string{"3"}})
	require.NoError(t, err)

	_, err = cols.Create(ctx, types.Collection{UserID: "user-1"})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	mine, err := cols.ForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, fav.ID, mine[0].ID)

	got, err := cols.AddProperty(ctx, fav.ID, "4")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"4"}, got.PropertyIDs)

	got, err = cols.AddProperty(ctx, fav.ID, "4")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "4"}, got.PropertyIDs, "duplicates allowed")

	got, err = cols.RemoveProperty(ctx, fav.ID, "4")
	require.NoError(t, err)
	assert.Empty(t, got.PropertyIDs, "every occurrence removed")

	got, err = cols.AddProperty(ctx, "no-such-id", "4")
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = cols.RemoveProperty(ctx, "no-such-id", "4")
	require.NoError(t, err)
	assert.Nil(t, got)

	with, err := cols.WithProperty(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, with, 2)

	renamed, err := cols.Update(ctx, down.ID, types.CollectionPatch{Name: types.Ptr("Midtown")})
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, "Midtown", renamed.Name)
	assert.Equal(t, []string{"1", "3"}, renamed.PropertyIDs, "nil ids leave membership")

	cleared, err := cols.Update(ctx, down.ID, types.CollectionPatch{PropertyIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, cleared.PropertyIDs)

	removed, err := cols.Delete(ctx, down.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}

func testSnapshotIsolation(t *testing.T, open Factory) {
	ctx := context.Background()
	svc := open(t)

	col, err := svc.Collections().Create(ctx, types.Collection{UserID: "u", Name: "n", PropertyIDs: []string{"1"}})
	require.NoError(t, err)
	col.PropertyIDs[0] = "mutated"

	list, err := svc.Collections().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	list[0].PropertyIDs[0] = "mutated again"
	list[0].Name = "renamed"

	got, err := svc.Collections().Get(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, got.PropertyIDs)
	assert.Equal(t, "n", got.Name)

	before, err := svc.Properties().List(ctx)
	require.NoError(t, err)
	_, err = svc.Properties().Create(ctx, NewProperty("later"))
	require.NoError(t, err)
	assert.Len(t, before, 0, "earlier snapshot unaffected")
}

func testConcurrentCreates(t *testing.T, open Factory) {
	ctx := context.Background()
	props := open(t).Properties()

	const n = 16
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := props.Create(ctx, NewProperty(fmt.Sprintf("p%d", i)))
			if assert.NoError(t, err) {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	list, err := props.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

// testEmptyKeys checks that empty ids, emails and roles outside the enum
// read as absent, and that a non-positive Recent limit selects the default.
func testEmptyKeys(t *testing.T, open Factory) {
	svc := open(t)
	ctx := context.Background()

	user, err := svc.Users().Create(ctx, types.User{Email: "empty@example.com", Name: "Empty", Role: types.RoleBuyer})
	require.NoError(t, err)
	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.Messages().Create(ctx, types.Message{UserID: user.ID, Content: content})
		require.NoError(t, err)
	}
	_, err = svc.Collections().Create(ctx, types.Collection{UserID: user.ID, Name: "Saved"})
	require.NoError(t, err)

	p, err := svc.Properties().Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, p)
	pu, err := svc.Properties().Update(ctx, "", types.PropertyPatch{Title: types.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, pu)
	removed, err := svc.Properties().Delete(ctx, "")
	require.NoError(t, err)
	assert.False(t, removed)

	u, err := svc.Users().Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, u)
	u, err = svc.Users().ByEmail(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, u)
	admins, err := svc.Users().ByRole(ctx, types.Role("admin"))
	require.NoError(t, err)
	assert.Empty(t, admins)
	removed, err = svc.Users().Delete(ctx, "")
	require.NoError(t, err)
	assert.False(t, removed)

	m, err := svc.Messages().Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, m)
	mu, err := svc.Messages().Update(ctx, "", types.MessagePatch{Content: types.Ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, mu)
	for _, limit := range []int{0, -1} {
		recent, err := svc.Messages().Recent(ctx, user.ID, limit)
		require.NoError(t, err, "limit %d", limit)
		assert.Len(t, recent, 3, "limit %d", limit)
	}
	none, err := svc.Messages().ForUser(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
	cleared, err := svc.Messages().ClearForUser(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, cleared)

	c, err := svc.Collections().Get(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, c)
	c, err = svc.Collections().AddProperty(ctx, "", "1")
	require.NoError(t, err)
	assert.Nil(t, c)
	c, err = svc.Collections().RemoveProperty(ctx, "", "1")
	require.NoError(t, err)
	assert.Nil(t, c)
	removed, err = svc.Collections().Delete(ctx, "")
	require.NoError(t, err)
	assert.False(t, removed)
	holding, err := svc.Collections().WithProperty(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, holding)
}

func testDetached(t *testing.T, open Factory) {
	ctx := context.Background()
	svc := open(t)
	require.NoError(t, svc.Detach())
	require.NoError(t, svc.Detach(), "detach is idempotent")

	_, err := svc.Properties().List(ctx)
	assert.ErrorIs(t, err, types.ErrServiceDetached)
	_, err = svc.Users().Create(ctx, types.User{Email: "a@b.c", Name: "a", Role: types.RoleBuyer})
	assert.ErrorIs(t, err, types.ErrServiceDetached)
}
