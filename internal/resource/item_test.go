package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem(t *testing.T) {
	store := newFakeStore("a", "b")
	it := NewItem[thing, thingPatch]("thing", "t2", store, store.get)

	s := it.Activate(context.Background())
	require.Equal(t, Ready, s.Status)
	assert.Equal(t, "b", s.Data.Name)

	updated, err := it.Update(context.Background(), thingPatch{Name: ptr("B")})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, "B", it.State().Data.Name)

	removed, err := it.Delete(context.Background())
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Nil(t, it.State().Data)
}

func TestItemMissing(t *testing.T) {
	store := newFakeStore("a")
	it := NewItem[thing, thingPatch]("thing", "nope", store, store.get)

	s := it.Activate(context.Background())
	assert.Equal(t, Ready, s.Status)
	assert.Nil(t, s.Data)
	assert.Empty(t, s.Error)
}

func TestItemErrors(t *testing.T) {
	store := newFakeStore("a")
	it := NewItem[thing, thingPatch]("thing", "t1", store, store.get)
	it.Activate(context.Background())

	store.fail(errBoom)
	_, err := it.Update(context.Background(), thingPatch{Name: ptr("x")})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, "Failed to update thing", it.State().Error)
	assert.Equal(t, "a", it.State().Data.Name)

	store.fail(nil)
	updated, err := it.Update(context.Background(), thingPatch{Name: ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, "x", updated.Name)
	assert.Equal(t, Ready, it.State().Status)
	assert.Empty(t, it.State().Error)

	store.fail(errBoom)
	s := it.Refetch(context.Background())
	assert.Equal(t, "Failed to fetch thing", s.Error)
}

func TestItemSwitchID(t *testing.T) {
	store := newFakeStore("a", "b")
	it := NewItem[thing, thingPatch]("thing", "", store, store.get)

	assert.Equal(t, Uninitialized, it.Activate(context.Background()).Status)
	s := it.SetKey(context.Background(), "t1")
	assert.Equal(t, "a", s.Data.Name)
}
