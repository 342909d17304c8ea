package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/propai/pkg/types"
)

func TestStoreOrderAndClone(t *testing.T) {
	s := newStore(types.Collection.Clone)
	s.insert("a", types.Collection{ID: "a", PropertyIDs: []string{"1"}})
	s.insert("b", types.Collection{ID: "b"})
	s.insert("c", types.Collection{ID: "c"})

	assert.Equal(t, 3, s.len())
	assert.True(t, s.remove("b"))
	assert.False(t, s.remove("b"))

	all := s.all()
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "c", all[1].ID)

	all[0].PropertyIDs[0] = "mutated"
	got, ok := s.get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"1"}, got.PropertyIDs)

	assert.False(t, s.replace("missing", types.Collection{}))
	assert.NotNil(t, s.filter(func(types.Collection) bool { return false }))
}
