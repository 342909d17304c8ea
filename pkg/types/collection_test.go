package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionMembership(t *testing.T) {
	c := Collection{ID: "c1", UserID: "u1", Name: "Favorites", PropertyIDs: []string{"1", "4"}}

	added := c.WithAdded("1")
	assert.Equal(t, []string{"1", "4", "1"}, added.PropertyIDs, "duplicates are allowed")
	assert.Equal(t, []string{"1", "4"}, c.PropertyIDs, "original is untouched")

	removed := added.WithRemoved("1")
	assert.Equal(t, []string{"4"}, removed.PropertyIDs, "every occurrence is removed")

	assert.True(t, c.Contains("4"))
	assert.False(t, c.Contains("9"))
}

func TestCollectionCloneNilIDs(t *testing.T) {
	c := Collection{ID: "c1"}
	assert.NotNil(t, c.Clone().PropertyIDs)
}

func TestCollectionPatchApply(t *testing.T) {
	c := Collection{ID: "c1", UserID: "u1", Name: "Favorites", PropertyIDs: []string{"1"}, CreatedAt: 5}

	tests := []struct {
		name    string
		patch   CollectionPatch
		wantIDs []string
		wantNm  string
	}{
		{"nil ids unchanged", CollectionPatch{Name: Ptr("Saved")}, []string{"1"}, "Saved"},
		{"empty ids clear", CollectionPatch{PropertyIDs: []string{}}, []string{}, "Favorites"},
		{"replace ids", CollectionPatch{PropertyIDs: []string{"2", "3"}}, []string{"2", "3"}, "Favorites"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(c)
			assert.Equal(t, tt.wantIDs, got.PropertyIDs)
			assert.Equal(t, tt.wantNm, got.Name)
			assert.Equal(t, c.ID, got.ID)
			assert.Equal(t, c.CreatedAt, got.CreatedAt)
		})
	}
}
