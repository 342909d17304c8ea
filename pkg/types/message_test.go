package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewestFirst(t *testing.T) {
	msgs := []Message{
		{ID: "a", Timestamp: 100},
		{ID: "b", Timestamp: 300},
		{ID: "c", Timestamp: 200},
		{ID: "d", Timestamp: 300},
	}

	got := NewestFirst(msgs)

	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	// Equal timestamps: the later insertion (d) comes first.
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)
	assert.Equal(t, "a", msgs[0].ID, "input must not be reordered")
}

func TestNewestFirstEmpty(t *testing.T) {
	got := NewestFirst(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMessageValidate(t *testing.T) {
	assert.ErrorIs(t, Message{Content: "hi"}.Validate(), ErrInvalidData)
	assert.NoError(t, Message{UserID: "u1", Content: ""}.Validate())
}
