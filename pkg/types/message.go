package types

import (
	"fmt"
	"sort"
	"strings"
)

// Message is one chat line. IsAI is true for assistant-authored messages.
type Message struct {
	ID        string `json:"id"`
	UserID    string `json:"userId" binding:"required"`
	Content   string `json:"content"`
	IsAI      bool   `json:"isAI"`
	Timestamp int64  `json:"timestamp"` // Epoch milliseconds, assigned on create.
}

// EntityID returns the message ID.
func (m Message) EntityID() string { return m.ID }

// Validate requires an owner.
func (m Message) Validate() error {
	if strings.TrimSpace(m.UserID) == "" {
		return fmt.Errorf("%w: userId must not be empty", ErrInvalidData)
	}
	return nil
}

// MessagePatch names the fields of a partial message update.
type MessagePatch struct {
	Content *string `json:"content,omitempty"`
}

// Apply returns a copy of m with the named fields replaced.
func (mp MessagePatch) Apply(m Message) Message {
	if mp.Content != nil {
		m.Content = *mp.Content
	}
	return m
}

// NewestFirst orders msgs by timestamp descending. msgs must be in insertion
// order; ties keep the later insertion first.
func NewestFirst(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	for i, m := range msgs {
		out[len(msgs)-1-i] = m
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}
