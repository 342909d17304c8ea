package hooks

import (
	"context"
	"strings"
	"sync"

	"github.com/mesh-intelligence/propai/internal/assistant"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// Chat is a conversation between a user and a Responder. Both sides of the
// exchange go through the messages list so the cache stays current.
type Chat struct {
	*Messages
	responder assistant.Responder

	mu      sync.Mutex
	sending int
}

// NewChat returns the chat of userID answered by responder.
func NewChat(svc types.Service, userID string, responder assistant.Responder) *Chat {
	return &Chat{Messages: NewMessages(svc, userID), responder: responder}
}

// Send stores text as a user message, asks the responder, and stores the
// reply. It returns the reply. Blank text is ignored.
func (c *Chat) Send(ctx context.Context, text string) (*types.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	c.setSending(1)
	defer c.setSending(-1)

	if _, err := c.Post(ctx, text, false); err != nil {
		return nil, err
	}
	answer, err := c.responder.Respond(ctx, text)
	if err != nil {
		c.Fail("Failed to get a reply", err)
		return nil, err
	}
	return c.Post(ctx, answer, true)
}

// Sending reports whether a Send is in flight.
func (c *Chat) Sending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sending > 0
}

func (c *Chat) setSending(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending += delta
}
