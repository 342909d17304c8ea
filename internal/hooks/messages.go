package hooks

import (
	"context"

	"github.com/mesh-intelligence/propai/internal/resource"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// Messages is a user's conversation, newest first.
type Messages struct {
	*resource.List[types.Message, types.MessagePatch]
	table types.MessageTable
}

// NewMessages lists the messages of userID. An empty userID loads nothing.
func NewMessages(svc types.Service, userID string) *Messages {
	t := svc.Messages()
	l := resource.NewKeyedList[types.Message, types.MessagePatch]("message", "messages", userID, t, t.ForUser)
	return &Messages{List: l.Prepend(), table: t}
}

// Post stores a message authored by the current user, or by the assistant
// when isAI is set.
func (m *Messages) Post(ctx context.Context, content string, isAI bool) (*types.Message, error) {
	return m.Create(ctx, types.Message{UserID: m.Key(), Content: content, IsAI: isAI})
}

// Clear deletes the whole conversation and returns how many messages were
// removed.
func (m *Messages) Clear(ctx context.Context) (int, error) {
	userID := m.Key()
	if userID == "" {
		return 0, nil
	}
	var n int
	err := m.Truncate(ctx, "clear messages", func(ctx context.Context) error {
		var err error
		n, err = m.table.ClearForUser(ctx, userID)
		return err
	})
	return n, err
}

// NewRecentMessages lists at most limit of the user's newest messages;
// limit <= 0 means types.DefaultRecentLimit.
func NewRecentMessages(svc types.Service, userID string, limit int) *resource.Query[[]types.Message] {
	t := svc.Messages()
	return resource.NewKeyedQuery("recent messages", userID, func(ctx context.Context, key string) ([]types.Message, error) {
		return t.Recent(ctx, key, limit)
	})
}

// NewAIMessages lists the assistant's replies to userID.
func NewAIMessages(svc types.Service, userID string) *resource.Query[[]types.Message] {
	return byAuthor(svc, "AI messages", userID, true)
}

// NewUserAuthoredMessages lists the messages userID wrote.
func NewUserAuthoredMessages(svc types.Service, userID string) *resource.Query[[]types.Message] {
	return byAuthor(svc, "user messages", userID, false)
}

func byAuthor(svc types.Service, what, userID string, isAI bool) *resource.Query[[]types.Message] {
	t := svc.Messages()
	return resource.NewKeyedQuery(what, userID, func(ctx context.Context, key string) ([]types.Message, error) {
		return t.ByAuthor(ctx, key, isAI)
	})
}
