package memory

import (
	"context"

	"github.com/mesh-intelligence/propai/pkg/types"
)

type messagesTable struct {
	b *Backend
}

func (t *messagesTable) List(ctx context.Context) ([]types.Message, error) {
	var out []types.Message
	err := t.b.read(ctx, func() { out = t.b.messages.all() })
	return out, err
}

func (t *messagesTable) Get(ctx context.Context, id string) (*types.Message, error) {
	var out *types.Message
	err := t.b.read(ctx, func() {
		if m, ok := t.b.messages.get(id); ok {
			out = &m
		}
	})
	return out, err
}

func (t *messagesTable) Create(ctx context.Context, data types.Message) (*types.Message, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	var out *types.Message
	err := t.b.write(ctx, func() error {
		data.ID = generateUUID()
		data.Timestamp = t.b.nowMillis()
		t.b.messages.insert(data.ID, data)
		out = &data
		return nil
	})
	return out, err
}

func (t *messagesTable) Update(ctx context.Context, id string, patch types.MessagePatch) (*types.Message, error) {
	var out *types.Message
	err := t.b.write(ctx, func() error {
		m, ok := t.b.messages.get(id)
		if !ok {
			return nil
		}
		m = patch.Apply(m)
		t.b.messages.replace(id, m)
		out = &m
		return nil
	})
	return out, err
}

func (t *messagesTable) Delete(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := t.b.write(ctx, func() error {
		removed = t.b.messages.remove(id)
		return nil
	})
	return removed, err
}

func (t *messagesTable) ForUser(ctx context.Context, userID string) ([]types.Message, error) {
	var out []types.Message
	err := t.b.read(ctx, func() {
		out = types.NewestFirst(t.b.messages.filter(func(m types.Message) bool {
			return m.UserID == userID
		}))
	})
	return out, err
}

func (t *messagesTable) Recent(ctx context.Context, userID string, limit int) ([]types.Message, error) {
	msgs, err := t.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = types.DefaultRecentLimit
	}
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

func (t *messagesTable) ByAuthor(ctx context.Context, userID string, isAI bool) ([]types.Message, error) {
	var out []types.Message
	err := t.b.read(ctx, func() {
		out = types.NewestFirst(t.b.messages.filter(func(m types.Message) bool {
			return m.UserID == userID && m.IsAI == isAI
		}))
	})
	return out, err
}

func (t *messagesTable) ClearForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := t.b.write(ctx, func() error {
		for _, m := range t.b.messages.filter(func(m types.Message) bool { return m.UserID == userID }) {
			if t.b.messages.remove(m.ID) {
				n++
			}
		}
		return nil
	})
	return n, err
}
