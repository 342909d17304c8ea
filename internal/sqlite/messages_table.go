package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/propai/pkg/types"
)

var _ types.MessageTable = (*messagesTable)(nil)

const messageColumns = "id, user_id, content, is_ai, timestamp"

// newestFirst orders by timestamp, breaking ties by later insertion.
const newestFirst = "ORDER BY timestamp DESC, seq DESC"

type messagesTable struct {
	backend *Backend
}

func hydrateMessage(row rowScanner) (types.Message, error) {
	var (
		m    types.Message
		isAI int
	)
	err := row.Scan(&m.ID, &m.UserID, &m.Content, &isAI, &m.Timestamp)
	m.IsAI = isAI != 0
	return m, err
}

func (mt *messagesTable) List(ctx context.Context) ([]types.Message, error) {
	return mt.selectMany(ctx, "ORDER BY seq")
}

func (mt *messagesTable) Get(ctx context.Context, id string) (*types.Message, error) {
	var out *types.Message
	err := mt.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryOne(ctx, db, hydrateMessage,
			"SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting message %s: %w", id, err)
		}
		return nil
	})
	return out, err
}

func (mt *messagesTable) Create(ctx context.Context, data types.Message) (*types.Message, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	err := mt.backend.write(ctx, func(tx *sql.Tx) error {
		data.ID = generateUUID()
		data.Timestamp = mt.backend.nowMillis()
		return insertMessage(ctx, tx, data)
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func insertMessage(ctx context.Context, tx *sql.Tx, m types.Message) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO messages ("+messageColumns+") VALUES (?, ?, ?, ?, ?)",
		m.ID, m.UserID, m.Content, boolToInt(m.IsAI), m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (mt *messagesTable) Update(ctx context.Context, id string, patch types.MessagePatch) (*types.Message, error) {
	var out *types.Message
	err := mt.backend.write(ctx, func(tx *sql.Tx) error {
		cur, err := queryOne(ctx, tx, hydrateMessage,
			"SELECT "+messageColumns+" FROM messages WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting message %s: %w", id, err)
		}
		if cur == nil {
			return nil
		}
		m := patch.Apply(*cur)
		if _, err := tx.ExecContext(ctx, "UPDATE messages SET content = ? WHERE id = ?", m.Content, id); err != nil {
			return fmt.Errorf("updating message %s: %w", id, err)
		}
		out = &m
		return nil
	})
	return out, err
}

func (mt *messagesTable) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, mt.backend, "messages", id)
}

func (mt *messagesTable) ForUser(ctx context.Context, userID string) ([]types.Message, error) {
	return mt.selectMany(ctx, "WHERE user_id = ? "+newestFirst, userID)
}

func (mt *messagesTable) Recent(ctx context.Context, userID string, limit int) ([]types.Message, error) {
	if limit <= 0 {
		limit = types.DefaultRecentLimit
	}
	return mt.selectMany(ctx, "WHERE user_id = ? "+newestFirst+" LIMIT ?", userID, limit)
}

func (mt *messagesTable) ByAuthor(ctx context.Context, userID string, isAI bool) ([]types.Message, error) {
	return mt.selectMany(ctx, "WHERE user_id = ? AND is_ai = ? "+newestFirst, userID, boolToInt(isAI))
}

func (mt *messagesTable) ClearForUser(ctx context.Context, userID string) (int, error) {
	var n int64
	err := mt.backend.write(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM messages WHERE user_id = ?", userID)
		if err != nil {
			return fmt.Errorf("clearing messages for %s: %w", userID, err)
		}
		n, err = res.RowsAffected()
		return err
	})
	return int(n), err
}

func (mt *messagesTable) selectMany(ctx context.Context, clause string, args ...any) ([]types.Message, error) {
	var out []types.Message
	err := mt.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryAll(ctx, db, hydrateMessage, "SELECT "+messageColumns+" FROM messages "+clause, args...)
		if err != nil {
			return fmt.Errorf("listing messages: %w", err)
		}
		return nil
	})
	return out, err
}
