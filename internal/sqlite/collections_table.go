package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/propai/pkg/types"
)

var _ types.CollectionTable = (*collectionsTable)(nil)

const collectionColumns = "id, user_id, name, property_ids, created_at"

type collectionsTable struct {
	backend *Backend
}

// hydrateCollection decodes property_ids, stored as a JSON array.
func hydrateCollection(row rowScanner) (types.Collection, error) {
	var (
		c   types.Collection
		ids string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &ids, &c.CreatedAt); err != nil {
		return c, err
	}
	if err := json.Unmarshal([]byte(ids), &c.PropertyIDs); err != nil {
		return c, fmt.Errorf("decoding property ids of %s: %w", c.ID, err)
	}
	return c.Clone(), nil
}

func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	return string(b), err
}

func (ct *collectionsTable) List(ctx context.Context) ([]types.Collection, error) {
	return ct.selectMany(ctx, "ORDER BY seq")
}

func (ct *collectionsTable) Get(ctx context.Context, id string) (*types.Collection, error) {
	var out *types.Collection
	err := ct.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryOne(ctx, db, hydrateCollection,
			"SELECT "+collectionColumns+" FROM collections WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting collection %s: %w", id, err)
		}
		return nil
	})
	return out, err
}

func (ct *collectionsTable) Create(ctx context.Context, data types.Collection) (*types.Collection, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	c := data.Clone()
	err := ct.backend.write(ctx, func(tx *sql.Tx) error {
		c.ID = generateUUID()
		c.CreatedAt = ct.backend.nowMillis()
		return insertCollection(ctx, tx, c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func insertCollection(ctx context.Context, tx *sql.Tx, c types.Collection) error {
	ids, err := encodeIDs(c.PropertyIDs)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO collections ("+collectionColumns+") VALUES (?, ?, ?, ?, ?)",
		c.ID, c.UserID, c.Name, ids, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting collection: %w", err)
	}
	return nil
}

func (ct *collectionsTable) Update(ctx context.Context, id string, patch types.CollectionPatch) (*types.Collection, error) {
	return ct.modify(ctx, id, func(c types.Collection) (types.Collection, error) {
		c = patch.Apply(c)
		return c, c.Validate()
	})
}

func (ct *collectionsTable) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, ct.backend, "collections", id)
}

func (ct *collectionsTable) ForUser(ctx context.Context, userID string) ([]types.Collection, error) {
	return ct.selectMany(ctx, "WHERE user_id = ? ORDER BY seq", userID)
}

func (ct *collectionsTable) AddProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return ct.modify(ctx, collectionID, func(c types.Collection) (types.Collection, error) {
		return c.WithAdded(propertyID), nil
	})
}

func (ct *collectionsTable) RemoveProperty(ctx context.Context, collectionID, propertyID string) (*types.Collection, error) {
	return ct.modify(ctx, collectionID, func(c types.Collection) (types.Collection, error) {
		return c.WithRemoved(propertyID), nil
	})
}

// WithProperty uses json_each to scan the stored id arrays.
func (ct *collectionsTable) WithProperty(ctx context.Context, propertyID string) ([]types.Collection, error) {
	return ct.selectMany(ctx,
		"WHERE EXISTS (SELECT 1 FROM json_each(collections.property_ids) WHERE json_each.value = ?) ORDER BY seq",
		propertyID)
}

func (ct *collectionsTable) modify(ctx context.Context, id string, fn func(types.Collection) (types.Collection, error)) (*types.Collection, error) {
	var out *types.Collection
	err := ct.backend.write(ctx, func(tx *sql.Tx) error {
		cur, err := queryOne(ctx, tx, hydrateCollection,
			"SELECT "+collectionColumns+" FROM collections WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting collection %s: %w", id, err)
		}
		if cur == nil {
			return nil
		}
		c, err := fn(*cur)
		if err != nil {
			return err
		}
		ids, err := encodeIDs(c.PropertyIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE collections SET name = ?, property_ids = ? WHERE id = ?", c.Name, ids, id,
		); err != nil {
			return fmt.Errorf("updating collection %s: %w", id, err)
		}
		out = &c
		return nil
	})
	return out, err
}

func (ct *collectionsTable) selectMany(ctx context.Context, clause string, args ...any) ([]types.Collection, error) {
	var out []types.Collection
	err := ct.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryAll(ctx, db, hydrateCollection, "SELECT "+collectionColumns+" FROM collections "+clause, args...)
		if err != nil {
			return fmt.Errorf("listing collections: %w", err)
		}
		return nil
	})
	return out, err
}
