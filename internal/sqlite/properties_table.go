package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/propai/pkg/types"
)

var _ types.PropertyTable = (*propertiesTable)(nil)

const propertyColumns = "id, title, price, location, bedrooms, bathrooms, area, image, description, type, featured, created_at"

type propertiesTable struct {
	backend *Backend
}

func hydrateProperty(row rowScanner) (types.Property, error) {
	var (
		p        types.Property
		featured int
	)
	err := row.Scan(&p.ID, &p.Title, &p.Price, &p.Location, &p.Bedrooms, &p.Bathrooms,
		&p.Area, &p.Image, &p.Description, &p.Type, &featured, &p.CreatedAt)
	p.Featured = featured != 0
	return p, err
}

func (pt *propertiesTable) List(ctx context.Context) ([]types.Property, error) {
	var out []types.Property
	err := pt.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryAll(ctx, db, hydrateProperty,
			"SELECT "+propertyColumns+" FROM properties ORDER BY seq")
		if err != nil {
			return fmt.Errorf("listing properties: %w", err)
		}
		return nil
	})
	return out, err
}

func (pt *propertiesTable) Get(ctx context.Context, id string) (*types.Property, error) {
	var out *types.Property
	err := pt.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryOne(ctx, db, hydrateProperty,
			"SELECT "+propertyColumns+" FROM properties WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting property %s: %w", id, err)
		}
		return nil
	})
	return out, err
}

func (pt *propertiesTable) Create(ctx context.Context, data types.Property) (*types.Property, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	err := pt.backend.write(ctx, func(tx *sql.Tx) error {
		data.ID = generateUUID()
		data.CreatedAt = pt.backend.nowMillis()
		return insertProperty(ctx, tx, data)
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func insertProperty(ctx context.Context, tx *sql.Tx, p types.Property) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO properties ("+propertyColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Title, p.Price, p.Location, p.Bedrooms, p.Bathrooms,
		p.Area, p.Image, p.Description, p.Type, boolToInt(p.Featured), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

func (pt *propertiesTable) Update(ctx context.Context, id string, patch types.PropertyPatch) (*types.Property, error) {
	var out *types.Property
	err := pt.backend.write(ctx, func(tx *sql.Tx) error {
		cur, err := queryOne(ctx, tx, hydrateProperty,
			"SELECT "+propertyColumns+" FROM properties WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("getting property %s: %w", id, err)
		}
		if cur == nil {
			return nil
		}
		p := patch.Apply(*cur)
		if err := p.Validate(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE properties SET title = ?, price = ?, location = ?, bedrooms = ?, bathrooms = ?,
			area = ?, image = ?, description = ?, type = ?, featured = ? WHERE id = ?`,
			p.Title, p.Price, p.Location, p.Bedrooms, p.Bathrooms,
			p.Area, p.Image, p.Description, p.Type, boolToInt(p.Featured), id,
		)
		if err != nil {
			return fmt.Errorf("updating property %s: %w", id, err)
		}
		out = &p
		return nil
	})
	return out, err
}

func (pt *propertiesTable) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, pt.backend, "properties", id)
}

// Search filters in Go; SQLite lower() only folds ASCII.
func (pt *propertiesTable) Search(ctx context.Context, query string) ([]types.Property, error) {
	all, err := pt.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []types.Property{}
	for _, p := range all {
		if p.Matches(query) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (pt *propertiesTable) Featured(ctx context.Context) ([]types.Property, error) {
	var out []types.Property
	err := pt.backend.read(ctx, func(db *sql.DB) error {
		var err error
		out, err = queryAll(ctx, db, hydrateProperty,
			"SELECT "+propertyColumns+" FROM properties WHERE featured = 1 ORDER BY seq")
		if err != nil {
			return fmt.Errorf("listing featured properties: %w", err)
		}
		return nil
	})
	return out, err
}

// deleteByID removes one row from table and reports whether it existed.
func deleteByID(ctx context.Context, b *Backend, table, id string) (bool, error) {
	var removed bool
	err := b.write(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting from %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		removed = n > 0
		return nil
	})
	return removed, err
}
