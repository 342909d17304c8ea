// Package gormstore implements the MySQL backend of the PropAI data layer
// through GORM. The schema is created with AutoMigrate on attach.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/mesh-intelligence/propai/internal/catalogue"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// Backend implements types.Service over a *gorm.DB. Uniqueness of email is
// enforced by a unique index, so it holds across processes sharing the
// database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *gorm.DB
	now      func() time.Time

	propertiesTable  *propertiesTable
	usersTable       *usersTable
	messagesTable    *messagesTable
	collectionsTable *collectionsTable
}

// NewBackend creates a new MySQL backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	b := &Backend{now: time.Now}
	b.propertiesTable = &propertiesTable{backend: b}
	b.usersTable = &usersTable{backend: b}
	b.messagesTable = &messagesTable{backend: b}
	b.collectionsTable = &collectionsTable{backend: b}
	return b
}

// Attach connects to config.DSN, migrates the schema and seeds the demo
// catalogue when config.Seed is set and the properties table is empty.
// The pool is closed again when any step fails.
func (b *Backend) Attach(config types.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	db, err := gorm.Open(mysql.Open(config.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		closePool(db)
		return fmt.Errorf("opening mysql: %w", err)
	}
	return b.attachLocked(db, config.Seed)
}

// AttachDB attaches to an already opened database handle and takes
// ownership of its pool: Detach closes it, and so does a failed attach.
func (b *Backend) AttachDB(db *gorm.DB, seed bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	return b.attachLocked(db, seed)
}

func (b *Backend) attachLocked(db *gorm.DB, seed bool) error {
	if err := prepare(db, seed, b.now()); err != nil {
		closePool(db)
		return err
	}
	b.db = db
	b.attached = true
	return nil
}

func prepare(db *gorm.DB, seed bool, now time.Time) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	if err := db.AutoMigrate(&propertyRow{}, &userRow{}, &messageRow{}, &collectionRow{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	if seed {
		if err := seedCatalogue(db, now); err != nil {
			return fmt.Errorf("seeding catalogue: %w", err)
		}
	}
	return nil
}

func closePool(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// Detach closes the connection pool. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	sqlDB, err := b.db.DB()
	b.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Properties returns the property table.
func (b *Backend) Properties() types.PropertyTable { return b.propertiesTable }

// Users returns the user table.
func (b *Backend) Users() types.UserTable { return b.usersTable }

// Messages returns the message table.
func (b *Backend) Messages() types.MessageTable { return b.messagesTable }

// Collections returns the collection table.
func (b *Backend) Collections() types.CollectionTable { return b.collectionsTable }

// session returns a context-bound handle, or ErrServiceDetached.
func (b *Backend) session(ctx context.Context) (*gorm.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrServiceDetached
	}
	return b.db.WithContext(ctx), nil
}

func (b *Backend) nowMillis() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return types.NowMillis(b.now())
}

// find loads every row matching the scopes into entities.
func find[R entityRow[E], E any](ctx context.Context, b *Backend, scopes ...func(*gorm.DB) *gorm.DB) ([]E, error) {
	db, err := b.session(ctx)
	if err != nil {
		return nil, err
	}
	var rows []R
	if err := db.Scopes(scopes...).Order("seq").Find(&rows).Error; err != nil {
		return nil, err
	}
	return entities[R, E](rows), nil
}

// first loads the row with the given public id, or nil.
func first[R entityRow[E], E any](ctx context.Context, b *Backend, id string) (*E, error) {
	db, err := b.session(ctx)
	if err != nil {
		return nil, err
	}
	var row R
	err = db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := row.entity()
	return &e, nil
}

// modify runs a locked read-modify-write on the row with the given id and
// returns the saved entity, or nil when no row matches.
func modify[R entityRow[E], E any](ctx context.Context, b *Backend, id string, fn func(E) (R, error)) (*E, error) {
	db, err := b.session(ctx)
	if err != nil {
		return nil, err
	}
	var out *E
	err = db.Transaction(func(tx *gorm.DB) error {
		var row R
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		next, err := fn(row.entity())
		if err != nil {
			return err
		}
		if err := tx.Model(&row).Select("*").Omit("seq", "id", "created_at").Updates(&next).Error; err != nil {
			return err
		}
		e := next.entity()
		out = &e
		return nil
	})
	return out, err
}

// remove deletes the row with the given id and reports whether it existed.
func remove[R any](ctx context.Context, b *Backend, id string) (bool, error) {
	db, err := b.session(ctx)
	if err != nil {
		return false, err
	}
	res := db.Where("id = ?", id).Delete(new(R))
	return res.RowsAffected > 0, res.Error
}

func seedCatalogue(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&propertyRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	c := catalogue.Demo(now)
	return db.Transaction(func(tx *gorm.DB) error {
		for _, p := range c.Properties {
			row := newPropertyRow(p)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, u := range c.Users {
			row := newUserRow(u)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, m := range c.Messages {
			row := newMessageRow(m)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, col := range c.Collections {
			row := newCollectionRow(col)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
