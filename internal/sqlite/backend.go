// Package sqlite implements the persistent SQLite backend of the PropAI data
// layer. The database lives in propai.db under Config.DataDir and survives
// Detach/Attach cycles.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// DatabaseFile is the file name created inside Config.DataDir.
const DatabaseFile = "propai.db"

// Backend implements types.Service on top of database/sql and modernc.org/sqlite.
// mu serializes writers so read-check-write sequences such as the email
// uniqueness check are atomic.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	now      func() time.Time

	propertiesTable  *propertiesTable
	usersTable       *usersTable
	messagesTable    *messagesTable
	collectionsTable *collectionsTable
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	b := &Backend{now: time.Now}
	b.propertiesTable = &propertiesTable{backend: b}
	b.usersTable = &usersTable{backend: b}
	b.messagesTable = &messagesTable{backend: b}
	b.collectionsTable = &collectionsTable{backend: b}
	return b
}

// Attach opens or creates propai.db in DataDir, applies the schema and seeds
// the demo catalogue when config.Seed is set and no property exists yet.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFile))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	if config.Seed {
		if err := seedCatalogue(db, b.now()); err != nil {
			db.Close()
			return fmt.Errorf("seeding catalogue: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database connection. Stored data is kept on disk.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	err := b.db.Close()
	b.db = nil
	return err
}

// Properties returns the property table.
func (b *Backend) Properties() types.PropertyTable { return b.propertiesTable }

// Users returns the user table.
func (b *Backend) Users() types.UserTable { return b.usersTable }

// Messages returns the message table.
func (b *Backend) Messages() types.MessageTable { return b.messagesTable }

// Collections returns the collection table.
func (b *Backend) Collections() types.CollectionTable { return b.collectionsTable }

// SetClock replaces the time source used for createdAt and timestamp values.
func (b *Backend) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// read runs fn with the database under the read lock.
func (b *Backend) read(ctx context.Context, fn func(db *sql.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrServiceDetached
	}
	return fn(b.db)
}

// write runs fn inside a transaction under the write lock. The transaction
// commits only when fn returns nil.
func (b *Backend) write(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrServiceDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// nowMillis returns the current time in epoch milliseconds.
// The caller must hold b.mu.
func (b *Backend) nowMillis() int64 {
	return types.NowMillis(b.now())
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// collect scans every row with hydrate. It never returns a nil slice.
func collect[E any](rows *sql.Rows, hydrate func(rowScanner) (E, error)) ([]E, error) {
	defer rows.Close()
	out := []E{}
	for rows.Next() {
		e, err := hydrate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// queryAll runs query and hydrates every row.
func queryAll[E any](ctx context.Context, q queryer, hydrate func(rowScanner) (E, error), query string, args ...any) ([]E, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, hydrate)
}

// queryOne runs query and hydrates the first row, or returns nil when no
// row matches.
func queryOne[E any](ctx context.Context, q queryer, hydrate func(rowScanner) (E, error), query string, args ...any) (*E, error) {
	e, err := hydrate(q.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// boolToInt converts a bool to the 0/1 INTEGER SQLite stores.
func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
