// Package memory implements the in-memory mock backend of the PropAI data
// layer. State lives in an explicitly constructed Backend; nothing is global,
// so every test can attach a fresh, isolated instance.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Backend implements types.Service with maps guarded by a single RWMutex.
// Lists preserve insertion order. Config.Latency is slept before every call
// to keep consumer loading states observable; it defaults to zero.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	now      func() time.Time

	properties  *store[types.Property]
	users       *store[types.User]
	messages    *store[types.Message]
	collections *store[types.Collection]

	propertiesTable  *propertiesTable
	usersTable       *usersTable
	messagesTable    *messagesTable
	collectionsTable *collectionsTable
}

// NewBackend creates a new in-memory backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	b := &Backend{now: time.Now}
	b.reset()
	b.propertiesTable = &propertiesTable{b: b}
	b.usersTable = &usersTable{b: b}
	b.messagesTable = &messagesTable{b: b}
	b.collectionsTable = &collectionsTable{b: b}
	return b
}

func (b *Backend) reset() {
	b.properties = newStore(func(p types.Property) types.Property { return p })
	b.users = newStore(types.User.Clone)
	b.messages = newStore(func(m types.Message) types.Message { return m })
	b.collections = newStore(types.Collection.Clone)
}

// Attach initializes the backend with the given configuration, loading the
// demo catalogue when config.Seed is set.
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

	b.reset()
	if config.Seed {
		seedCatalogue(b, b.now())
	}
	b.config = config
	b.attached = true
	return nil
}

// Detach drops all stored entities. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	b.reset()
	return nil
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

// wait simulates network latency. It returns ErrServiceDetached when the
// backend is not attached and the context error if ctx ends first.
func (b *Backend) wait(ctx context.Context) error {
	b.mu.RLock()
	attached, d := b.attached, b.config.Latency
	b.mu.RUnlock()

	if !attached {
		return types.ErrServiceDetached
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// read runs fn under the read lock after the simulated latency.
func (b *Backend) read(ctx context.Context, fn func()) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return types.ErrServiceDetached
	}
	fn()
	return nil
}

// write runs fn under the write lock after the simulated latency.
func (b *Backend) write(ctx context.Context, fn func() error) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrServiceDetached
	}
	return fn()
}

// nowMillis returns the current time in epoch milliseconds.
// The caller must hold b.mu.
func (b *Backend) nowMillis() int64 {
	return types.NowMillis(b.now())
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
