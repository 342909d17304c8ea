package types

import (
	"context"
	"errors"
)

// Service defines the interface for backend-agnostic entity storage.
// Callers attach to a backend, use the typed tables, and detach when done.
// Table values stay valid across Attach/Detach; while detached every table
// operation returns ErrServiceDetached.
type Service interface {
	// Attach connects the Service to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	Detach() error

	Properties() PropertyTable
	Users() UserTable
	Messages() MessageTable
	Collections() CollectionTable
}

// Table provides uniform CRUD operations for a single entity type E whose
// partial updates are described by P.
type Table[E any, P any] interface {
	// List returns a snapshot copy of every entity in insertion order.
	List(ctx context.Context) ([]E, error)

	// Get returns the entity with the given ID, or nil when absent.
	Get(ctx context.Context, id string) (*E, error)

	// Create stores a new entity. The ID and creation timestamp of data are
	// ignored; the backend assigns a UUID v7 and the current time.
	Create(ctx context.Context, data E) (*E, error)

	// Update merges patch into the stored entity and returns the result,
	// or nil when no entity has that ID. ID and creation time never change.
	Update(ctx context.Context, id string, patch P) (*E, error)

	// Delete removes the entity and reports whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// PropertyTable adds the property-specific reads.
type PropertyTable interface {
	Table[Property, PropertyPatch]

	// Search matches query case-insensitively against title, location and
	// description. An empty query matches every property.
	Search(ctx context.Context, query string) ([]Property, error)

	// Featured returns the featured properties in list order.
	Featured(ctx context.Context) ([]Property, error)
}

// UserTable adds the user-specific reads.
type UserTable interface {
	Table[User, UserPatch]

	// ByEmail returns the user with exactly this email, or nil.
	ByEmail(ctx context.Context, email string) (*User, error)
	ByRole(ctx context.Context, role Role) ([]User, error)

	// Search matches query case-insensitively against name and email.
	Search(ctx context.Context, query string) ([]User, error)
}

// MessageTable adds the per-user message reads. All of them return messages
// newest first.
type MessageTable interface {
	Table[Message, MessagePatch]

	ForUser(ctx context.Context, userID string) ([]Message, error)

	// Recent returns at most limit messages; limit <= 0 means DefaultRecentLimit.
	Recent(ctx context.Context, userID string, limit int) ([]Message, error)

	// ByAuthor filters a user's messages by the isAI discriminator.
	ByAuthor(ctx context.Context, userID string, isAI bool) ([]Message, error)

	// ClearForUser deletes every message of the user and returns the count.
	ClearForUser(ctx context.Context, userID string) (int, error)
}

// CollectionTable adds collection membership operations.
type CollectionTable interface {
	Table[Collection, CollectionPatch]

	ForUser(ctx context.Context, userID string) ([]Collection, error)

	// AddProperty appends propertyID (duplicates allowed). Returns nil when
	// the collection does not exist.
	AddProperty(ctx context.Context, collectionID, propertyID string) (*Collection, error)

	// RemoveProperty removes every occurrence of propertyID. Returns nil when
	// the collection does not exist.
	RemoveProperty(ctx context.Context, collectionID, propertyID string) (*Collection, error)

	// WithProperty returns the collections whose PropertyIDs contain propertyID.
	WithProperty(ctx context.Context, propertyID string) ([]Collection, error)
}

// DefaultRecentLimit is the number of messages MessageTable.Recent returns
// when no positive limit is given.
const DefaultRecentLimit = 50

// Service lifecycle errors.
var (
	ErrServiceDetached = errors.New("service is detached")
	ErrAlreadyAttached = errors.New("service is already attached")
)
