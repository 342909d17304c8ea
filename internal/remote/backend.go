package remote

import (
	"context"
	"net/http"
	"sync"

	"github.com/mesh-intelligence/propai/pkg/types"
)

// Backend implements types.Service by calling document-store functions.
// Errors from the store propagate unchanged.
type Backend struct {
	mu         sync.RWMutex
	attached   bool
	client     *Client
	httpClient *http.Client

	propertiesTable  *propertiesTable
	usersTable       *usersTable
	messagesTable    *messagesTable
	collectionsTable *collectionsTable
}

// NewBackend creates a remote backend. A nil httpClient means
// http.DefaultClient. The backend is not attached.
func NewBackend(httpClient *http.Client) *Backend {
	b := &Backend{httpClient: httpClient}
	b.propertiesTable = &propertiesTable{backend: b}
	b.usersTable = &usersTable{backend: b}
	b.messagesTable = &messagesTable{backend: b}
	b.collectionsTable = &collectionsTable{backend: b}
	return b
}

// Attach resolves the endpoint from config. It does not contact the store.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	endpoint, err := ResolveEndpoint(config)
	if err != nil {
		return err
	}
	b.client = NewClient(endpoint, b.httpClient)
	b.attached = true
	return nil
}

// Detach forgets the endpoint. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attached = false
	b.client = nil
	return nil
}

// Client returns the attached function client, or nil when detached.
func (b *Backend) Client() *Client {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.client
}

// Ping checks that the attached store answers its health endpoint.
func (b *Backend) Ping(ctx context.Context) error {
	c := b.Client()
	if c == nil {
		return types.ErrServiceDetached
	}
	return c.Health(ctx)
}

// Properties returns the property table.
func (b *Backend) Properties() types.PropertyTable { return b.propertiesTable }

// Users returns the user table.
func (b *Backend) Users() types.UserTable { return b.usersTable }

// Messages returns the message table.
func (b *Backend) Messages() types.MessageTable { return b.messagesTable }

// Collections returns the collection table.
func (b *Backend) Collections() types.CollectionTable { return b.collectionsTable }

func (b *Backend) query(ctx context.Context, path string, args, out any) error {
	c := b.Client()
	if c == nil {
		return types.ErrServiceDetached
	}
	return c.Query(ctx, path, args, out)
}

func (b *Backend) mutation(ctx context.Context, path string, args, out any) error {
	c := b.Client()
	if c == nil {
		return types.ErrServiceDetached
	}
	return c.Mutation(ctx, path, args, out)
}

// list runs a query returning an array, never yielding a nil slice.
func list[E any](ctx context.Context, b *Backend, path string, args any) ([]E, error) {
	var out []E
	if err := b.query(ctx, path, args, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

// one runs a function returning a single entity or null.
func one[E any](ctx context.Context, call func(context.Context, string, any, any) error, path string, args any) (*E, error) {
	var out *E
	if err := call(ctx, path, args, &out); err != nil {
		return nil, err
	}
	return out, nil
}
