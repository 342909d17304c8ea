// Package store is the public entry point to the PropAI Data Service. It
// picks a backend implementation by name while keeping the implementations
// internal.
package store

import (
	"fmt"

	"github.com/mesh-intelligence/propai/internal/gormstore"
	"github.com/mesh-intelligence/propai/internal/memory"
	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/internal/sqlite"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// NewBackend returns an unattached Service for the named backend.
func NewBackend(name string) (types.Service, error) {
	switch name {
	case types.BackendMemory:
		return memory.NewBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendRemote:
		return remote.NewBackend(nil), nil
	case types.BackendMySQL:
		return gormstore.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

// Open creates the backend named by config.Backend and attaches it.
//
// Example:
//
//	svc, err := store.Open(types.Config{Backend: types.BackendMemory, Seed: true})
//	if err != nil {
//	    return err
//	}
//	defer svc.Detach()
func Open(config types.Config) (types.Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	svc, err := NewBackend(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := svc.Attach(config); err != nil {
		return nil, fmt.Errorf("attach %s backend: %w", config.Backend, err)
	}
	return svc, nil
}
