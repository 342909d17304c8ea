// Package resource binds data-service reads to cached {data, loading, error}
// state. A Query fetches once on activation and on every refetch; List adds
// create, update and delete actions that patch the cache locally instead of
// re-fetching; Item tracks one entity by id; Search runs on demand.
//
// All types are safe for concurrent use. Subscribers are called outside the
// internal lock, once per state transition.
package resource

import "fmt"

// Status is the lifecycle position of a resource.
type Status int

// Resource states. Ready and Errored return to Loading on refetch.
const (
	Uninitialized Status = iota
	Loading
	Ready
	Errored
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a snapshot of a resource. Data keeps the last good value while
// a refetch is loading or after it failed. Error is a short human-readable
// message; the underlying cause is logged.
type State[T any] struct {
	Data    T
	Loading bool
	Error   string
	Status  Status
}

// Entity is anything with a stable identifier.
type Entity interface {
	EntityID() string
}
