package resource

import "context"

// Writer is the mutating half of a data-service table.
type Writer[E any, P any] interface {
	Create(ctx context.Context, e E) (*E, error)
	Update(ctx context.Context, id string, patch P) (*E, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// List is a query over a slice of entities with actions that keep the
// cache in step with the store: create adds the returned entity, update
// replaces it in place, delete filters it out. Actions never re-fetch.
type List[E Entity, P any] struct {
	*Query[[]E]
	noun    string
	writer  Writer[E, P]
	prepend bool
}

// NewList returns an inactive list. noun is the singular used in action
// error messages ("Failed to create property"); what names the collection
// for fetch errors.
func NewList[E Entity, P any](noun, what string, w Writer[E, P], fetch func(ctx context.Context) ([]E, error)) *List[E, P] {
	l := &List[E, P]{Query: NewQuery(what, fetch), noun: noun, writer: w}
	l.initial = []E{}
	l.state.Data = l.initial
	return l
}

// NewKeyedList returns an inactive list scoped by key, typically a user id.
func NewKeyedList[E Entity, P any](noun, what, key string, w Writer[E, P], fetch Fetcher[[]E]) *List[E, P] {
	l := &List[E, P]{Query: NewKeyedQuery(what, key, fetch), noun: noun, writer: w}
	l.initial = []E{}
	l.state.Data = l.initial
	return l
}

// Prepend makes Create insert new entities at the front, for lists kept
// newest first.
func (l *List[E, P]) Prepend() *List[E, P] {
	l.prepend = true
	return l
}

// Create stores e and adds the stored entity to the cache.
func (l *List[E, P]) Create(ctx context.Context, e E) (*E, error) {
	created, err := l.writer.Create(ctx, e)
	if err != nil {
		l.Fail("Failed to create "+l.noun, err)
		return nil, err
	}
	l.settle(func(s *State[[]E]) {
		if l.prepend {
			s.Data = append([]E{*created}, s.Data...)
			return
		}
		s.Data = append(cloneSlice(s.Data), *created)
	})
	return created, nil
}

// Update patches the entity and replaces it in the cache. A missing entity
// returns (nil, nil) and leaves the cache alone.
func (l *List[E, P]) Update(ctx context.Context, id string, patch P) (*E, error) {
	updated, err := l.writer.Update(ctx, id, patch)
	if err != nil {
		l.Fail("Failed to update "+l.noun, err)
		return nil, err
	}
	l.settle(func(s *State[[]E]) {
		if updated != nil {
			replaceIn(s, *updated)
		}
	})
	return updated, nil
}

// Delete removes the entity from the store and the cache.
func (l *List[E, P]) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := l.writer.Delete(ctx, id)
	if err != nil {
		l.Fail("Failed to delete "+l.noun, err)
		return false, err
	}
	l.settle(func(s *State[[]E]) {
		kept := make([]E, 0, len(s.Data))
		for _, e := range s.Data {
			if e.EntityID() != id {
				kept = append(kept, e)
			}
		}
		s.Data = kept
	})
	return removed, nil
}

// Modify runs a store call that returns an updated entity and replaces it
// in the cache. action completes the error message, e.g. "add property to"
// gives "Failed to add property to collection".
func (l *List[E, P]) Modify(ctx context.Context, action string, call func(ctx context.Context) (*E, error)) (*E, error) {
	updated, err := call(ctx)
	if err != nil {
		l.Fail("Failed to "+action+" "+l.noun, err)
		return nil, err
	}
	l.settle(func(s *State[[]E]) {
		if updated != nil {
			replaceIn(s, *updated)
		}
	})
	return updated, nil
}

// Truncate runs a store call that removes every cached entity and empties
// the cache when it succeeds.
func (l *List[E, P]) Truncate(ctx context.Context, action string, call func(ctx context.Context) error) error {
	if err := call(ctx); err != nil {
		l.Fail("Failed to "+action, err)
		return err
	}
	l.settle(func(s *State[[]E]) {
		s.Data = []E{}
	})
	return nil
}

// Replace swaps the cached entity with e's id for e. Unknown ids are
// ignored.
func (l *List[E, P]) Replace(e E) {
	l.update(func(s *State[[]E]) { replaceIn(s, e) })
}

func replaceIn[E Entity](s *State[[]E], e E) {
	for i := range s.Data {
		if s.Data[i].EntityID() == e.EntityID() {
			next := cloneSlice(s.Data)
			next[i] = e
			s.Data = next
			return
		}
	}
}

// cloneSlice copies s so published snapshots are never written to.
func cloneSlice[E any](s []E) []E {
	out := make([]E, len(s), len(s)+1)
	copy(out, s)
	return out
}
