package resource

import "context"

// Getter loads one entity by id; a missing entity is (nil, nil).
type Getter[E any] func(ctx context.Context, id string) (*E, error)

// Item tracks a single entity selected by id.
type Item[E any, P any] struct {
	*Query[*E]
	noun   string
	writer Writer[E, P]
}

// NewItem returns an inactive item for id. An empty id never fetches.
func NewItem[E any, P any](noun, id string, w Writer[E, P], get Getter[E]) *Item[E, P] {
	return &Item[E, P]{
		Query:  NewKeyedQuery(noun, id, Fetcher[*E](get)),
		noun:   noun,
		writer: w,
	}
}

// Update patches the tracked entity and caches the result.
func (it *Item[E, P]) Update(ctx context.Context, patch P) (*E, error) {
	id := it.Key()
	updated, err := it.writer.Update(ctx, id, patch)
	if err != nil {
		it.Fail("Failed to update "+it.noun, err)
		return nil, err
	}
	it.settle(func(s *State[*E]) {
		s.Data = updated
	})
	return updated, nil
}

// Delete removes the tracked entity and clears the cached value.
func (it *Item[E, P]) Delete(ctx context.Context) (bool, error) {
	removed, err := it.writer.Delete(ctx, it.Key())
	if err != nil {
		it.Fail("Failed to delete "+it.noun, err)
		return false, err
	}
	it.settle(func(s *State[*E]) {
		s.Data = nil
	})
	return removed, nil
}
