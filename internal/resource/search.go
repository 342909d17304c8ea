package resource

import (
	"context"
	"strings"
)

// Search runs a text query on demand and caches the latest results.
type Search[E any] struct {
	q *Query[[]E]
}

// NewSearch returns a search that has not run yet.
func NewSearch[E any](what string, search Fetcher[[]E]) *Search[E] {
	q := NewKeyedQuery(what, "", search)
	q.failMsg = "Search failed"
	q.initial = []E{}
	q.state.Data = []E{}
	return &Search[E]{q: q}
}

// Search runs query. A blank query resets the results to empty without
// calling the store. Running the current query again refreshes it. Results
// of a superseded query are dropped.
func (s *Search[E]) Search(ctx context.Context, query string) State[[]E] {
	query = strings.TrimSpace(query)
	if query != "" && query == s.q.Key() {
		return s.q.Refetch(ctx)
	}
	return s.q.SetKey(ctx, query)
}

// State returns the current results.
func (s *Search[E]) State() State[[]E] { return s.q.State() }

// Query returns the text of the last search.
func (s *Search[E]) Query() string { return s.q.Key() }

// Subscribe registers fn for every state change.
func (s *Search[E]) Subscribe(fn func(State[[]E])) func() { return s.q.Subscribe(fn) }

// Close drops subscribers and discards in-flight results.
func (s *Search[E]) Close() { s.q.Close() }
