package resource

import (
	"context"
	"log/slog"
	"sync"
)

// Fetcher loads the value for key. Unkeyed queries receive an empty key.
type Fetcher[T any] func(ctx context.Context, key string) (T, error)

// Query caches the result of one fetch function.
type Query[T any] struct {
	mu        sync.Mutex
	what      string
	failMsg   string
	fetch     Fetcher[T]
	keyed     bool
	key       string
	initial   T
	state     State[T]
	activated bool
	failed    bool
	preFail   Status
	gen       uint64
	inflight  chan struct{}
	closed    bool
	subs      map[int]func(State[T])
	nextSub   int
	logger    *slog.Logger
}

// NewQuery returns an inactive query. what names the resource in error
// messages, e.g. "properties" gives "Failed to fetch properties".
func NewQuery[T any](what string, fetch func(ctx context.Context) (T, error)) *Query[T] {
	return newQuery(what, false, "", func(ctx context.Context, _ string) (T, error) {
		return fetch(ctx)
	})
}

// NewKeyedQuery returns an inactive query parametrized by key. An empty key
// means there is nothing to load yet: the query stays Uninitialized and
// never calls fetch.
func NewKeyedQuery[T any](what, key string, fetch Fetcher[T]) *Query[T] {
	return newQuery(what, true, key, fetch)
}

func newQuery[T any](what string, keyed bool, key string, fetch Fetcher[T]) *Query[T] {
	return &Query[T]{
		what:    what,
		failMsg: "Failed to fetch " + what,
		fetch:   fetch,
		keyed:   keyed,
		key:     key,
		subs:    make(map[int]func(State[T])),
	}
}

// SetLogger replaces the logger used for fetch failures. The default is
// slog.Default at the time of logging.
func (q *Query[T]) SetLogger(logger *slog.Logger) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.logger = logger
}

// State returns the current snapshot.
func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Key returns the current key.
func (q *Query[T]) Key() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.key
}

// Activate performs the first fetch and blocks until it settles. Later
// calls, including concurrent ones, join that fetch instead of starting
// another; they return the current state once it completes.
func (q *Query[T]) Activate(ctx context.Context) State[T] {
	q.mu.Lock()
	if q.activated || q.closed {
		done := q.inflight
		snap := q.state
		q.mu.Unlock()
		return q.wait(ctx, done, snap)
	}
	q.activated = true
	if q.keyed && q.key == "" {
		q.state = State[T]{Data: q.initial}
		snap := q.state
		q.mu.Unlock()
		return snap
	}
	gen, key, done, snap, subs := q.beginLocked()
	q.mu.Unlock()

	notify(subs, snap)
	return q.run(ctx, gen, key, done)
}

// Refetch reloads unconditionally and blocks until the fetch settles.
// Previous data stays visible while loading. A keyed query with an empty
// key does nothing.
func (q *Query[T]) Refetch(ctx context.Context) State[T] {
	q.mu.Lock()
	if q.closed || (q.keyed && q.key == "") {
		snap := q.state
		q.mu.Unlock()
		return snap
	}
	q.activated = true
	gen, key, done, snap, subs := q.beginLocked()
	q.mu.Unlock()

	notify(subs, snap)
	return q.run(ctx, gen, key, done)
}

// SetKey switches a keyed query to key. A changed non-empty key clears the
// cached data and fetches; an empty key resets to Uninitialized without a
// call. Results still in flight for the previous key are discarded. Setting
// the current key is a no-op once the query has been activated.
func (q *Query[T]) SetKey(ctx context.Context, key string) State[T] {
	q.mu.Lock()
	if q.closed || (q.activated && key == q.key) {
		snap := q.state
		q.mu.Unlock()
		return snap
	}
	q.key = key
	q.activated = true
	q.state = State[T]{Data: q.initial}
	if key == "" {
		q.gen++
		q.inflight = nil
		snap, subs := q.state, q.subscribersLocked()
		q.mu.Unlock()
		notify(subs, snap)
		return snap
	}
	gen, key, done, snap, subs := q.beginLocked()
	q.mu.Unlock()

	notify(subs, snap)
	return q.run(ctx, gen, key, done)
}

// Subscribe registers fn for every state change and returns a function that
// removes it.
func (q *Query[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return func() {}
	}
	id := q.nextSub
	q.nextSub++
	q.subs[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.subs, id)
	}
}

// Close drops every subscriber. Fetches that complete afterwards are
// discarded and later mutations leave the state alone.
func (q *Query[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.subs = make(map[int]func(State[T]))
}

// beginLocked starts a new fetch generation. The caller must hold q.mu.
func (q *Query[T]) beginLocked() (gen uint64, key string, done chan struct{}, snap State[T], subs []func(State[T])) {
	q.gen++
	q.inflight = make(chan struct{})
	q.state.Loading = true
	q.state.Status = Loading
	return q.gen, q.key, q.inflight, q.state, q.subscribersLocked()
}

// run executes the fetch for generation gen and stores its outcome unless a
// newer generation or Close superseded it.
func (q *Query[T]) run(ctx context.Context, gen uint64, key string, done chan struct{}) State[T] {
	data, err := q.fetch(ctx, key)

	q.mu.Lock()
	defer close(done)
	if q.closed || gen != q.gen {
		snap := q.state
		q.mu.Unlock()
		return snap
	}
	q.failed = false
	if err != nil {
		q.state.Loading = false
		q.state.Error = q.failMsg
		q.state.Status = Errored
		q.logLocked().Warn(q.failMsg, "key", key, "error", err)
	} else {
		q.state = State[T]{Data: data, Status: Ready}
	}
	q.inflight = nil
	snap, subs := q.state, q.subscribersLocked()
	q.mu.Unlock()

	notify(subs, snap)
	return snap
}

// wait blocks until done closes or ctx ends, then returns the latest state.
func (q *Query[T]) wait(ctx context.Context, done chan struct{}, snap State[T]) State[T] {
	if done == nil {
		return snap
	}
	select {
	case <-done:
	case <-ctx.Done():
	}
	return q.State()
}

// update applies fn to the state and notifies subscribers. It is a no-op
// after Close.
func (q *Query[T]) update(fn func(s *State[T])) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	fn(&q.state)
	snap, subs := q.state, q.subscribersLocked()
	q.mu.Unlock()
	notify(subs, snap)
}

// settle applies the local change of a successful action. If the shown
// error was set by a failed action (failed), it is cleared and preFail
// restored. Fetch errors stay until the next fetch.
func (q *Query[T]) settle(fn func(s *State[T])) {
	q.update(func(s *State[T]) {
		fn(s)
		if !q.failed {
			return
		}
		q.failed = false
		s.Error = ""
		s.Status = q.preFail
		if q.inflight != nil {
			s.Status, s.Loading = Loading, true
		}
	})
}

// Fail marks the resource Errored with msg and logs err. Data is kept. A
// later successful action clears the error again.
func (q *Query[T]) Fail(msg string, err error) {
	q.update(func(s *State[T]) {
		if !q.failed && s.Status != Errored {
			q.failed = true
			q.preFail = s.Status
			if q.preFail == Loading {
				q.preFail = Ready
			}
		}
		s.Loading = false
		s.Error = msg
		s.Status = Errored
	})
	q.mu.Lock()
	logger := q.logLocked()
	q.mu.Unlock()
	logger.Warn(msg, "error", err)
}

func (q *Query[T]) logLocked() *slog.Logger {
	if q.logger != nil {
		return q.logger
	}
	return slog.Default().With("resource", q.what)
}

func (q *Query[T]) subscribersLocked() []func(State[T]) {
	subs := make([]func(State[T]), 0, len(q.subs))
	for _, fn := range q.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify[T any](subs []func(State[T]), snap State[T]) {
	for _, fn := range subs {
		fn(snap)
	}
}
