package memory

// store keeps entities of one type in insertion order. Values handed in or
// out pass through clone so callers never share slices or pointers with the
// stored copy. store is not synchronized; Backend.mu guards it.
type store[E any] struct {
	rows  map[string]E
	order []string
	clone func(E) E
}

func newStore[E any](clone func(E) E) *store[E] {
	return &store[E]{rows: make(map[string]E), clone: clone}
}

func (s *store[E]) len() int { return len(s.order) }

func (s *store[E]) get(id string) (E, bool) {
	e, ok := s.rows[id]
	if !ok {
		return e, false
	}
	return s.clone(e), true
}

// filter returns clones of the entities accepted by keep, in insertion order.
// It never returns nil.
func (s *store[E]) filter(keep func(E) bool) []E {
	out := make([]E, 0, len(s.order))
	for _, id := range s.order {
		e := s.rows[id]
		if keep == nil || keep(e) {
			out = append(out, s.clone(e))
		}
	}
	return out
}

func (s *store[E]) all() []E { return s.filter(nil) }

func (s *store[E]) insert(id string, e E) {
	if _, exists := s.rows[id]; !exists {
		s.order = append(s.order, id)
	}
	s.rows[id] = s.clone(e)
}

func (s *store[E]) replace(id string, e E) bool {
	if _, ok := s.rows[id]; !ok {
		return false
	}
	s.rows[id] = s.clone(e)
	return true
}

func (s *store[E]) remove(id string) bool {
	if _, ok := s.rows[id]; !ok {
		return false
	}
	delete(s.rows, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}
