package emitter

type (
	listenerMode uint8

	listenerRecord[K comparable] struct {
		id       ListenerID
		mode     listenerMode
		callback Listener[K]
	}

	// listenerSet keeps records keyed by id while remembering insertion order, which is the
	// dispatch order.
	listenerSet[K comparable] struct {
		order   []ListenerID
		records map[ListenerID]*listenerRecord[K]
	}
)

const (
	modePersistent listenerMode = iota
	modeOneShot
)

func (m listenerMode) String() string {
	if m == modeOneShot {
		return "once"
	}
	return "on"
}

func newListenerSet[K comparable]() *listenerSet[K] {
	return &listenerSet[K]{
		records: make(map[ListenerID]*listenerRecord[K]),
	}
}

func (s *listenerSet[K]) add(r *listenerRecord[K]) {
	s.order = append(s.order, r.id)
	s.records[r.id] = r
}

func (s *listenerSet[K]) get(id ListenerID) (*listenerRecord[K], bool) {
	r, ok := s.records[id]
	return r, ok
}

// remove reports whether id was present.
func (s *listenerSet[K]) remove(id ListenerID) bool {
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)

	for i, current := range s.order {
		if current == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}

// snapshot returns a copy of the ids currently present, in dispatch order.
func (s *listenerSet[K]) snapshot() []ListenerID {
	ids := make([]ListenerID, len(s.order))
	copy(ids, s.order)
	return ids
}

func (s *listenerSet[K]) len() int {
	return len(s.records)
}

func (s *listenerSet[K]) clear() {
	clearAll(s.records)
	s.order = nil
}
