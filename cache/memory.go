package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is held both in the index and, via elem, in the FIFO queue so that
// Delete can unlink it without scanning.
type entry struct {
	key    string
	value  string
	expiry time.Time
	elem   *list.Element
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu sync.Mutex

	max    int
	maxAge time.Duration

	items map[string]*entry
	queue *list.List // Front = oldest insertion

	now func() time.Time
}

// New returns a MemoryStore bounded by opts, or an InvalidConfiguration
// error when the bounds are unusable.
func New(opts Options) (*MemoryStore, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &MemoryStore{
		max:    opts.Max,
		maxAge: opts.MaxAge,
		items:  make(map[string]*entry),
		queue:  list.New(),
		now:    time.Now,
	}, nil
}

// Get returns the value for key if it is resident and not expired
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.items[key]
	if !ok {
		return "", false
	}

	if s.now().After(ent.expiry) {
		s.removeLocked(ent)
		return "", false
	}

	return ent.value, true
}

// Set inserts or overwrites key. A full store evicts its oldest insertion
// first, even when key is already resident. An overwrite that survives the
// eviction keeps the key's original place in the eviction order; a key that
// was itself the oldest is reinserted at the back.
func (s *MemoryStore) Set(key string, value string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.maxAge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry := s.now().Add(ttl)

	if len(s.items) >= s.max {
		if oldest := s.queue.Front(); oldest != nil {
			s.removeLocked(oldest.Value.(*entry))
		}
	}

	if ent, ok := s.items[key]; ok {
		ent.value = value
		ent.expiry = expiry
		return
	}

	ent := &entry{key: key, value: value, expiry: expiry}
	ent.elem = s.queue.PushBack(ent)
	s.items[key] = ent
}

// Delete removes key if present
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.items[key]; ok {
		s.removeLocked(ent)
	}
}

// Clear removes every entry
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*entry)
	s.queue.Init()
}

// Len includes entries that have expired but not yet been read or swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Keys returns the resident keys, oldest insertion first
func (s *MemoryStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, s.queue.Len())
	for el := s.queue.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*entry).key)
	}
	return out
}

// Sweep removes every expired entry and returns how many were removed.
// It is O(n) and is only run when a sweep schedule is configured.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for el := s.queue.Front(); el != nil; {
		next := el.Next()
		ent := el.Value.(*entry)
		if now.After(ent.expiry) {
			s.removeLocked(ent)
			removed++
		}
		el = next
	}
	return removed
}

func (s *MemoryStore) removeLocked(ent *entry) {
	delete(s.items, ent.key)
	s.queue.Remove(ent.elem)
}
