package memory

import (
	"errors"
	"strconv"
	"sync"
)

var ErrDuplicateID = errors.New("record id already exists")

// Record is anything the store can hold. Clone must return a deep copy.
type Record[T any] interface {
	GetID() string
	Clone() T
}

// Store is an insertion-ordered collection keyed by id. It is safe for
// concurrent use and never hands out references to its own records.
type Store[T Record[T]] struct {
	mu      sync.RWMutex
	records map[string]T
	order   []string
	seq     int64
}

func NewStore[T Record[T]](seed ...T) *Store[T] {
	s := &Store[T]{records: make(map[string]T, len(seed))}
	for _, rec := range seed {
		// Seed data carries unique ids.
		_ = s.Insert(rec)
	}
	return s
}

// List returns a snapshot in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out
}

func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	return rec.Clone(), true
}

// Insert appends rec at the end of the ordering.
func (s *Store[T]) Insert(rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.GetID()
	if _, exists := s.records[id]; exists {
		return ErrDuplicateID
	}
	s.records[id] = rec.Clone()
	s.order = append(s.order, id)
	if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > s.seq {
		s.seq = n
	}
	return nil
}

// Replace overwrites the record stored under id, keeping its position.
func (s *Store[T]) Replace(id string, rec T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return false
	}
	s.records[id] = rec.Clone()
	return true
}

// Delete removes the record under id; later records move up one position.
func (s *Store[T]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[id]; !exists {
		return false
	}
	delete(s.records, id)
	for i, key := range s.order {
		if key == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// NextID reserves the next decimal id. Ids handed out are never reused,
// even after the record holding them is deleted.
func (s *Store[T]) NextID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		s.seq++
		id := strconv.FormatInt(s.seq, 10)
		if _, taken := s.records[id]; !taken {
			return id
		}
	}
}
