package store

import (
	"fmt"
	"sync"
)

// Backend is the durable key/value medium behind a Store. Implementations
// must tolerate concurrent use from the store and its watcher.
type Backend interface {
	// Read returns the serialized value for key, or ok=false if the key has
	// never been written (or was erased).
	Read(key string) (data []byte, ok bool, err error)
	Write(key string, data []byte) error
	Erase(key string) error
}

// Store is a key-keyed durable value container with change notification.
// Every write persists synchronously and notifies same-process subscribers;
// writes observed from other processes sharing the same medium replace the
// in-memory value wholesale (last write wins, no merge).
type Store struct {
	backend Backend

	mu       sync.Mutex
	bindings map[string]binding
	changes  chan string
}

// binding is the untyped hook a Value registers so external changes can be
// routed back to it.
type binding interface {
	invalidate(removed bool)
}

// New wraps backend in a Store.
func New(backend Backend) *Store {
	return &Store{
		backend:  backend,
		bindings: make(map[string]binding),
		changes:  make(chan string, 64),
	}
}

// Changes delivers the key of every change applied to this store, including
// ones observed from other processes. The TUI drains it to redraw. Sends are
// non-blocking; a slow consumer misses intermediate states, never the final
// one, because the current value is re-read on receipt.
func (s *Store) Changes() <-chan string {
	return s.changes
}

func (s *Store) bind(key string, b binding) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.bindings[key]; dup {
		panic(fmt.Sprintf("store: duplicate binding for key %q", key))
	}
	s.bindings[key] = b
}

// applyExternal handles a change notification originating outside this
// process: the bound value re-reads the backend (or reverts to its default
// if the key was removed) and the change is surfaced on Changes.
func (s *Store) applyExternal(key string, removed bool) {
	s.mu.Lock()
	b := s.bindings[key]
	s.mu.Unlock()

	if b != nil {
		b.invalidate(removed)
	}
	s.announce(key)
}

func (s *Store) announce(key string) {
	select {
	case s.changes <- key:
	default:
	}
}
