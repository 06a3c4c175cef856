package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Value is the typed handle for one logical key. Reads return the
// caller-supplied default until the key has been written; writes persist
// synchronously and notify same-process subscribers. A corrupt or
// incompatible stored value falls back to the default with a stderr warning
// and never surfaces as an error to the reader.
type Value[T any] struct {
	store *Store
	key   string
	def   func() T

	mu        sync.Mutex
	cached    T
	loaded    bool
	listeners []func(T)
}

// NewValue binds key in s to a typed handle. def produces the initial value
// for an absent or unreadable key; it must not return shared mutable state
// that callers alias. Each key may be bound once per store.
func NewValue[T any](s *Store, key string, def func() T) *Value[T] {
	v := &Value[T]{store: s, key: key, def: def}
	s.bind(key, v)
	return v
}

// Get returns the current value, loading it from the backend on first use.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loaded {
		v.cached = v.load()
		v.loaded = true
	}
	return v.cached
}

// Set persists val and notifies subscribers.
func (v *Value[T]) Set(val T) error {
	v.mu.Lock()
	data, err := json.Marshal(val)
	if err != nil {
		v.mu.Unlock()
		return fmt.Errorf("store: marshal %s: %w", v.key, err)
	}
	if err := v.store.backend.Write(v.key, data); err != nil {
		v.mu.Unlock()
		return fmt.Errorf("store: write %s: %w", v.key, err)
	}
	v.cached = val
	v.loaded = true
	listeners := append([]func(T){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		if fn != nil {
			fn(val)
		}
	}
	v.store.announce(v.key)
	return nil
}

// Update applies fn to the current value and persists the result. Expressing
// every mutation as a transform of the previous value keeps interleaved
// same-process mutations from losing updates.
func (v *Value[T]) Update(fn func(T) T) (T, error) {
	next := fn(v.Get())
	return next, v.Set(next)
}

// Subscribe registers fn for every subsequent change to this key, including
// ones observed from other processes. The returned cancel detaches it.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	idx := len(v.listeners) - 1
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		v.listeners[idx] = nil
		v.mu.Unlock()
	}
}

// invalidate implements binding: the backend changed under us, so replace
// the cached value with whatever is durable now (or the default if the key
// was removed) and fan out to subscribers.
func (v *Value[T]) invalidate(removed bool) {
	v.mu.Lock()
	if removed {
		v.cached = v.def()
	} else {
		v.cached = v.load()
	}
	v.loaded = true
	val := v.cached
	listeners := append([]func(T){}, v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		if fn != nil {
			fn(val)
		}
	}
}

// load must not be called without holding v.mu.
func (v *Value[T]) load() T {
	data, ok, err := v.store.backend.Read(v.key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: read %s: %v (using default)\n", v.key, err)
		return v.def()
	}
	if !ok {
		return v.def()
	}
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		fmt.Fprintf(os.Stderr, "store: decode %s: %v (using default)\n", v.key, err)
		return v.def()
	}
	return val
}
