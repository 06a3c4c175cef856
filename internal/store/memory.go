package store

import "sync"

// MemoryBackend is an in-memory Backend for tests. It survives within a
// process only; NewMemory pairs it with a Store the way the real program
// pairs a DiskBackend.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// NewMemory creates a store over a fresh in-memory backend.
func NewMemory() *Store {
	return New(NewMemoryBackend())
}

func (b *MemoryBackend) Read(key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	cp := append([]byte(nil), data...)
	return cp, true, nil
}

func (b *MemoryBackend) Write(key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Erase(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

// SeedRaw writes raw bytes directly, bypassing serialization. Tests use it
// to simulate corrupt or externally-written durable state.
func (b *MemoryBackend) SeedRaw(key string, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), data...)
}
