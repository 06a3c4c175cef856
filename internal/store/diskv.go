package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskBackend persists each logical key as one JSON file directly under a
// base directory. The flat one-file-per-key layout is what lets the watcher
// attribute a filesystem event to a specific key.
type DiskBackend struct {
	d    *diskv.Diskv
	base string
}

// NewDiskBackend opens (or creates) the data directory at base.
func NewDiskBackend(base string) (*DiskBackend, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &DiskBackend{
		d: diskv.New(diskv.Options{
			BasePath:     base,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		base: base,
	}, nil
}

// BasePath returns the watched data directory.
func (b *DiskBackend) BasePath() string {
	return b.base
}

func (b *DiskBackend) Read(key string) ([]byte, bool, error) {
	data, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (b *DiskBackend) Write(key string, data []byte) error {
	return b.d.Write(key, data)
}

func (b *DiskBackend) Erase(key string) error {
	err := b.d.Erase(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// keyForPath maps a filesystem path inside the data directory back to its
// logical key, or ok=false for paths that are not key files (temp files,
// subdirectories).
func (b *DiskBackend) keyForPath(path string) (string, bool) {
	rel, err := filepath.Rel(b.base, path)
	if err != nil || rel == "." {
		return "", false
	}
	if filepath.Dir(rel) != "." {
		return "", false
	}
	return rel, true
}
