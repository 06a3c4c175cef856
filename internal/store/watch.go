package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// change is one coalesced external-change notification.
type change struct {
	key     string
	removed bool
}

// Watch observes the durable medium for writes from other processes and
// applies them last-write-wins until ctx is cancelled. Only a disk-backed
// store can be watched. The store's own writes also surface here; they
// re-read the just-written value, which is harmless under last-write-wins.
func (s *Store) Watch(ctx context.Context) error {
	disk, ok := s.backend.(*DiskBackend)
	if !ok {
		return errors.New("store: backend is not watchable")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(disk.BasePath()); err != nil {
		watcher.Close()
		return fmt.Errorf("store: watch %s: %w", disk.BasePath(), err)
	}

	go func() {
		defer watcher.Close()

		throttle := newChangeThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		apply := func(c change) {
			s.applyExternal(c.key, c.removed)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(os.Stderr, "store: watcher: %v\n", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key, ok := disk.keyForPath(evt.Name)
				if !ok {
					continue
				}
				removed := evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0
				throttle.Enqueue(change{key: key, removed: removed}, apply)
			}
		}
	}()

	return nil
}

// changeThrottle coalesces rapid notifications for the same key so a burst
// of filesystem activity triggers a single re-read instead of one per write.
type changeThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]change
	delay   time.Duration
}

func newChangeThrottle(delay time.Duration) *changeThrottle {
	return &changeThrottle{
		delay:   delay,
		pending: make(map[string]change),
	}
}

func (t *changeThrottle) Enqueue(c change, apply func(change)) {
	t.mu.Lock()
	t.pending[c.key] = c // last event for a key wins
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(apply)
		})
	}
	t.mu.Unlock()
}

func (t *changeThrottle) flush(apply func(change)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]change)
	t.timer = nil
	t.mu.Unlock()

	for _, c := range pending {
		apply(c)
	}
}

func (t *changeThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
