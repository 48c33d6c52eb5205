package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventChanged indicates the notes file was written or replaced.
	EventChanged EventType = iota

	// EventRemoved indicates the notes file disappeared.
	EventRemoved
)

// Event is emitted by Notes.Watch when the notes file changes.
type Event struct {
	Type EventType
}

// Watch streams change events for the notes file until ctx is cancelled.
// The parent directory is watched because rewrites replace the file by
// rename. Callers should drain the channel; it is closed once ctx is done or
// the watcher fails.
func (n *Notes) Watch(ctx context.Context) (<-chan Event, error) {
	if n.Path == "" {
		return nil, errors.New("store: notes path unknown")
	}
	target := filepath.Clean(n.Path)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure %s: %w", dir, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(n.warn(), "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(dir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer re-reads the whole file, so a dropped
				// event is covered by the next one.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Fprintf(n.warn(), "store: watch: %v\n", err)
				throttle.Enqueue(Event{Type: EventChanged}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != target {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Write|fsnotify.Create) != 0:
					throttle.Enqueue(Event{Type: EventChanged}, send)
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					throttle.Enqueue(Event{Type: EventRemoved}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of notifications so a rewrite (temp file,
// rename) is reported once.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]struct{})
	t.timer = nil
	t.mu.Unlock()

	// A file that was replaced shows up as removed then created; report
	// the change only.
	if _, ok := pending[EventChanged]; ok {
		send(Event{Type: EventChanged})
		return
	}
	for eventType := range pending {
		send(Event{Type: eventType})
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
