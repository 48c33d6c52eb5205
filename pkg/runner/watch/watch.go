// Package watch follows the notes file and renders entries as they arrive.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/store"
)

// Journal is the part of app.Service the watcher needs.
type Journal interface {
	Entries(ctx context.Context, filter []string) ([]*entry.Entry, error)
	RenderEntries(ctx context.Context, entries []*entry.Entry) error
}

// Watch renders entries newer than the newest one seen at start.
type Watch struct {
	Topics []string
	Notes  *store.Notes
	App    Journal
	Out    io.Writer

	seen Mark
}

// Mark is the newest rendered second and how many entries carry it.
// Timestamps have second precision, so the count tells a note added within
// that second apart from the ones already shown.
type Mark struct {
	At    time.Time
	Count int
}

// MarkOf returns the mark for a newest-first slice.
func MarkOf(all []*entry.Entry) Mark {
	if len(all) == 0 {
		return Mark{}
	}
	m := Mark{At: all[0].Timestamp}
	for _, e := range all {
		if !e.Timestamp.Equal(m.At) {
			break
		}
		m.Count++
	}
	return m
}

func (w *Watch) Do(ctx context.Context) error {
	if w.App == nil || w.Notes == nil {
		return errors.New("watch requires a notes file")
	}
	out := w.Out
	if out == nil {
		out = os.Stdout
	}

	current, err := w.App.Entries(ctx, w.Topics)
	if err != nil {
		return err
	}
	w.seen = MarkOf(current)

	events, err := w.Notes.Watch(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Watching %s, ctrl-c to stop.\n", w.Notes.Path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev.Type {
			case store.EventRemoved:
				fmt.Fprintf(out, "notes: %s was removed\n", w.Notes.Path)
			case store.EventChanged:
				if err := w.refresh(ctx); err != nil {
					return err
				}
			}
		}
	}
}

// refresh renders entries stamped after the last one rendered, newest first.
func (w *Watch) refresh(ctx context.Context) error {
	all, err := w.App.Entries(ctx, w.Topics)
	if err != nil {
		return err
	}
	fresh := Newer(all, w.seen)
	if len(fresh) == 0 {
		return nil
	}
	w.seen = MarkOf(all)
	return w.App.RenderEntries(ctx, fresh)
}

// Newer returns the leading entries of a newest-first slice that were added
// after mark was taken.
func Newer(all []*entry.Entry, mark Mark) []*entry.Entry {
	i := 0
	for i < len(all) && all[i].Timestamp.After(mark.At) {
		i++
	}
	same := 0
	for i+same < len(all) && all[i+same].Timestamp.Equal(mark.At) {
		same++
	}
	if extra := same - mark.Count; extra > 0 {
		i += extra
	}
	return all[:i]
}
