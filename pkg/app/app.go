// Package app is the journal's callable surface: appending notes, rendering
// stored notes, listing topics and merging the redundancy archive. The CLI,
// the watch loop and the MCP server all go through Service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gosuri/uitable"

	"tableflip.dev/notes/pkg/backup"
	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/store"
	"tableflip.dev/notes/pkg/style"
	"tableflip.dev/notes/pkg/topics"
)

// ErrNoNotes is returned when notes are read before the file exists.
var ErrNoNotes = errors.New("no notes yet")

// Pager answers the continue prompt shown between pages of output:
// "" continues, "e" stops paging, "b" ends the listing.
type Pager func(label string) (string, error)

const pageLabel = "Enter to continue (e to stop paging, b to end run)"

// Service provides the journal operations over one notes file.
type Service struct {
	Config   *store.Config
	Notes    *store.Notes
	Terminal *printers.Terminal
	// Warn receives per-line warnings and notices, os.Stderr when nil.
	Warn io.Writer
	// Now stamps new entries, time.Now when nil.
	Now func() time.Time
	// Pager is asked between pages of unfiltered output; nil disables paging.
	Pager Pager
	// Since hides entries stamped before it when set.
	Since time.Time
}

// New builds a service for cfg that renders to term.
func New(cfg *store.Config, term *printers.Terminal) *Service {
	return &Service{
		Config:   cfg,
		Notes:    store.Open(cfg.NotesPath),
		Terminal: term,
	}
}

// MergeRedundancy folds the notes file into the redundancy archive. It runs
// once per invocation before anything else touches the notes.
func (s *Service) MergeRedundancy(_ context.Context) (int, error) {
	return backup.Merge(s.Config.ArchivePath, s.Config.NotesPath)
}

// AppendEntry stores a new note and renders it. Reserved words among
// requested topics print the topic listing and are not stored.
func (s *Service) AppendEntry(ctx context.Context, requested []string, body string) (*entry.Entry, error) {
	filter, listing := topics.ParseFilter(requested)
	if listing {
		if err := s.ListTopics(ctx); err != nil {
			return nil, err
		}
	}

	e := entry.New(s.now(), filter, body)
	if len(e.Topics) == 0 {
		e.Topics = []string{entry.DefaultTopic}
	}
	s.notes().Warn = s.warn()
	if _, err := s.notes().Prepend(e); err != nil {
		return nil, err
	}
	if err := s.render(ctx, []*entry.Entry{e}, nil); err != nil {
		return nil, err
	}
	return e, nil
}

// RenderStoredEntries renders stored notes. A nil or empty filter renders
// everything, paged through Pager. Reserved words print the topic listing and
// are removed from the filter; the remaining topics select entries carrying
// any of them.
func (s *Service) RenderStoredEntries(ctx context.Context, filter []string) error {
	if !s.notes().Exists() {
		return fmt.Errorf("%w: %s does not exist, add a note first", ErrNoNotes, s.Config.NotesPath)
	}

	stored, err := s.load()
	if err != nil {
		return err
	}
	wanted, listing := topics.ParseFilter(filter)
	if listing {
		if err := s.listTopics(ctx, stored); err != nil {
			return err
		}
	}
	if len(filter) > 0 && len(wanted) == 0 {
		return nil
	}

	all, err := s.match(ctx, stored, wanted)
	if err != nil {
		return err
	}
	if len(wanted) > 0 && len(all) == 0 {
		return s.suggest(ctx, wanted)
	}

	var pager Pager
	if len(wanted) == 0 {
		pager = s.Pager
	}
	return s.render(ctx, all, pager)
}

// RenderEntries renders entries as given, without paging.
func (s *Service) RenderEntries(ctx context.Context, entries []*entry.Entry) error {
	return s.render(ctx, entries, nil)
}

// Entries returns stored entries, newest first, that carry any of filter's
// topics; all entries when filter is empty.
func (s *Service) Entries(ctx context.Context, filter []string) ([]*entry.Entry, error) {
	all, err := s.load()
	if err != nil {
		return nil, err
	}
	return s.match(ctx, all, filter)
}

// load decodes the notes file, warning once per malformed line.
func (s *Service) load() ([]*entry.Entry, error) {
	s.notes().Warn = s.warn()
	return s.notes().Entries()
}

func (s *Service) match(ctx context.Context, all []*entry.Entry, filter []string) ([]*entry.Entry, error) {
	if len(filter) == 0 && s.Since.IsZero() {
		return all, nil
	}
	matched := make([]*entry.Entry, 0, len(all))
	for _, e := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.Timestamp.Before(s.Since) {
			continue
		}
		if len(filter) == 0 || e.HasTopic(filter...) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Topics returns the distinct upper-cased topics in discovery order.
func (s *Service) Topics(_ context.Context) ([]string, error) {
	lines, err := s.notes().Lines()
	if err != nil {
		return nil, err
	}
	// Lines without a header are reported when entries are decoded.
	names, _ := topics.DistinctTopics(lines)
	return names, nil
}

// ListTopics prints the topics in the notes file with their entry counts.
func (s *Service) ListTopics(ctx context.Context) error {
	stored, err := s.load()
	if err != nil {
		return err
	}
	return s.listTopics(ctx, stored)
}

func (s *Service) listTopics(ctx context.Context, stored []*entry.Entry) error {
	names, err := s.Topics(ctx)
	if err != nil {
		return err
	}
	all, err := s.match(ctx, stored, nil)
	if err != nil {
		return err
	}
	counts := make(map[string]topics.Count)
	for _, c := range topics.Tally(all) {
		counts[c.Topic] = c
	}

	t := s.Terminal
	magenta := t.Code(style.ColorToken(style.Magenta))
	reset := t.Code(style.Reset())
	out := &strings.Builder{}
	fmt.Fprintf(out, "\n  Current Topics in %s%s:%s\n", s.Config.NotesPath, magenta, reset)
	if len(names) == 0 {
		fmt.Fprintln(out, "    none")
	} else {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("    TOPIC", "ENTRIES", "LATEST")
		for _, name := range names {
			c := counts[name]
			tbl.AddRow("    "+name, c.Entries, c.Latest)
		}
		fmt.Fprintln(out, tbl)
	}
	_, err = io.WriteString(t.Out, out.String())
	return err
}

// SetStyle binds a style token to keyword in the style sidecar.
func (s *Service) SetStyle(_ context.Context, keyword, value string) error {
	styles, err := style.Load(s.Config.StylesPath)
	if err != nil {
		return err
	}
	if err := styles.Set(keyword, value); err != nil {
		return err
	}
	return styles.Save(s.Config.StylesPath)
}

// render writes entries and saves the style sidecar, which may have gained
// default styles for new topics.
func (s *Service) render(ctx context.Context, all []*entry.Entry, pager Pager) error {
	styles, err := style.Load(s.Config.StylesPath)
	if err != nil {
		return err
	}
	r := &printers.Renderer{
		Terminal:  s.Terminal,
		Styles:    styles,
		LineBreak: s.Config.LineBreak,
	}

	pageSize := s.Config.PageSize
	for i, e := range all {
		if err := ctx.Err(); err != nil {
			return err
		}
		if pager != nil && pageSize > 0 && i != 0 && i%pageSize == 0 {
			answer, err := pager(pageLabel)
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "e":
				pager = nil
			case "b":
				return styles.Save(s.Config.StylesPath)
			}
		}
		if err := r.Render(e); err != nil {
			return err
		}
	}
	return styles.Save(s.Config.StylesPath)
}

func (s *Service) suggest(ctx context.Context, wanted []string) error {
	known, err := s.Topics(ctx)
	if err != nil {
		return err
	}
	out := s.Terminal.Out
	for _, w := range wanted {
		fmt.Fprintf(out, "\n  No notes for topic %s.", entry.TopicKey(w))
		if near := topics.Suggest(w, known, 3); len(near) > 0 {
			fmt.Fprintf(out, " Did you mean %s?", strings.Join(near, ", "))
		}
		fmt.Fprintln(out)
	}
	return nil
}

func (s *Service) notes() *store.Notes {
	if s.Notes == nil {
		s.Notes = store.Open(s.Config.NotesPath)
	}
	return s.Notes
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) warn() io.Writer {
	if s.Warn == nil {
		return os.Stderr
	}
	return s.Warn
}
