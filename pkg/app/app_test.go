package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/notes/pkg/backup"
	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/store"
	"tableflip.dev/notes/pkg/style"
)

type fixture struct {
	svc  *Service
	out  *bytes.Buffer
	warn *bytes.Buffer
	cfg  *store.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfg := &store.Config{
		NotesPath:   filepath.Join(dir, "mynotes.txt"),
		StylesPath:  filepath.Join(dir, "styles.ini"),
		ArchivePath: filepath.Join(dir, "redundancy.txt"),
		LineBreak:   ";",
		PageSize:    5,
	}
	out := &bytes.Buffer{}
	warn := &bytes.Buffer{}
	svc := New(cfg, &printers.Terminal{Out: out})
	svc.Warn = warn
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return &fixture{svc: svc, out: out, warn: warn, cfg: cfg}
}

func (f *fixture) seed(t *testing.T, lines ...string) {
	t.Helper()
	if err := os.WriteFile(f.cfg.NotesPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAppendEntryEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.AppendEntry(ctx, []string{"WORK", "URGENT"}, "finish the report"); err != nil {
		t.Fatalf("append: %v", err)
	}
	b, err := os.ReadFile(f.cfg.NotesPath)
	if err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(string(b), "\n", 2)[0]
	if want := "2024-05-01 09:00:01--WORK, URGENT::finish the report"; first != want {
		t.Fatalf("expected %q, got %q", want, first)
	}
	if _, err := os.Stat(backup.Name(f.cfg.NotesPath)); !os.IsNotExist(err) {
		t.Fatalf("no backup expected for a new file, stat err=%v", err)
	}
	if !strings.Contains(f.out.String(), "finish the report") {
		t.Fatalf("new entry not rendered: %q", f.out.String())
	}

	if _, err := f.svc.AppendEntry(ctx, nil, "second"); err != nil {
		t.Fatalf("append: %v", err)
	}
	copied, err := os.ReadFile(backup.Name(f.cfg.NotesPath))
	if err != nil {
		t.Fatalf("expected backup on second append: %v", err)
	}
	if string(copied) != string(b) {
		t.Fatalf("backup should match the file before the second append")
	}
	b, _ = os.ReadFile(f.cfg.NotesPath)
	if !strings.HasPrefix(string(b), "2024-05-01 09:00:02--misc::second\n") {
		t.Fatalf("expected newest entry first, got %q", b)
	}
}

func TestAppendEntryReservedTopics(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "2024-04-01 10:00:00--home::water plants")

	e, err := f.svc.AppendEntry(context.Background(), []string{"ALL", "WORK"}, "plan")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if len(e.Topics) != 1 || e.Topics[0] != "WORK" {
		t.Fatalf("reserved word stored as topic: %q", e.Topics)
	}
	if !strings.Contains(f.out.String(), "Current Topics in") {
		t.Fatalf("expected topic listing, got %q", f.out.String())
	}
}

func TestRenderStoredEntriesReservedWordPrecedence(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		"2024-04-03 10:00:00--work, urgent::ship it",
		"2024-04-02 10:00:00--home::water plants",
		"2024-04-01 10:00:00--WORK::plan the week",
	)

	if err := f.svc.RenderStoredEntries(context.Background(), []string{"ALL", "WORK"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := f.out.String()
	listing, rendered, ok := strings.Cut(out, "Categories:")
	if !ok {
		t.Fatalf("no entries rendered: %q", out)
	}
	if !strings.Contains(listing, "Current Topics in") {
		t.Fatalf("listing must come first: %q", out)
	}
	for _, topic := range []string{"WORK", "URGENT", "HOME"} {
		if !strings.Contains(listing, topic) {
			t.Errorf("listing misses %s: %q", topic, listing)
		}
	}
	if !strings.Contains(rendered, "ship it") || !strings.Contains(rendered, "plan the week") {
		t.Errorf("WORK entries missing: %q", rendered)
	}
	if strings.Contains(rendered, "water plants") {
		t.Errorf("HOME entry should be filtered out: %q", rendered)
	}
}

func TestRenderStoredEntriesListingOnly(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "2024-04-01 10:00:00--home::water plants")

	if err := f.svc.RenderStoredEntries(context.Background(), []string{"topics"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(f.out.String(), "water plants") {
		t.Fatalf("listing alone must not render entries: %q", f.out.String())
	}
	if !strings.Contains(f.out.String(), "HOME") {
		t.Fatalf("expected HOME in listing: %q", f.out.String())
	}
}

func TestRenderStoredEntriesMissingFile(t *testing.T) {
	f := newFixture(t)
	err := f.svc.RenderStoredEntries(context.Background(), nil)
	if !errors.Is(err, ErrNoNotes) {
		t.Fatalf("expected ErrNoNotes, got %v", err)
	}
	if !strings.Contains(err.Error(), f.cfg.NotesPath) {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestRenderStoredEntriesSkipsMalformed(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		"2024-04-02 10:00:00--home::first",
		"2024-04-01 10:00--truncated::line",
		"2024-04-01 09:00:00--home::last",
	)
	if err := f.svc.RenderStoredEntries(context.Background(), nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(f.out.String(), "first") || !strings.Contains(f.out.String(), "last") {
		t.Fatalf("valid entries missing: %q", f.out.String())
	}
	if !strings.Contains(f.warn.String(), "line 2:") {
		t.Fatalf("expected warning for line 2, got %q", f.warn.String())
	}
}

func seedMany(t *testing.T, f *fixture, n int) {
	t.Helper()
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("2024-04-01 10:00:%02d--misc::note-%d", n-i, i)
	}
	f.seed(t, lines...)
}

func TestRenderStoredEntriesPaging(t *testing.T) {
	tests := map[string]struct {
		answer   string
		rendered int
	}{
		"continue":   {answer: "", rendered: 7},
		"stop pages": {answer: "e", rendered: 7},
		"break":      {answer: "b", rendered: 3},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.cfg.PageSize = 3
			seedMany(t, f, 7)

			asked := 0
			f.svc.Pager = func(label string) (string, error) {
				asked++
				return tc.answer, nil
			}
			if err := f.svc.RenderStoredEntries(context.Background(), nil); err != nil {
				t.Fatalf("render: %v", err)
			}
			if got := strings.Count(f.out.String(), "Categories:"); got != tc.rendered {
				t.Fatalf("expected %d entries, got %d", tc.rendered, got)
			}
			wantAsked := 2
			if tc.answer != "" {
				wantAsked = 1
			}
			if asked != wantAsked {
				t.Fatalf("expected %d prompts, got %d", wantAsked, asked)
			}
		})
	}
}

func TestRenderStoredEntriesNoMatchSuggests(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "2024-04-01 10:00:00--work::x")
	if err := f.svc.RenderStoredEntries(context.Background(), []string{"wrk"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(f.out.String(), "Did you mean WORK?") {
		t.Fatalf("expected suggestion, got %q", f.out.String())
	}
}

func TestRenderPersistsTopicStyles(t *testing.T) {
	f := newFixture(t)
	if err := os.WriteFile(f.cfg.StylesPath, []byte("; my styles\nWORK=ggg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f.seed(t, "2024-04-01 10:00:00--work, garden::weeds")

	if err := f.svc.RenderStoredEntries(context.Background(), nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	styles, err := style.Load(f.cfg.StylesPath)
	if err != nil {
		t.Fatal(err)
	}
	if tok, ok := styles.Lookup("garden"); !ok || tok != style.DefaultToken {
		t.Fatalf("expected default token for GARDEN, got %+v %v", tok, ok)
	}
	if tok, _ := styles.Lookup("work"); tok != style.ColorToken(style.Green) {
		t.Fatalf("existing style changed: %+v", tok)
	}
	if got := styles.Passthrough(); len(got) != 1 || got[0] != "; my styles" {
		t.Fatalf("comment lost: %q", got)
	}
}

func TestMergeRedundancy(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		"2024-04-02 10:00:00--a::x",
		"2024-04-01 10:00:00--b::y",
	)
	ctx := context.Background()
	added, err := f.svc.MergeRedundancy(ctx)
	if err != nil || added != 2 {
		t.Fatalf("expected 2 lines merged, got %d err=%v", added, err)
	}
	added, err = f.svc.MergeRedundancy(ctx)
	if err != nil || added != 0 {
		t.Fatalf("expected idempotent merge, got %d err=%v", added, err)
	}
}

func TestSetStyle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if err := f.svc.SetStyle(ctx, "deadline", "rrr"); err != nil {
		t.Fatalf("set style: %v", err)
	}
	if err := f.svc.SetStyle(ctx, "deadline", "nonsense"); err == nil {
		t.Fatal("expected error for unknown token")
	}
	styles, err := style.Load(f.cfg.StylesPath)
	if err != nil {
		t.Fatal(err)
	}
	if tok, _ := styles.Lookup("DEADLINE"); tok != style.ColorToken(style.Red) {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestEntriesSince(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		"2024-04-03 10:00:00--work::new",
		"2024-04-02 10:00:00--home::middle",
		"2024-04-01 10:00:00--work::old",
	)
	f.svc.Since = time.Date(2024, 4, 2, 0, 0, 0, 0, time.Local)

	got, err := f.svc.Entries(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Body != "middle" {
		t.Fatalf("unexpected entries %+v", got)
	}
	got, err = f.svc.Entries(context.Background(), []string{"work"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Body != "new" {
		t.Fatalf("unexpected filtered entries %+v", got)
	}
}

func TestAppendEntryRejectsUnstorableTopics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, topic := range []string{"a=b", ";x"} {
		if _, err := f.svc.AppendEntry(ctx, []string{topic}, "body"); !errors.Is(err, entry.ErrInvalidEntry) {
			t.Fatalf("%q: expected ErrInvalidEntry, got %v", topic, err)
		}
	}
	if _, err := os.Stat(f.cfg.NotesPath); !os.IsNotExist(err) {
		t.Fatalf("notes file written for rejected topics, stat err=%v", err)
	}
	if _, err := os.Stat(f.cfg.StylesPath); !os.IsNotExist(err) {
		t.Fatalf("styles written for rejected topics, stat err=%v", err)
	}
}

func TestRenderStoredEntriesWarnsOncePerLine(t *testing.T) {
	f := newFixture(t)
	f.seed(t,
		"2024-04-02 10:00:00--work::first",
		"2024-04-01 10:00--truncated::line",
		"2024-04-01 09:00:00--home::last",
	)
	if err := f.svc.RenderStoredEntries(context.Background(), []string{"ALL", "WORK"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := strings.Count(f.warn.String(), "line 2:"); n != 1 {
		t.Fatalf("expected one warning for line 2, got %d in %q", n, f.warn.String())
	}
	if !strings.Contains(f.out.String(), "first") || strings.Contains(f.out.String(), "last") {
		t.Fatalf("expected only WORK entries rendered: %q", f.out.String())
	}
}
