package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/style"
)

var stamp = time.Date(2024, 3, 9, 8, 7, 6, 0, time.Local)

func plainRenderer() (*Renderer, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &Renderer{
		Terminal:  &Terminal{Out: buf},
		Styles:    style.New(),
		LineBreak: ";",
	}, buf
}

func TestRenderPlain(t *testing.T) {
	r, buf := plainRenderer()
	e := &entry.Entry{Timestamp: stamp, Topics: []string{"work", "Urgent"}, Body: "finish the report; then rest"}
	if err := r.Render(e); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "\n 2024-03-09 08:07:06\n" +
		"  Categories:\n" +
		"   WORK,   URGENT\n" +
		"  NOTES:\n" +
		"    >>  finish the report\n" +
		"    >>  then rest\n" +
		"\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderTopicWrapping(t *testing.T) {
	r, _ := plainRenderer()
	e := &entry.Entry{
		Timestamp: stamp,
		Topics:    []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"},
		Body:      "x",
	}
	out := r.RenderString(e)
	_, rest, _ := strings.Cut(out, "  Categories:\n")
	header, _, _ := strings.Cut(rest, "  NOTES:")
	want := "   A,   B,   C,   D\n" +
		"   E,   F,   G,   H\n" +
		"   I\n"
	if header != want {
		t.Fatalf("unexpected topic block:\n%q\nwant:\n%q", header, want)
	}
}

func TestRenderEscapedDelimiter(t *testing.T) {
	r, _ := plainRenderer()
	e := &entry.Entry{Timestamp: stamp, Topics: []string{"misc"}, Body: `keep \; this together`}
	out := r.RenderString(e)
	if n := strings.Count(out, ">>"); n != 1 {
		t.Fatalf("expected one thought line, got %d in %q", n, out)
	}
	if !strings.Contains(out, "keep ; this together") {
		t.Fatalf("escaped delimiter not restored: %q", out)
	}
}

func TestRenderHighlights(t *testing.T) {
	buf := &bytes.Buffer{}
	styles := style.New()
	if err := styles.Set("work", "ggg"); err != nil {
		t.Fatal(err)
	}
	r := &Renderer{Terminal: &Terminal{Out: buf, Color: true}, Styles: styles, LineBreak: ";"}
	e := &entry.Entry{
		Timestamp: stamp,
		Topics:    []string{"home"},
		Body:      "buy milk+eggs work>now Work homework rrrlate<<<",
	}
	out := r.RenderString(e)

	const (
		green    = "\x1b[32m"
		red      = "\x1b[31m"
		emphasis = "\x1b[43;35m"
		reset    = "\x1b[49;97m"
	)
	for _, want := range []string{
		emphasis + "milk+eggs" + reset,
		" work>now ",
		green + "Work" + reset,
		" homework ",
		red + "late" + reset,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
	if !strings.HasSuffix(out, "\x1b[0m\n") {
		t.Errorf("expected full reset at the end of %q", out)
	}
}

func TestRenderAssignsTopicStyles(t *testing.T) {
	r, _ := plainRenderer()
	if err := r.Styles.Set("WORK", "bbb"); err != nil {
		t.Fatal(err)
	}
	e := &entry.Entry{Timestamp: stamp, Topics: []string{"work", "garden"}, Body: "weeds"}
	before := *e
	r.RenderString(e)

	if tok, _ := r.Styles.Lookup("work"); tok != style.ColorToken(style.Blue) {
		t.Fatalf("existing topic style changed: %+v", tok)
	}
	rule, ok := r.Styles.Rule("GARDEN")
	if !ok || rule.Value != style.DefaultValue {
		t.Fatalf("expected default style for new topic, got %+v %v", rule, ok)
	}
	if e.Body != before.Body || len(e.Topics) != 2 || e.Topics[1] != "garden" {
		t.Fatalf("entry modified by render: %+v", e)
	}
}

func TestRenderWraps(t *testing.T) {
	r, _ := plainRenderer()
	r.Terminal.Width = 40
	body := strings.Repeat("lorem ipsum dolor ", 10)
	out := r.RenderString(&entry.Entry{Timestamp: stamp, Topics: []string{"x"}, Body: body})

	lines := strings.Split(out, "\n")
	wrapped := 0
	for _, l := range lines {
		if len(l) > 40 {
			t.Fatalf("line exceeds width: %q", l)
		}
		if strings.HasPrefix(l, continuation) && strings.TrimSpace(l) != "" {
			wrapped++
		}
	}
	if wrapped == 0 {
		t.Fatalf("expected continuation lines in %q", out)
	}
}

func TestSequenceWithoutColor(t *testing.T) {
	term := &Terminal{}
	if got := term.Code(style.ColorToken(style.Red)); got != "" {
		t.Fatalf("expected no escape codes, got %q", got)
	}
	term.Color = true
	if got := term.Code(style.Emphasis()); got != "\x1b[43;35m" {
		t.Fatalf("unexpected emphasis sequence %q", got)
	}
	if got := term.Code(style.Token{}); got != "" {
		t.Fatalf("plain token should emit nothing, got %q", got)
	}
}
