// Package printers renders notes for a terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/style"
)

// TopicsPerLine is how many header topics share a line.
const TopicsPerLine = 4

const (
	thoughtPrefix = "    >>  "
	minWrapWidth  = 20
)

var continuation = strings.Repeat(" ", len(thoughtPrefix))

// Renderer formats entries. Topics it has not seen are added to Styles with
// the default token; the caller persists Styles afterwards.
type Renderer struct {
	Terminal  *Terminal
	Styles    *style.Registry
	LineBreak string
}

// Render writes e to the terminal.
func (r *Renderer) Render(e *entry.Entry) error {
	_, err := io.WriteString(r.Terminal.Out, r.RenderString(e))
	return err
}

// RenderString returns what Render would write. e is not modified.
func (r *Renderer) RenderString(e *entry.Entry) string {
	if r.Styles == nil {
		r.Styles = style.New()
	}
	t := r.Terminal
	cyan := t.Code(style.ColorToken(style.Cyan))
	magenta := t.Code(style.ColorToken(style.Magenta))
	reset := t.Code(style.Reset())

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n %s%s\n", cyan, entry.FormatTime(e.Timestamp), reset)
	fmt.Fprintf(&b, "%s  Categories:%s\n", magenta, reset)
	r.writeTopics(&b, e.Keys())
	fmt.Fprintf(&b, "%s  NOTES:%s\n", magenta, reset)

	for _, thought := range entry.SplitThoughts(e.Body, r.LineBreak) {
		b.WriteString(cyan)
		b.WriteString(thoughtPrefix[:len(thoughtPrefix)-2])
		b.WriteString(t.Sequence(textAttrs...))
		b.WriteString("  ")
		b.WriteString(r.wrap(r.formatThought(thought)))
		b.WriteString("\n")
	}
	b.WriteString(t.Sequence(fullReset...))
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) writeTopics(b *strings.Builder, topics []string) {
	reset := r.Terminal.Code(style.Reset())
	for i, topic := range topics {
		tok := r.Styles.ResolveOrAssign(topic)
		sep := ","
		if n := i + 1; n%TopicsPerLine == 0 || n == len(topics) {
			sep = "\n"
		}
		b.WriteString("   ")
		b.WriteString(r.Terminal.Code(tok))
		b.WriteString(topic)
		if !tok.IsZero() {
			b.WriteString(reset)
		}
		b.WriteString(sep)
	}
}

// formatThought highlights one display line word by word. Flagged words
// (containing '+' but not '>') take the emphasis style, otherwise a word that
// equals a registered keyword takes that keyword's style.
func (r *Renderer) formatThought(line string) string {
	t := r.Terminal
	words := strings.Fields(line)
	for i, w := range words {
		switch {
		case strings.Contains(w, "+") && !strings.Contains(w, ">"):
			words[i] = t.Code(style.Emphasis()) + r.markup(w) + t.Code(style.Reset())
		default:
			if tok, ok := r.Styles.Lookup(w); ok && !tok.IsZero() {
				words[i] = t.Code(tok) + w + t.Code(style.Reset())
				continue
			}
			words[i] = r.markup(w)
		}
	}
	return strings.Join(words, " ")
}

func (r *Renderer) markup(word string) string {
	var b strings.Builder
	for _, p := range style.Scan(word) {
		if !p.Token.IsZero() {
			b.WriteString(r.Terminal.Code(p.Token))
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

func (r *Renderer) wrap(s string) string {
	if r.Terminal.Width <= 0 {
		return s
	}
	limit := r.Terminal.Width - len(thoughtPrefix)
	if limit < minWrapWidth {
		limit = minWrapWidth
	}
	wrapped := wordwrap.String(s, limit)
	return strings.ReplaceAll(wrapped, "\n", "\n"+continuation)
}
