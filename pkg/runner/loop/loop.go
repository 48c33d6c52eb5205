// Package loop takes notes interactively until the user exits.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/prompt"
)

// Exit words end the loop at either prompt.
var exitWords = []string{"-e", "--exit"}

// keepWord reuses the previous topics.
const keepWord = "-s"

// Journal is the part of app.Service the loop drives.
type Journal interface {
	AppendEntry(ctx context.Context, requested []string, body string) (*entry.Entry, error)
	Entries(ctx context.Context, filter []string) ([]*entry.Entry, error)
}

// Asker reads one answer for label.
type Asker interface {
	Line(label, def string) (string, error)
}

// Loop alternates between a topics prompt and a note prompt.
type Loop struct {
	App       Journal
	Ask       Asker
	LineBreak string
	Out       io.Writer
}

func (l *Loop) Do(ctx context.Context) error {
	if l.App == nil || l.Ask == nil {
		return errors.New("loop requires a notes service and a prompt")
	}
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	lb := l.LineBreak
	if lb == "" {
		lb = entry.DefaultLineBreak
	}

	fmt.Fprintf(out, "Initiating loop.\n\tType %q or %q to break out of loop at any time.\n", exitWords[0], exitWords[1])
	fmt.Fprintf(out, "\tType %q when specifying topics to keep previous topics.\n", keepWord)
	fmt.Fprintf(out, "\tDenote line breaks with %q when typing notes.\n\n", lb)

	previous, err := l.latestTopics(ctx)
	if err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		answer, err := l.Ask.Line(fmt.Sprintf("Enter comma-separated topics. Previous Topics: %s\n\t", strings.Join(previous, ", ")), "")
		if err != nil {
			return done(err)
		}
		next, exit := NextTopics(answer, previous)
		if exit {
			return nil
		}
		previous = next

		body, err := l.Ask.Line(fmt.Sprintf("Enter Note (separate thoughts denoted by %s):\n\t", lb), "")
		if err != nil {
			return done(err)
		}
		if isExit(body) {
			return nil
		}
		if _, err := l.App.AppendEntry(ctx, previous, body); err != nil {
			if errors.Is(err, entry.ErrInvalidEntry) {
				fmt.Fprintf(out, "notes: %v\n", err)
				continue
			}
			return err
		}
	}
}

// NextTopics interprets the answer to the topics prompt. The keep word
// returns previous, an empty answer the default topic, and an exit word
// sets exit.
func NextTopics(answer string, previous []string) (topics []string, exit bool) {
	answer = strings.TrimSpace(answer)
	switch {
	case isExit(answer):
		return previous, true
	case answer == keepWord:
		return previous, false
	case answer == "":
		return []string{entry.DefaultTopic}, false
	}
	topics = entry.SplitTopics(answer)
	if len(topics) == 0 {
		return []string{entry.DefaultTopic}, false
	}
	return topics, false
}

// latestTopics seeds the prompt with the topics of the newest entry.
func (l *Loop) latestTopics(ctx context.Context) ([]string, error) {
	all, err := l.App.Entries(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 || len(all[0].Topics) == 0 {
		return []string{entry.DefaultTopic}, nil
	}
	return all[0].Topics, nil
}

func isExit(s string) bool {
	s = strings.TrimSpace(s)
	for _, w := range exitWords {
		if s == w {
			return true
		}
	}
	return false
}

func done(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}
