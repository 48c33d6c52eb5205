// Package store persists notes in a single newest-first text file.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"tableflip.dev/notes/pkg/backup"
	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/fileutil"
)

// Notes is the notes file. It is owned by one process at a time; there is no
// locking and the last full rewrite wins.
type Notes struct {
	Path string
	// Warn receives skipped-line warnings and backup notices, os.Stderr
	// when nil.
	Warn io.Writer
}

// Open returns the notes file at path.
func Open(path string) *Notes {
	return &Notes{Path: path}
}

// Exists reports whether the notes file has been created.
func (n *Notes) Exists() bool {
	_, err := os.Stat(n.Path)
	return err == nil
}

// Lines returns the raw lines, newest first. A missing file is empty.
func (n *Notes) Lines() ([]string, error) {
	lines, _, err := fileutil.ReadLines(n.Path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return lines, nil
}

// Entries decodes every line. Malformed lines are reported on Warn with their
// line number and skipped.
func (n *Notes) Entries() ([]*entry.Entry, error) {
	lines, err := n.Lines()
	if err != nil {
		return nil, err
	}
	return n.Decode(lines), nil
}

// Decode turns raw lines into entries, warning about and skipping malformed
// ones. Blank lines are ignored silently.
func (n *Notes) Decode(lines []string) []*entry.Entry {
	all := make([]*entry.Entry, 0, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		e, err := entry.Decode(line)
		if err != nil {
			var pe *entry.ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
			}
			fmt.Fprintf(n.warn(), "store: %s: %v\n", n.Path, err)
			continue
		}
		all = append(all, e)
	}
	return all
}

// Prepend writes e as the new first line. The current file is copied aside
// with backup.Copy first; when there is nothing to copy a notice is printed
// and the write goes ahead.
func (n *Notes) Prepend(e *entry.Entry) (string, error) {
	line, err := entry.Encode(*e)
	if err != nil {
		return "", err
	}
	lines, exists, err := fileutil.ReadLines(n.Path)
	if err != nil {
		return "", fmt.Errorf("store: %w", err)
	}

	if !exists {
		fmt.Fprintf(n.warn(), "Creating %s\n", n.Path)
	} else if _, err := backup.Copy(n.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(n.warn(), "Creating %s\n", n.Path)
		} else {
			fmt.Fprintf(n.warn(), "store: backup %s: %v\n", n.Path, err)
		}
	}

	all := make([]string, 0, len(lines)+1)
	all = append(all, line)
	all = append(all, lines...)
	if err := fileutil.WriteLines(n.Path, all); err != nil {
		return "", fmt.Errorf("store: %w", err)
	}
	return line, nil
}

func (n *Notes) warn() io.Writer {
	if n.Warn == nil {
		return os.Stderr
	}
	return n.Warn
}
