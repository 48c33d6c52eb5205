// Package mcp serves the notes journal over the Model Context Protocol.
package mcp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/entry"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/style"
	"tableflip.dev/notes/pkg/topics"
)

// Service adapts app.Service for MCP callers. Nothing is written to the
// terminal; rendered output is returned as text instead.
type Service struct {
	app *app.Service
}

// TopicSummary describes a topic and its entries.
type TopicSummary struct {
	Name        string `json:"name"`
	EntryCount  int    `json:"entryCount"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	Style       string `json:"style,omitempty"`
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	Timestamp string   `json:"timestamp"`
	Unix      int64    `json:"unix"`
	Topics    []string `json:"topics"`
	Body      string   `json:"body"`
	Thoughts  []string `json:"thoughts"`
}

// NewService wraps a. Renders triggered by appends are discarded and paging
// is disabled.
func NewService(a *app.Service) *Service {
	headless := *a
	headless.Terminal = &printers.Terminal{Out: io.Discard}
	headless.Pager = nil
	if headless.Warn == nil {
		headless.Warn = io.Discard
	}
	return &Service{app: &headless}
}

// AppendEntry stores a new entry. Reserved words are dropped from topics.
func (s *Service) AppendEntry(ctx context.Context, topicList []string, body string) (*EntryDTO, error) {
	if strings.TrimSpace(body) == "" {
		return nil, errors.New("body is required")
	}
	e, err := s.app.AppendEntry(ctx, topicList, body)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(e)
	return &dto, nil
}

// ListTopics returns every topic in discovery order with counts and styles.
func (s *Service) ListTopics(ctx context.Context) ([]TopicSummary, error) {
	names, err := s.app.Topics(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.app.Entries(ctx, nil)
	if err != nil {
		return nil, err
	}
	styles, err := style.Load(s.app.Config.StylesPath)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]topics.Count)
	for _, c := range topics.Tally(all) {
		counts[c.Topic] = c
	}
	out := make([]TopicSummary, 0, len(names))
	for _, name := range names {
		sum := TopicSummary{
			Name:        name,
			EntryCount:  counts[name].Entries,
			LastUpdated: counts[name].Latest,
		}
		if rule, ok := styles.Rule(name); ok {
			sum.Style = rule.Value
		}
		out = append(out, sum)
	}
	return out, nil
}

// ListEntries returns entries newest first, limited to those carrying any of
// topicList when it is not empty. limit <= 0 returns everything.
func (s *Service) ListEntries(ctx context.Context, topicList []string, limit int) ([]EntryDTO, error) {
	filter, _ := topics.ParseFilter(topicList)
	all, err := s.app.Entries(ctx, filter)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return s.toDTOs(all), nil
}

// SearchEntries performs a case-insensitive substring match across bodies
// and topics.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []EntryDTO{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	all, err := s.app.Entries(ctx, nil)
	if err != nil {
		return nil, err
	}
	results := make([]*entry.Entry, 0, limit)
	for _, e := range all {
		if len(results) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(e.Body), q) || strings.Contains(strings.ToLower(strings.Join(e.Topics, " ")), q) {
			results = append(results, e)
		}
	}
	return s.toDTOs(results), nil
}

// RenderEntries renders stored entries as plain text, the way the terminal
// shows them without colour. width <= 0 disables wrapping.
func (s *Service) RenderEntries(ctx context.Context, topicList []string, width int) (string, error) {
	var buf bytes.Buffer
	r := *s.app
	r.Terminal = &printers.Terminal{Out: &buf, Width: width}
	if err := r.RenderStoredEntries(ctx, topicList); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SetStyle binds a style token to keyword.
func (s *Service) SetStyle(ctx context.Context, keyword, value string) error {
	return s.app.SetStyle(ctx, keyword, value)
}

func (s *Service) toDTOs(entries []*entry.Entry) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, s.toDTO(e))
	}
	return out
}

func (s *Service) toDTO(e *entry.Entry) EntryDTO {
	thoughts := entry.SplitThoughts(e.Body, s.app.Config.LineBreak)
	if thoughts == nil {
		thoughts = []string{}
	}
	return EntryDTO{
		Timestamp: entry.FormatTime(e.Timestamp),
		Unix:      e.Timestamp.Unix(),
		Topics:    e.Topics,
		Body:      e.Body,
		Thoughts:  thoughts,
	}
}
