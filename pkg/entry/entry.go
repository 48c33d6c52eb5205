// Package entry encodes and decodes the one-line note format:
//
//	2006-01-02 15:04:05--topic1, topic2::body
package entry

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultTopic is written when an entry carries no topics.
	DefaultTopic = "misc"

	timeSeparator  = "--"
	bodySeparator  = "::"
	topicSeparator = ", "
)

// ErrMalformedEntry is wrapped by every decode failure.
var ErrMalformedEntry = errors.New("malformed entry")

// ErrInvalidEntry is wrapped by every encode failure.
var ErrInvalidEntry = errors.New("entry: invalid")

var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

// Entry is a single note.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Topics    []string  `json:"topics"`
	Body      string    `json:"body"`
}

// New makes an entry stamped with now, truncated to the second.
func New(now time.Time, topics []string, body string) *Entry {
	return &Entry{
		Timestamp: now.Truncate(time.Second),
		Topics:    topics,
		Body:      body,
	}
}

// Keys returns the upper-cased topics used for indexing and filtering.
func (e *Entry) Keys() []string {
	keys := make([]string, 0, len(e.Topics))
	for _, t := range e.Topics {
		keys = append(keys, TopicKey(t))
	}
	return keys
}

// HasTopic reports whether any of the entry's topics matches one of keys,
// ignoring case.
func (e *Entry) HasTopic(keys ...string) bool {
	for _, have := range e.Keys() {
		for _, want := range keys {
			if have == TopicKey(want) {
				return true
			}
		}
	}
	return false
}

// TopicKey normalizes a topic for comparisons.
func TopicKey(topic string) string {
	return strings.ToUpper(strings.TrimSpace(topic))
}

// ParseError describes a line that could not be decoded.
type ParseError struct {
	// Line is the 1-based line number within the store, 0 when unknown.
	Line   int
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, ErrMalformedEntry, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedEntry, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedEntry
}

// Encode renders e as one store line without the trailing newline.
func Encode(e Entry) (string, error) {
	topics := e.Topics
	if len(topics) == 0 {
		topics = []string{DefaultTopic}
	}
	clean := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			return "", fmt.Errorf("%w: empty topic", ErrInvalidEntry)
		}
		if strings.ContainsAny(t, ",:=\r\n") {
			return "", fmt.Errorf("%w: topic %q may not contain ',', ':', '=' or line breaks", ErrInvalidEntry, t)
		}
		if strings.HasPrefix(t, ";") {
			return "", fmt.Errorf("%w: topic %q may not start with ';'", ErrInvalidEntry, t)
		}
		clean = append(clean, t)
	}
	if strings.ContainsAny(e.Body, "\r\n") {
		return "", fmt.Errorf("%w: body may not contain line breaks", ErrInvalidEntry)
	}

	var b strings.Builder
	b.WriteString(FormatTime(e.Timestamp))
	b.WriteString(timeSeparator)
	b.WriteString(strings.Join(clean, topicSeparator))
	if len(clean) == 1 && strings.ContainsAny(clean[0], " \t") {
		// A comma-less header splits on whitespace.
		b.WriteString(",")
	}
	b.WriteString(bodySeparator)
	b.WriteString(e.Body)
	return b.String(), nil
}

// Decode parses one store line. A trailing newline is ignored.
func Decode(line string) (*Entry, error) {
	line = strings.TrimRight(line, "\r\n")

	stamp, rest, ok := strings.Cut(line, timeSeparator)
	if !ok {
		return nil, &ParseError{Text: line, Reason: "missing '--' after timestamp"}
	}
	if !timestampPattern.MatchString(stamp) {
		return nil, &ParseError{Text: line, Reason: fmt.Sprintf("bad timestamp %q", stamp)}
	}
	ts, err := ParseTime(stamp)
	if err != nil {
		return nil, &ParseError{Text: line, Reason: err.Error()}
	}

	header, body, ok := strings.Cut(rest, bodySeparator)
	if !ok {
		return nil, &ParseError{Text: line, Reason: "missing '::' separator"}
	}

	return &Entry{
		Timestamp: ts,
		Topics:    SplitTopics(header),
		Body:      body,
	}, nil
}

// SplitTopics splits a topic segment on commas, or on whitespace when the
// segment has no comma.
func SplitTopics(segment string) []string {
	var parts []string
	if strings.Contains(segment, ",") {
		parts = strings.Split(segment, ",")
	} else {
		parts = strings.Fields(segment)
	}
	topics := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			topics = append(topics, p)
		}
	}
	return topics
}

// Prefix returns the dedupe prefix of a raw line: the text before the first
// "--".
func Prefix(line string) string {
	prefix, _, _ := strings.Cut(line, timeSeparator)
	return prefix
}
