// Package topics indexes the topics present in a notes file and interprets
// topic filters.
package topics

import (
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"

	"tableflip.dev/notes/pkg/entry"
)

// headerPattern captures the topic segment of a stored line.
var headerPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}--(.*?):`)

// Reserved words request the topic listing instead of filtering.
var Reserved = []string{"ALL", "SHOW", "HELP", "TOPICS"}

// IsReserved reports whether word is one of Reserved, ignoring case.
func IsReserved(word string) bool {
	key := entry.TopicKey(word)
	for _, r := range Reserved {
		if key == r {
			return true
		}
	}
	return false
}

// DistinctTopics returns the upper-cased topics found in lines, in the order
// they are first seen. Lines that do not carry a topic header are reported
// by 1-based line number in skipped.
func DistinctTopics(lines []string) (topics []string, skipped []int) {
	seen := make(map[string]struct{})
	for i, line := range lines {
		m := headerPattern.FindStringSubmatch(line)
		if m == nil {
			skipped = append(skipped, i+1)
			continue
		}
		for _, t := range entry.SplitTopics(m[1]) {
			key := entry.TopicKey(t)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			topics = append(topics, key)
		}
	}
	return topics, skipped
}

// ParseFilter removes reserved words from requested. listing reports whether
// any were present. The remaining topics keep their order.
func ParseFilter(requested []string) (filter []string, listing bool) {
	for _, t := range requested {
		if IsReserved(t) {
			listing = true
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			filter = append(filter, t)
		}
	}
	return filter, listing
}

// Count is the number of entries carrying a topic.
type Count struct {
	Topic   string `json:"topic"`
	Entries int    `json:"entries"`
	Latest  string `json:"latest"`
}

// Tally counts entries per topic key in discovery order. Entries are
// expected newest first, so Latest is the first timestamp seen.
func Tally(entries []*entry.Entry) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, e := range entries {
		for _, key := range unique(e.Keys()) {
			i, ok := index[key]
			if !ok {
				i = len(counts)
				index[key] = i
				counts = append(counts, Count{Topic: key, Latest: entry.FormatTime(e.Timestamp)})
			}
			counts[i].Entries++
		}
	}
	return counts
}

// Suggest returns known topics that fuzzily match query, best first.
func Suggest(query string, known []string, limit int) []string {
	matches := fuzzy.Find(entry.TopicKey(query), known)
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

func unique(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
