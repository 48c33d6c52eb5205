// Package timeutil parses the look-back windows accepted by --since.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units          = map[string]time.Duration{
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day,
		"w": 7 * day, "wk": 7 * day, "wks": 7 * day, "week": 7 * day, "weeks": 7 * day,
	}
	// Largest first, used by String.
	labels = []struct {
		label string
		value time.Duration
	}{{"w", 7 * day}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}}
)

// Window is a look-back span such as "3d" or "1w2d6h".
type Window time.Duration

// ParseWindow parses segments of a count followed by a unit (minutes, hours,
// days or weeks) with no separator between them.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, fmt.Errorf("empty window")
	}
	var total time.Duration
	for len(remaining) > 0 {
		m := segmentPattern.FindStringSubmatch(remaining)
		if m == nil {
			return 0, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("window must be greater than zero")
	}
	return Window(total), nil
}

// Cutoff is the earliest time inside w, counting back from now.
func (w Window) Cutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(w))
}

// String renders w compactly, for example "1w2d".
func (w Window) String() string {
	remaining := time.Duration(w)
	var b strings.Builder
	for _, l := range labels {
		if remaining < l.value {
			continue
		}
		count := remaining / l.value
		remaining -= count * l.value
		fmt.Fprintf(&b, "%d%s", count, l.label)
	}
	if b.Len() == 0 {
		return "0m"
	}
	return b.String()
}
