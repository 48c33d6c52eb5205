package entry

import "strings"

// DefaultLineBreak separates thoughts inside a body.
const DefaultLineBreak = ";"

// sentinel stands in for an escaped delimiter while the body is split. It is
// a private-use rune; a body that already contains it renders incorrectly.
const sentinel = "\uE000"

// SplitThoughts breaks a body into display lines on delim. A backslash before
// delim keeps it literal. Pieces are trimmed and empty ones dropped.
func SplitThoughts(body, delim string) []string {
	if delim == "" {
		delim = DefaultLineBreak
	}
	escaped := strings.ReplaceAll(body, `\`+delim, sentinel)

	var thoughts []string
	for _, piece := range strings.Split(escaped, delim) {
		piece = strings.TrimSpace(strings.ReplaceAll(piece, sentinel, delim))
		if piece != "" {
			thoughts = append(thoughts, piece)
		}
	}
	return thoughts
}
