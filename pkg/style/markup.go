package style

import "strings"

// Piece is either literal text or a style token.
type Piece struct {
	Token Token
	Text  string
}

const (
	forePrefix = "<FORE-"
	foreLen    = len("<FORE-000000>")
)

// Scan splits s into text and markup tokens. The three-letter shorthands
// (ggg, hhh, ...) only count at the start of a word or directly after
// another marker, so "eggs" stays plain; bracketed markers, ">>>" and "<<<"
// are recognized anywhere. "<FORE-hhhhhh>" is matched whole before "hhh".
func Scan(s string) []Piece {
	var (
		out  []Piece
		text strings.Builder
		last = 0
	)
	flush := func() {
		if text.Len() > 0 {
			out = append(out, Piece{Text: text.String()})
			text.Reset()
		}
	}
	for i := 0; i < len(s); {
		atStart := i == 0 || s[i-1] == ' ' || i == last
		if tok, keep, n, ok := matchMarker(s[i:], atStart); ok {
			flush()
			out = append(out, Piece{Token: tok})
			text.WriteString(keep)
			i += n
			last = i
			continue
		}
		text.WriteByte(s[i])
		i++
	}
	flush()
	return out
}

// Strip returns s with all markup removed.
func Strip(s string) string {
	var b strings.Builder
	for _, p := range Scan(s) {
		b.WriteString(p.Text)
	}
	return b.String()
}

func matchMarker(rest string, atStart bool) (tok Token, keep string, n int, ok bool) {
	switch {
	case strings.HasPrefix(rest, forePrefix) && len(rest) >= foreLen && rest[foreLen-1] == '>':
		code := rest[len(forePrefix) : foreLen-1]
		if strings.EqualFold(code, "hhhhhh") {
			return Emphasis(), "", foreLen, true
		}
		if isHex(code) {
			if c, err := Nearest(code); err == nil {
				return ColorToken(c), "", foreLen, true
			}
		}
		return Token{}, "", 0, false
	case strings.HasPrefix(rest, "<RESET>"):
		return Reset(), "", len("<RESET>"), true
	case strings.HasPrefix(rest, "</h>"):
		return Reset(), "", len("</h>"), true
	case strings.HasPrefix(rest, "<<<"):
		return Reset(), "", 3, true
	case strings.HasPrefix(rest, ">>>"):
		return ColorToken(Green), ">>>", 3, true
	case atStart && len(rest) >= 3:
		short := rest[:3]
		if short == "hhh" {
			return Emphasis(), "", 3, true
		}
		if c, found := shorthand[short]; found {
			return ColorToken(c), "", 3, true
		}
	}
	return Token{}, "", 0, false
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
