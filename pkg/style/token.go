// Package style maps keywords to highlight tokens and parses the small
// markup language used in the style sidecar and inside note bodies.
package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind is the variant of a Token.
type Kind int

const (
	// KindNone is the zero Token: plain text.
	KindNone Kind = iota
	KindColor
	KindEmphasis
	KindReset
)

// Color names one entry of the terminal palette.
type Color string

const (
	Green   Color = "green"
	Yellow  Color = "yellow"
	Red     Color = "red"
	Cyan    Color = "cyan"
	Blue    Color = "blue"
	Magenta Color = "magenta"
	White   Color = "white"
)

// Token is a closed tagged variant: Color(name) | Emphasis | Reset.
type Token struct {
	Kind  Kind
	Color Color
}

// ColorToken returns a foreground colour token.
func ColorToken(c Color) Token { return Token{Kind: KindColor, Color: c} }

// Emphasis returns the highlighted-background token.
func Emphasis() Token { return Token{Kind: KindEmphasis} }

// Reset returns the token that ends any active style.
func Reset() Token { return Token{Kind: KindReset} }

// IsZero reports whether t carries no style.
func (t Token) IsZero() bool { return t.Kind == KindNone }

// String returns the canonical markup for t.
func (t Token) String() string {
	switch t.Kind {
	case KindColor:
		for short, c := range shorthand {
			if c == t.Color {
				return short
			}
		}
		return "<FORE-" + paletteHex[t.Color] + ">"
	case KindEmphasis:
		return "hhh"
	case KindReset:
		return "<RESET>"
	default:
		return ""
	}
}

// Shorthands returns the three-letter tokens, sorted.
func Shorthands() []string {
	out := make([]string, 0, len(shorthand)+1)
	for short := range shorthand {
		out = append(out, short)
	}
	out = append(out, "hhh")
	sort.Strings(out)
	return out
}

// DefaultValue is assigned to keywords seen for the first time.
const DefaultValue = "<FORE-fffb00>"

// DefaultToken is DefaultValue parsed.
var DefaultToken = ColorToken(Yellow)

var (
	shorthand = map[string]Color{
		"ggg": Green,
		"yyy": Yellow,
		"rrr": Red,
		"ccc": Cyan,
		"bbb": Blue,
		"mmm": Magenta,
	}

	paletteHex = map[Color]string{
		Yellow:  "fffb00",
		Green:   "3afa00",
		Red:     "ff0000",
		Cyan:    "78ddff",
		Blue:    "00bfff",
		Magenta: "8a00b0",
		White:   "ffffff",
	}

	palette = buildPalette()
)

type paletteEntry struct {
	color Color
	value colorful.Color
}

func buildPalette() []paletteEntry {
	order := []Color{Yellow, Green, Red, Cyan, Blue, Magenta, White}
	p := make([]paletteEntry, 0, len(order))
	for _, c := range order {
		v, err := colorful.Hex("#" + paletteHex[c])
		if err != nil {
			panic(fmt.Sprintf("style: bad palette entry %s: %v", c, err))
		}
		p = append(p, paletteEntry{color: c, value: v})
	}
	return p
}

// Nearest maps a six digit hex colour onto the closest palette colour.
func Nearest(hex string) (Color, error) {
	hex = strings.ToLower(strings.TrimPrefix(hex, "#"))
	for c, h := range paletteHex {
		if h == hex {
			return c, nil
		}
	}
	v, err := colorful.Hex("#" + hex)
	if err != nil {
		return "", fmt.Errorf("style: bad colour %q: %w", hex, err)
	}
	best := palette[0]
	bestDist := v.DistanceLab(best.value)
	for _, p := range palette[1:] {
		if d := v.DistanceLab(p.value); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best.color, nil
}

// ParseToken parses one markup value such as "ggg", "<FORE-fffb00>", "hhh",
// "<RESET>" or a palette colour name.
func ParseToken(value string) (Token, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return Token{}, fmt.Errorf("style: empty token")
	}
	if tok, keep, n, ok := matchMarker(v, true); ok && n == len(v) && keep == "" {
		return tok, nil
	}
	if v == ">>>" {
		return ColorToken(Green), nil
	}
	if _, ok := paletteHex[Color(strings.ToLower(v))]; ok {
		return ColorToken(Color(strings.ToLower(v))), nil
	}
	return Token{}, fmt.Errorf("style: unknown token %q", value)
}
