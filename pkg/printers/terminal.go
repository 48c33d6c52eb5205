package printers

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"tableflip.dev/notes/pkg/style"
)

// Terminal is the output capability handed to the renderer. It is built once
// per process; nothing in this package keeps global colour state.
type Terminal struct {
	Out   io.Writer
	Color bool
	// Width is the column count used for wrapping, 0 disables wrapping.
	Width int
}

// NewTerminal writes to out and probes tty for colour support and width.
// NO_COLOR in the environment disables colour.
func NewTerminal(out io.Writer, tty *os.File) *Terminal {
	t := &Terminal{Out: out}
	if tty == nil {
		return t
	}
	fd := tty.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		t.Color = !termenv.EnvNoColor()
		if w, _, err := term.GetSize(int(fd)); err == nil {
			t.Width = w
		}
	}
	return t
}

// bgDefault is SGR 49, which fatih/color has no constant for.
const bgDefault color.Attribute = 49

// The emitter table: every token kind maps to exactly one SGR sequence.
var (
	colorAttrs = map[style.Color][]color.Attribute{
		style.Green:   {color.FgGreen},
		style.Yellow:  {color.FgYellow},
		style.Red:     {color.FgRed},
		style.Cyan:    {color.FgCyan},
		style.Blue:    {color.FgBlue},
		style.Magenta: {color.FgMagenta},
		style.White:   {color.FgWhite},
	}
	emphasisAttrs = []color.Attribute{color.BgYellow, color.FgMagenta}
	// Reset returns to the body text style rather than the terminal default.
	resetAttrs = []color.Attribute{bgDefault, color.FgHiWhite}
	textAttrs  = []color.Attribute{color.FgHiWhite}
	fullReset  = []color.Attribute{color.Reset}
)

// Code returns the escape sequence for tok, or "" without colour.
func (t *Terminal) Code(tok style.Token) string {
	switch tok.Kind {
	case style.KindColor:
		return t.Sequence(colorAttrs[tok.Color]...)
	case style.KindEmphasis:
		return t.Sequence(emphasisAttrs...)
	case style.KindReset:
		return t.Sequence(resetAttrs...)
	default:
		return ""
	}
}

// Sequence builds one SGR escape sequence from attrs.
func (t *Terminal) Sequence(attrs ...color.Attribute) string {
	if !t.Color || len(attrs) == 0 {
		return ""
	}
	codes := make([]string, len(attrs))
	for i, a := range attrs {
		codes[i] = strconv.Itoa(int(a))
	}
	return termenv.CSI + strings.Join(codes, ";") + "m"
}
