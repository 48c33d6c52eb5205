// Package prompt asks the user for input on the terminal.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user interrupts a prompt or input ends.
var ErrAborted = errors.New("prompt aborted")

// Prompter reads answers from In and draws prompts on Out. Nil fields use
// the process's stdin and stdout.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Line asks for one line of free text. An empty answer yields def.
func (p *Prompter) Line(label, def string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | faint }} ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	answer, err := prompt.Run()
	if err != nil {
		return "", aborted(err)
	}
	return answer, nil
}

// Pager answers the continue prompt between pages. Interrupting the prompt
// ends the run.
func (p *Prompter) Pager(label string) (string, error) {
	answer, err := p.Line(label, "")
	if errors.Is(err, ErrAborted) {
		return "b", nil
	}
	return answer, err
}

// Topic lets the user pick one of known, filtering as they type.
func (p *Prompter) Topic(known []string) (string, error) {
	if len(known) == 0 {
		return "", errors.New("prompt: no topics to choose from")
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold | cyan }}",
		Inactive: "   {{ . }}",
		Selected: "{{ . | bold }}",
	}
	searcher := func(input string, index int) bool {
		name := strings.ToLower(known[index])
		input = strings.ToLower(strings.ReplaceAll(input, " ", ""))
		return strings.Contains(name, input)
	}
	sel := promptui.Select{
		HideHelp:  true,
		Label:     "Topic",
		Items:     known,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	_, topic, err := sel.Run()
	if err != nil {
		return "", aborted(err)
	}
	return topic, nil
}

func aborted(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}

func (p *Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p *Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopCloser{p.Out}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
