package get

import (
	"context"
	"errors"
)

// Renderer is the part of app.Service that Get needs.
type Renderer interface {
	RenderStoredEntries(ctx context.Context, filter []string) error
}

// Chooser picks a topic interactively.
type Chooser interface {
	Topic(known []string) (string, error)
}

// Get renders stored notes, all of them or those under Topics.
type Get struct {
	Topics []string

	// Interactive asks for the topic with Chooser when no topic was given.
	Interactive bool
	Chooser     Chooser
	Known       func(ctx context.Context) ([]string, error)

	App Renderer
}

func (n *Get) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not get, no notes service")
	}
	if n.Interactive && len(n.Topics) == 0 && n.Chooser != nil && n.Known != nil {
		known, err := n.Known(ctx)
		if err != nil {
			return err
		}
		topic, err := n.Chooser.Topic(known)
		if err != nil {
			return err
		}
		n.Topics = []string{topic}
	}
	return n.App.RenderStoredEntries(ctx, n.Topics)
}
