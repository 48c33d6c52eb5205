package add

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/notes/pkg/app"
)

// Add stores one note under Topics and renders it.
type Add struct {
	Topics  []string
	Message string

	App *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("can not add, no notes service")
	}
	if strings.TrimSpace(n.Message) == "" {
		return errors.New("requires a note")
	}
	_, err := n.App.AppendEntry(ctx, n.Topics, n.Message)
	return err
}
