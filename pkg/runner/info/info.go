package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/store"
)

// Info prints where notes, styles and the archive live, then the topics.
type Info struct {
	ConfigFile string
	App        *app.Service
	Out        io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.App == nil {
		return fmt.Errorf("failed to create notes service")
	}
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		fmt.Fprintf(out, "%s found on env, using %s\n", store.ConfigPathEnv, override)
	} else {
		fmt.Fprintf(out, "%s env var not set\n", store.ConfigPathEnv)
	}
	if n.ConfigFile != "" {
		fmt.Fprintf(out, "Config file: %s\n", n.ConfigFile)
	} else {
		fmt.Fprintln(out, "Config file: none, using defaults")
	}

	cfg := n.App.Config
	fmt.Fprintf(out, "Notes:      %s\n", cfg.NotesPath)
	fmt.Fprintf(out, "Styles:     %s\n", cfg.StylesPath)
	fmt.Fprintf(out, "Archive:    %s\n", cfg.ArchivePath)
	fmt.Fprintf(out, "Line break: %q\n", cfg.LineBreak)

	return n.App.ListTopics(ctx)
}
