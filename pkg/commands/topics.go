package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/topics"
)

func addTopics(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"ls"},
		Short:   "List the topics in the notes file",
		Example: `
notes topics
notes topics --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			if !oo.JSON {
				return oo.HandleError(s.ListTopics(cmd.Context()))
			}
			all, err := s.Entries(cmd.Context(), nil)
			if err != nil {
				return oo.HandleError(err)
			}
			b, err := json.Marshal(map[string]any{"topics": topics.Tally(all)})
			if err != nil {
				return oo.HandleError(err)
			}
			_, _ = fmt.Fprintln(color.Output, string(b))
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
