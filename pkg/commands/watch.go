package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notes/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch [topic...]",
		Short: "Print new notes as they are added",
		Example: `
notes watch
notes watch work
`,
		ValidArgsFunction: completeTopics,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			w := watch.Watch{
				Topics: args,
				Notes:  s.Notes,
				App:    s,
				Out:    cmd.OutOrStdout(),
			}
			err = w.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
