package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/prompt"
	"tableflip.dev/notes/pkg/runner/loop"
)

func addLoop(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "loop",
		Short: "Take notes interactively until you exit",
		Long: base.Wrap80("Prompt for topics and a note over and over, adding each note as it is entered. " +
			`Answer "-s" to the topics prompt to keep the previous topics, or "-e" at any prompt to stop.`),
		Example: `
notes loop
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			l := loop.Loop{
				App:       s,
				Ask:       &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
				LineBreak: s.Config.LineBreak,
				Out:       cmd.OutOrStdout(),
			}
			err = l.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
