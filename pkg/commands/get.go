package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/prompt"
	"tableflip.dev/notes/pkg/runner/get"
	"tableflip.dev/notes/pkg/timeutil"
)

func addGet(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}
	var since string

	cmd := &cobra.Command{
		Use:     "get [topic...]",
		Aliases: []string{"read", "r"},
		Short:   "Print notes, all of them or those under some topics",
		Long: base.Wrap80("Print stored notes, newest first. Without topics every note is printed, " +
			"a page at a time on a terminal. With topics only notes carrying any of them are printed. " +
			"ALL, SHOW, HELP or TOPICS prints the list of topics first."),
		Example: `
notes get
notes get work
notes get all work
notes get -i
notes get work --since 1w
`,
		ValidArgsFunction: completeTopics,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			if since != "" {
				w, err := timeutil.ParseWindow(since)
				if err != nil {
					return oo.HandleError(err)
				}
				s.Since = w.Cutoff(time.Now())
			}
			g := get.Get{
				Topics:      args,
				Interactive: i.Interactive,
				Chooser:     &prompt.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()},
				Known:       s.Topics,
				App:         s,
			}
			err = g.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.InteractiveArgs(cmd, i)
	cmd.Flags().StringVar(&since, "since", "",
		`Only notes from this far back, for example "3d" or "1w2d".`)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
