package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	to := &options.TopicOptions{}
	var message string

	cmd := &cobra.Command{
		Use:     "add <note>",
		Aliases: []string{"note", "a", "n"},
		Short:   "Add a note",
		Long: base.Wrap80("Add a note to the top of the notes file and print it. " +
			"Separate thoughts with the line break delimiter, ';' by default. " +
			`Escape it as '\;' to keep it in the text.`),
		Example: `
notes add -t work,urgent finish the report; send it to Sam
notes add remember the milk
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			message = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			a := add.Add{
				Topics:  to.Topics,
				Message: message,
				App:     s,
			}
			err = a.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	options.AddTopicArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("topics", completeTopics)

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
