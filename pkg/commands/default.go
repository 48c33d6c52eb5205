package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/store"
)

func addDefault(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "default <path>",
		Short: "Change the default notes file",
		Long: base.Wrap80("Record path as the notes file in the config file. " +
			"The previous config file is kept as a COPY - backup next to it."),
		Example: `
notes default ~/notes/work.txt
`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := homedir.Expand(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			if _, err := store.LoadConfig(); err != nil {
				return oo.HandleError(err)
			}
			file, err := store.SetDefaultFile(path)
			if err != nil {
				return oo.HandleError(err)
			}
			_, _ = fmt.Fprintf(color.Output, "Default file changed to %s in %s\n", path, file)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
