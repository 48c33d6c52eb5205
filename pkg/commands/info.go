package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/notes/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the notes file and where things are stored.",
		Example: `
notes info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			i := info.Info{
				ConfigFile: viper.ConfigFileUsed(),
				App:        s,
				Out:        cmd.OutOrStdout(),
			}
			err = i.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
