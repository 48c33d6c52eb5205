package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(notes completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(notes completion)

Topic names are completed from the notes file.
`,
		ValidArgs:   []string{"bash", "zsh", "fish", "powershell"},
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(os.Stdout)
			case "fish":
				return topLevel.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return topLevel.GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return topLevel.GenBashCompletionV2(os.Stdout, true)
			}
		},
	}

	topLevel.AddCommand(cmd)
}
