package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/style"
)

func addStyle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "style [keyword] [token]",
		Short: "Show or set the styles used for topics and keywords",
		Long: base.Wrap80("Without arguments, print the styles file. With a keyword and a token, " +
			"bind the token to the keyword. Tokens are <FORE-rrggbb>, <RESET>, </h> or one of " +
			"ggg, yyy, rrr, ccc, bbb, mmm or hhh."),
		Example: `
notes style
notes style deadline rrr
notes style work "<FORE-00ff00>"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("requires a keyword and a token, or nothing")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return topicCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return style.Shorthands(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := service()
			if err != nil {
				return oo.HandleError(err)
			}
			if len(args) == 2 {
				return oo.HandleError(s.SetStyle(cmd.Context(), args[0], args[1]))
			}

			styles, err := style.Load(s.Config.StylesPath)
			if err != nil {
				return oo.HandleError(err)
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("KEYWORD", "TOKEN", "SAMPLE")
			for _, k := range styles.Keywords() {
				rule, _ := styles.Rule(k)
				sample := s.Terminal.Code(rule.Token) + k + s.Terminal.Code(style.Reset())
				tbl.AddRow(k, rule.Value, sample)
			}
			_, _ = fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
