package commands

import (
	"context"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/notes/pkg/app"
	"tableflip.dev/notes/pkg/commands/options"
	"tableflip.dev/notes/pkg/printers"
	"tableflip.dev/notes/pkg/prompt"
	"tableflip.dev/notes/pkg/store"
)

// skipSetup marks commands that run without loading the notes file.
const skipSetup = "notes.skip-setup"

var (
	oo = &base.OutputOptions{}
	ro = &options.RootOptions{}

	journal *app.Service
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: base.Wrap80("Topic-tagged notes on the command line."),
		Long: base.Wrap80("Keep quick notes in one plain text file, newest first. " +
			"Every note carries one or more topics and can be split into thoughts with ';'. " +
			"Topics and keywords are highlighted using the styles file."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			s, err := service()
			if err != nil {
				return err
			}
			_, err = s.MergeRedundancy(cmd.Context())
			return err
		},
	}

	options.AddRootArgs(cmd, ro)
	bindRootArgs(cmd)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addGet(topLevel)
	addTopics(topLevel)
	addLoop(topLevel)
	addWatch(topLevel)
	addStyle(topLevel)
	addDefault(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}

func bindRootArgs(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	for key, name := range map[string]string{
		store.KeyFile:      "file",
		store.KeyStyles:    "styles",
		store.KeyArchive:   "archive",
		store.KeyLineBreak: "linebreak",
		store.KeyPage:      "page",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// service loads the config and builds the journal once per process.
func service() (*app.Service, error) {
	if journal != nil {
		return journal, nil
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	term := printers.NewTerminal(color.Output, os.Stdout)
	if ro.NoColor {
		term.Color = false
	}
	s := app.New(cfg, term)
	s.Warn = os.Stderr
	if isatty.IsTerminal(os.Stdin.Fd()) {
		s.Pager = (&prompt.Prompter{}).Pager
	}
	journal = s
	return journal, nil
}

// topicCompletions offers the known topics starting with toComplete, in the
// case the user started typing in.
func topicCompletions(toComplete string) []string {
	s, err := service()
	if err != nil {
		return nil
	}
	names, err := s.Topics(context.Background())
	if err != nil {
		return nil
	}
	lower := toComplete == strings.ToLower(toComplete)
	prefix := strings.ToUpper(toComplete)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !strings.HasPrefix(n, prefix) {
			continue
		}
		if lower {
			n = strings.ToLower(n)
		}
		out = append(out, n)
	}
	return out
}

func completeTopics(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return topicCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
}
