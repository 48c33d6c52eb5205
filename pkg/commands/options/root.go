package options

import (
	"github.com/spf13/cobra"
)

// RootOptions are the flags shared by every command. The path and setting
// flags are bound to viper, so they override the config file and NOTES_*
// environment variables.
type RootOptions struct {
	File      string
	Styles    string
	Archive   string
	LineBreak string
	Page      int
	NoColor   bool
}

func AddRootArgs(cmd *cobra.Command, o *RootOptions) {
	cmd.PersistentFlags().StringVarP(&o.File, "file", "f", "",
		"Notes file to use instead of the configured default.")
	cmd.PersistentFlags().StringVar(&o.Styles, "styles", "",
		"Style sidecar file.")
	cmd.PersistentFlags().StringVar(&o.Archive, "archive", "",
		"Redundancy archive that every stored line is copied into.")
	cmd.PersistentFlags().StringVar(&o.LineBreak, "linebreak", "",
		`Delimiter that separates thoughts within a note, ";" by default.`)
	cmd.PersistentFlags().IntVar(&o.Page, "page", 0,
		"Entries shown per page when reading all notes, 0 keeps the configured value.")
	cmd.PersistentFlags().BoolVar(&o.NoColor, "no-color", false,
		"Disable colored output.")
}
