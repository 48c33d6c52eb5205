package options

import (
	"github.com/spf13/cobra"
)

// TopicOptions
type TopicOptions struct {
	Topics []string
}

func AddTopicArgs(cmd *cobra.Command, o *TopicOptions) {
	cmd.Flags().StringSliceVarP(&o.Topics, "topics", "t", nil,
		`Topics for the note, comma separated or repeated. ALL, SHOW, HELP or TOPICS prints the topic listing.`)
}
