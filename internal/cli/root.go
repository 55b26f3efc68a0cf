package cli

import (
	"github.com/rcpassos/rasalint/internal/cli/commands"
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "rasalint",
		Short:         "Cross-file consistency linter for conversational projects",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunTUI(".")
		},
	}
	root.AddCommand(
		commands.InitCmd(),
		commands.ValidateCmd(),
		commands.WatchCmd(),
		commands.FilesCmd(),
		commands.TUICmd(),
	)
	return root
}
