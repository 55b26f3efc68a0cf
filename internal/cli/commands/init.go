package commands

import (
	"fmt"

	"github.com/rcpassos/rasalint/internal/config"
	"github.com/rcpassos/rasalint/internal/project"
	"github.com/spf13/cobra"
)

func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.ConfigFileName + " to the project root",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			if err := config.WriteDefault(root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s in %s\n", config.ConfigFileName, root)
			return nil
		},
	}
}
