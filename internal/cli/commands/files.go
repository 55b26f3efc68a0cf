package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rcpassos/rasalint/internal/project"
	"github.com/spf13/cobra"
)

func FilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "Show the discovered project files per bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			files, err := project.NewScanner(root).Scan()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBucket := func(label string, paths []string) {
				fmt.Fprintf(out, "%s (%d)\n", label, len(paths))
				for _, p := range paths {
					rel, err := filepath.Rel(root, p)
					if err != nil {
						rel = p
					}
					fmt.Fprintf(out, "  %s\n", rel)
				}
			}
			printBucket("definition files", files.DefinitionFiles)
			printBucket("nlu files", files.NLUFiles)
			printBucket("story files", files.StoryFiles)
			printBucket("rule files", files.RuleFiles)
			return nil
		},
	}
}
