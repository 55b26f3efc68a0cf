package commands

import (
	"fmt"

	"github.com/rcpassos/rasalint/internal/config"
	"github.com/rcpassos/rasalint/internal/project"
	"github.com/rcpassos/rasalint/internal/validator"
	"github.com/spf13/cobra"
)

func ValidateCmd() *cobra.Command {
	var failOnWarning bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run one validation pass and print the issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := project.FindRoot(".")
			if err != nil {
				return err
			}
			cfg, err := config.LoadFromRoot(root)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			v := validator.New(root, cfg)
			defer v.Close()

			report := v.Validate(cmd.Context())
			printReport(cmd.OutOrStdout(), root, report)

			if report.ErrorCount() > 0 {
				return fmt.Errorf("%d errors", report.ErrorCount())
			}
			if failOnWarning && len(report.Issues) > 0 {
				return fmt.Errorf("%d issues", len(report.Issues))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failOnWarning, "strict", false, "Exit non-zero on warnings and infos too")
	return cmd
}
