package main

import (
	"fmt"

	"github.com/aretw0/cantype/internal/presentation/tui"
	"github.com/aretw0/cantype/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the declaration file for consistency",
		Long:  `Reports every reserved name, malformed expression, unknown type and required reference cycle in the declaration file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := validator.ValidateConfig(cfg); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.Status(out, true, fmt.Sprintf("%d types are valid", len(cfg.Types))))
			return nil
		},
	}
}
