package main

import (
	"fmt"

	"github.com/aretw0/cantype/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Export the record reference graph",
		Long:  `Outputs a Mermaid diagram (graph LR) of the declared records and the fields that reference other records.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(cfg))
			return nil
		},
	}
}
