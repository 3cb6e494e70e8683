package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/cantype/internal/presentation/tui"
	"github.com/aretw0/cantype/internal/validator"
	"github.com/aretw0/cantype/pkg/adapters/redis"
	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/aretw0/cantype/pkg/ports"
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Validate local declarations and store them in Redis",
		Long:  `Validates the declarations given by --file or --dir and saves them in Redis under the set named by --set, where serve and the other commands can load them with --redis.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("redis")
			set, _ := cmd.Flags().GetString("set")
			if addr == "" {
				return errors.New("publish needs --redis")
			}

			cfg, ok, err := loadLocal(cmd)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("publish needs --file or --dir")
			}

			store := redis.New(addr, "", 0)
			defer store.Close()
			if err := publish(cmd.Context(), store, set, cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tui.Status(out, true, fmt.Sprintf("published %d types to set %q", len(cfg.Types), set)))
			return nil
		},
	}
}

// publish validates cfg before saving it, so a store never holds a set
// that fails to declare.
func publish(ctx context.Context, store ports.DeclarationStore, set string, cfg *dsl.Config) error {
	if err := validator.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return store.Save(ctx, set, cfg)
}
