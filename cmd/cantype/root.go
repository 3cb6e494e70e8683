package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/internal/logging"
	"github.com/aretw0/cantype/internal/presentation/tui"
	"github.com/aretw0/cantype/pkg/adapters/loam"
	"github.com/aretw0/cantype/pkg/adapters/redis"
	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/aretw0/cantype/pkg/ports"
	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Status(os.Stderr, false, err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cantype",
		Short:         "cantype coerces and checks values against declared types",
		Long:          `cantype loads record declarations from a YAML file and coerces, checks or describes values of those types.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "", "YAML file with type declarations")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("production", false, "Alias check to convert and maybe to maybeConvert")
	rootCmd.PersistentFlags().String("dir", "", "Directory of record documents, one Markdown file per record")
	rootCmd.PersistentFlags().String("redis", "", "Redis address to load declarations from when --file and --dir are not set")
	rootCmd.PersistentFlags().String("set", "default", "Name of the declaration set stored in Redis")

	rootCmd.AddCommand(
		newCoerceCmd(),
		newSchemaCmd(),
		newValidateCmd(),
		newGraphCmd(),
		newPublishCmd(),
		newMCPCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// environment is what every command needs: a logger and the declared types.
type environment struct {
	logger *slog.Logger
	decls  *dsl.Declarations
}

// loadEnvironment reads the flags and the declaration file. hooks, when not
// nil, builds the factory hooks from the configured logger.
func loadEnvironment(cmd *cobra.Command, hooks func(*slog.Logger) cantype.Hooks) (*environment, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	production, _ := cmd.Flags().GetBool("production")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	// The flag can only turn production on.
	production = production || cfg.Production

	opts := []cantype.Option{
		cantype.WithLogger(logger),
		cantype.WithProduction(production),
	}
	if hooks != nil {
		opts = append(opts, cantype.WithHooks(hooks(logger)))
	}
	decls, err := cfg.Declare(cantype.NewFactory(opts...))
	if err != nil {
		return nil, fmt.Errorf("invalid declarations: %w", err)
	}

	logger.Debug("declarations loaded", "types", len(decls.Names()), "production", production)
	return &environment{logger: logger, decls: decls}, nil
}

// loadConfig reads the local declarations (see loadLocal), or the set named
// by --set from the Redis server at --redis. Without any source only the
// builtin types exist.
func loadConfig(cmd *cobra.Command) (*dsl.Config, error) {
	cfg, ok, err := loadLocal(cmd)
	if ok || err != nil {
		return cfg, err
	}

	addr, _ := cmd.Flags().GetString("redis")
	if addr == "" {
		return &dsl.Config{}, nil
	}
	set, _ := cmd.Flags().GetString("set")

	store := redis.New(addr, "", 0)
	defer store.Close()
	return loadSet(cmd.Context(), store, set)
}

// loadLocal reads the declaration file named by --file or the record
// documents in --dir. ok is false when neither flag is set.
func loadLocal(cmd *cobra.Command) (cfg *dsl.Config, ok bool, err error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		cfg, err = dsl.LoadFile(file)
		return cfg, true, err
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		src, err := loam.Open(dir)
		if err != nil {
			return nil, true, err
		}
		cfg, err = src.Load(cmd.Context())
		return cfg, true, err
	}
	return nil, false, nil
}

func loadSet(ctx context.Context, store ports.DeclarationStore, set string) (*dsl.Config, error) {
	cfg, err := store.Load(ctx, set)
	if errors.Is(err, ports.ErrSetNotFound) {
		names, _ := store.List(ctx)
		return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
	}
	return cfg, err
}
