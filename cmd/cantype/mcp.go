package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/cantype/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the declared types as MCP tools (list_types, coerce, schema).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transport, _ := cmd.Flags().GetString("transport")
			port, _ := cmd.Flags().GetInt("port")

			// Logs go to stderr so they never corrupt JSON-RPC on stdout.
			env, err := loadEnvironment(cmd, nil)
			if err != nil {
				return err
			}
			srv := mcp.NewServer(env.decls, env.logger)

			switch transport {
			case "stdio":
				env.logger.Info("Starting cantype MCP Server (Stdio)...")
				return srv.ServeStdio()
			case "sse":
				env.logger.Info("Starting cantype MCP Server (SSE)", "port", port)

				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				env.logger.Info("MCP Server stopped gracefully")
				return nil
			}
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		},
	}

	cmd.Flags().String("transport", "stdio", "Transport type (stdio, sse)")
	cmd.Flags().Int("port", 8080, "Port for SSE server")
	return cmd
}
