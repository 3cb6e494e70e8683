package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/cantype"
	httpAdapter "github.com/aretw0/cantype/pkg/adapters/http"
	"github.com/aretw0/cantype/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Starts an HTTP server exposing coercion and schemas of the declared types, plus Prometheus metrics on /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			metrics := observability.NewMetrics(reg)

			env, err := loadEnvironment(cmd, func(logger *slog.Logger) cantype.Hooks {
				return observability.Combine(metrics.Hooks(), observability.LogHooks(logger))
			})
			if err != nil {
				return err
			}

			handler := httpAdapter.NewHandler(env.decls,
				httpAdapter.WithLogger(env.logger),
				httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
			)

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)

			go func() {
				env.logger.Info("starting server", "addr", srv.Addr, "types", len(env.decls.Names()))
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server error: %w", err)

			case sig := <-shutdown:
				env.logger.Info("shutting down", "signal", sig.String())

				// Give outstanding requests a deadline for completion.
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(ctx); err != nil {
					env.logger.Warn("graceful shutdown did not complete", "error", err)
					return srv.Close()
				}
				return nil
			}
		},
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	return cmd
}
