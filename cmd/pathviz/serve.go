package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/pathviz/internal/metrics"
	"github.com/katalvlaran/pathviz/internal/runner"
	"github.com/katalvlaran/pathviz/internal/server"
	"github.com/katalvlaran/pathviz/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		traceStdout bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and WebSocket stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if traceStdout {
				shutdown, err := initTracer(cmd)
				if err != nil {
					return err
				}
				defer shutdown()
			}

			m := metrics.New(prometheus.DefaultRegisterer)
			st, err := store.Open(store.Config{
				Path:       cfg.Store.Path,
				InMemory:   cfg.Store.InMemory,
				SyncWrites: !cfg.Store.InMemory,
				Logger:     a.logger,
				Metrics:    m,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					a.logger.Error("store close failed", "error", err)
				}
			}()

			srv := server.New(server.Deps{
				Config:   cfg,
				Runner:   runner.New(runner.WithLogger(a.logger), runner.WithMetrics(m), runner.WithTracerProvider(otel.GetTracerProvider())),
				Store:    st,
				Metrics:  m,
				Gatherer: prometheus.DefaultGatherer,
				Logger:   a.logger,
			})
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&traceStdout, "trace-stdout", false, "export OpenTelemetry spans to stderr")

	return cmd
}

// initTracer installs a global tracer provider that writes spans to the
// command's stderr and returns its shutdown function.
func initTracer(cmd *cobra.Command) (func(), error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(cmd.ErrOrStderr()))
	if err != nil {
		return nil, fmt.Errorf("stdout trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "trace shutdown:", err)
		}
	}, nil
}
