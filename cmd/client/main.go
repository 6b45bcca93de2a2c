// Package main is the storefront command line client: an interactive shell
// over the commerce backend that keeps the signed-in session and search
// history between runs.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/atinyakov/storefront/internal/client/api"
	"github.com/atinyakov/storefront/internal/client/app"
	"github.com/atinyakov/storefront/internal/client/shell"
	"github.com/atinyakov/storefront/internal/client/storage"
	"github.com/atinyakov/storefront/internal/config"
	"github.com/atinyakov/storefront/internal/db"
	"github.com/atinyakov/storefront/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	options := config.BindClientFlags(root.PersistentFlags())
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return options.Resolve(cmd.Flags())
	}

	root.AddCommand(&cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.Context(), options, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\n", cmp.Or(version, "N/A"))
			fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", cmp.Or(buildDate, "N/A"))
			return nil
		},
	})
	return root
}

// runShell builds the application from options, restores persisted state,
// runs the shell and persists the final state.
func runShell(ctx context.Context, options *config.ClientOptions, in io.Reader, out io.Writer) error {
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		return err
	}

	store, closeStore, err := openStorage(options)
	if err != nil {
		return err
	}
	defer closeStore()

	hc, err := api.NewHTTPClient(options.CAFile)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	metrics, err := api.NewMetrics(reg)
	if err != nil {
		return err
	}
	client, err := api.New(options.BaseURL, options.APIKey,
		api.WithHTTPClient(hc),
		api.WithLogger(log.Log.Named("api")),
		api.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	a := app.New(app.Deps{API: client, Storage: store, Log: log.Log})
	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	runErr := shell.New(a, in, out, shell.WithMetrics(reg)).Run(ctx)
	// Persist even when interrupted; the run context may already be done.
	if err := a.Persist(context.WithoutCancel(ctx)); err != nil {
		log.Log.Error("failed to persist state", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// openStorage picks the Postgres backend when a DSN is configured and the
// state file otherwise.
func openStorage(options *config.ClientOptions) (storage.Backend, func(), error) {
	if options.StateDSN == "" {
		return storage.NewFileBackend(options.StateFile), func() {}, nil
	}
	conn, err := db.InitPostgres(options.StateDSN)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewPostgresBackend(conn), func() { _ = conn.Close() }, nil
}
