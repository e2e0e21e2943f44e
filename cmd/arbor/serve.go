package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/treefile"
	httpAdapter "github.com/aretw0/arbor/pkg/adapters/http"
	"github.com/aretw0/arbor/pkg/observability"
	"github.com/aretw0/arbor/pkg/recorder"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host a treefile over HTTP",
	Long:  `Builds the object tree from the treefile, records every dispatched action to the configured store, and exposes apply/inspect endpoints over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		treePath, _ := cmd.Flags().GetString("tree")
		addrFlag, _ := cmd.Flags().GetString("addr")
		storeFlag, _ := cmd.Flags().GetString("store")
		levelFlag, _ := cmd.Flags().GetString("log-level")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		if addrFlag != "" {
			cfg.Addr = addrFlag
		}
		if storeFlag != "" {
			cfg.Store = storeFlag
		}
		if levelFlag != "" {
			cfg.LogLevel = levelFlag
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		spec, err := treefile.Load(treePath)
		if err != nil {
			fmt.Printf("Error loading treefile: %v\n", err)
			os.Exit(1)
		}
		tree := treefile.Build(spec)
		root := tree.RootNode()

		store, closeStore, err := openStore(cfg)
		if err != nil {
			fmt.Printf("Error opening action store: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			if err := closeStore(); err != nil {
				logger.Warn("failed to close action store", "err", err)
			}
		}()

		// Observability first, recorder second: the recorder only persists
		// calls the metrics middleware has already seen and forwarded.
		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)
		removeMetrics := root.AddMiddleware(metrics.Middleware())
		defer removeMetrics()

		rec := recorder.Attach(root, store, recorder.WithLogger(logger))
		defer rec.Stop()

		handler := httpAdapter.NewHandler(root,
			httpAdapter.WithStore(store),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsRegistry(registry),
		)

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("arbor server listening", "addr", cfg.Addr, "tree", treePath, "store", cfg.Store)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("arbor server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (overrides ARBOR_ADDR)")
	serveCmd.Flags().String("store", "", "Action store backend: memory, file, redis or sqlite (overrides ARBOR_STORE)")
}
