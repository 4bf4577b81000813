package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	kustoconfig "github.com/faridmehrhesam/kusto-language/internal/config"
	"github.com/faridmehrhesam/kusto-language/internal/diag"
	"github.com/faridmehrhesam/kusto-language/service/httpapi"
	"github.com/faridmehrhesam/kusto-language/service/livestream"
	"github.com/faridmehrhesam/kusto-language/service/lspserver"
	"github.com/faridmehrhesam/kusto-language/service/parsecache"
)

func newServeCommand() *cobra.Command {
	var lsp bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (or, with --lsp, the LSP server over stdio instead)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(lsp, verbose)
		},
	}

	cmd.Flags().BoolVar(&lsp, "lsp", false, "run the LSP server over stdio instead of the HTTP API")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable development-mode logging")
	return cmd
}

func runServe(lsp bool, verbose bool) error {
	logger, err := diag.New(verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	if lsp {
		srv := lspserver.NewServer(logger)
		color.New(color.FgCyan).Println("kusto lsp server listening on stdio")
		return srv.Run(context.Background())
	}

	cfg, err := kustoconfig.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store := parsecache.NewMemoryStore(time.Duration(cfg.Cache.TTLHours) * time.Hour)
	auth := httpapi.NewAuthService(cfg.HTTP.JWTSecret, 24*time.Hour)

	api := httpapi.NewServer(auth, store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	hub := livestream.NewHub(ctx)
	go hub.Run()
	streamUpgrader := livestream.NewUpgrader(hub)

	mux := http.NewServeMux()
	mux.Handle("/v1/", api)
	mux.Handle("/v1/stream", streamUpgrader)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		color.New(color.FgCyan).Printf("kusto http api listening on %s\n", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		cancel()
		return err
	case <-sigCh:
		logger.Info("shutting down")
	}

	cancel()
	hub.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
