package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/morsel/internal/config"
	"github.com/verte-zerg/morsel/internal/server"
)

const (
	defaultAddr         = "127.0.0.1:8080"
	defaultServeTimeout = 10 * time.Second
	shutdownGrace       = 5 * time.Second
)

var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve decode and encode over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	addDecodeFlags(cmd)
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Serve.Addr)

	cfg, err := loadDecodeConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultServeTimeout
	}
	ranker, table, err := buildRanker(cfg)
	if err != nil {
		return err
	}

	srv := &server.Server{
		Alphabet:  ranker.Alphabet,
		Segmenter: ranker.Segmenter,
		Splitter:  ranker.Splitter,
		Mode:      ranker.Mode,
		Workers:   ranker.Workers,
		Timeout:   cfg.Timeout,
		Logf: func(format string, args ...any) {
			logErrf(time.Now().Format(time.RFC3339)+" "+format+"\n", args...)
		},
	}
	httpServer := &http.Server{
		Addr:              serveAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logErrf("Serving %s (%d words, %s) on http://%s\n", cfg.Lang, table.Len(), ranker.Mode, serveAddr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logErrln("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
