// Package main runs a local bubbly-todo server backed by SQLite.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hy4ri/bubbly-todo/internal/devserver"
	"github.com/hy4ri/bubbly-todo/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr     string
		dsn      string
		noSeed   bool
		logLevel string
	)

	flag.StringVar(&addr, "addr", ":8084", "Listen address")
	flag.StringVar(&dsn, "db", devserver.MemoryDSN, "SQLite database file")
	flag.BoolVar(&noSeed, "no-seed", false, "Do not insert sample data")
	flag.StringVar(&logLevel, "log-level", "info", "Log level")
	flag.Parse()

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level)

	store, err := devserver.OpenStore(dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !noSeed {
		if err := store.Seed(ctx); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           devserver.NewRouter(devserver.NewServer(store, logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("db", dsn).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
