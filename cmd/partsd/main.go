// Package main is the entry point for the partsd server.
//
// partsd serves a spare-parts CSV export as a read-mostly lookup API: the
// file is loaded into an in-memory snapshot at startup and queried through
// filtering, sorting, and pagination endpoints. The snapshot is replaced
// wholesale on reload, either on demand (POST /reload) or automatically
// when the source file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/partsd/partsd/internal/catalog"
	"github.com/partsd/partsd/internal/config"
	"github.com/partsd/partsd/internal/server"
)

const version = "1.0.0"

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "partsd: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	addr := flag.String("addr", "", "Listen address, overrides the config file")
	source := flag.String("source", "", "Path to the CSV source, overrides the config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the config file")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.SetDefault(initLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore()
	loader := catalog.NewLoader(store, cfg.Source)
	// The initial load is fatal: without a dataset there is nothing to serve.
	rows, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}
	slog.InfoContext(ctx, "Initial dataset ready", "rows", rows)

	handler, cleanup := server.NewRouter(store, loader, cfg, version)
	defer cleanup()
	httpServer := &http.Server{
		Addr:        cfg.Addr,
		Handler:     handler,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.InfoContext(gctx, "Starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	if cfg.Watch {
		g.Go(func() error {
			err := catalog.WatchSource(gctx, loader, cfg.WatchDebounce.Std())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Server stopped")
	return nil
}

// initLogger builds the structured logger: colored tint output on a TTY,
// plain text otherwise.
func initLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}
