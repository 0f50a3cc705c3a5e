// CLAUDE:SUMMARY Entry point for footerd: serves a static site with the shared footer mounted into every HTML page.
// Command footerd serves a static site and mounts the shared footer into
// every HTML page it serves.
//
// Usage:
//
//	footerd -config footerd.yaml
//	FOOTERD_STATIC_DIR=site FOOTER_FRAGMENT=https://cdn.example/footer.html footerd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazyhaar/footer/page"
)

func main() {
	configPath := flag.String("config", "", "path to footerd.yaml config file")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	cfg, err := page.LoadConfig(*configPath)
	if err != nil {
		slog.Error("footerd: config", "error", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, cfg); err != nil {
		logger.Error("footerd: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, cfg *page.Config) error {
	info, err := os.Stat(cfg.StaticDir)
	if err != nil {
		return fmt.Errorf("static dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("static dir: %s is not a directory", cfg.StaticDir)
	}

	h := page.NewHandler(os.DirFS(cfg.StaticDir), &cfg.Footer,
		page.WithLogger(logger),
		page.WithPublicURL(cfg.PublicURL),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("footerd: listening",
			"addr", cfg.Addr, "static_dir", cfg.StaticDir, "fragment", cfg.Footer.Fragment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("footerd: stopped")
	return nil
}
