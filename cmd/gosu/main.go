package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Lekuruu/gosu/internal/config"
	"github.com/Lekuruu/gosu/internal/gosu"
	"github.com/Lekuruu/gosu/internal/metrics"
)

const DefaultConfigPath = "config/gosu.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfgPath := DefaultConfigPath
	if p := os.Getenv("GOSU_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := io.Writer(os.Stdout)
	if cfg.DisableLogging {
		out = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("gosu starting",
		"server", cfg.Server,
		"transport", cfg.Transport.Protocol,
		"tournament", cfg.Tournament)

	game := gosu.New(cfg, slog.Default())

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		server := &http.Server{Addr: cfg.Metrics.BindAddress, Handler: metrics.Handler()}
		g.Go(func() error {
			slog.Info("starting metrics listener", "addr", cfg.Metrics.BindAddress)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics listener: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			return server.Close()
		})
	}

	g.Go(func() error {
		// Stop the metrics listener once the session is gone for good.
		defer cancel()
		if err := game.Run(gctx); err != nil {
			return fmt.Errorf("session: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

// parseLogLevel converts a string log level to slog.Level, defaulting to
// Info.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
