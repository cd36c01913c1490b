package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/vancomm/quantum-mines/internal/app"
	"github.com/vancomm/quantum-mines/internal/config"
	"github.com/vancomm/quantum-mines/internal/mines"
)

var configPath string

func init() {
	const usage = "config file path (.yaml, .yml or .json)"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.Development() {
		return slog.New(
			tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
		)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		if err := config.ReadConfig(configPath, &cfg); err != nil {
			slog.Error("unable to read config", "error", err)
			os.Exit(1)
		}
	}

	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}
	if level, err := cfg.LogLevel(); err == nil {
		mines.Log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting up",
		slog.String("mode", cfg.Mode),
		slog.String("base path", config.BasePath()),
	)

	if err := app.New(logger, cfg).Start(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
