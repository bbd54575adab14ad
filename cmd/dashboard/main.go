package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/app"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	// A missing .env file is fine; the process environment is used as is.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("tinylink-dashboard", httplog.Options{
		LogLevel: logLevel(cfg.Env),
		JSON:     cfg.Env == config.EnvProd,
		Concise:  cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
		QuietDownRoutes: []string{"/healthz"},
	})

	return app.Run(ctx, cfg, logger)
}

func logLevel(env string) slog.Level {
	if env == config.EnvDev {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
