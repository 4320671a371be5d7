package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pricing-ai-gateway/internal/config"
	"pricing-ai-gateway/internal/logging"
	"pricing-ai-gateway/internal/server"
	"pricing-ai-gateway/internal/upstream"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("gateway exited", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// dotenv 파일 로드 (Production 환경이 아닌 경우)
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error loading .env file: %w", err)
		} else if err != nil {
			slog.Warn("no .env file found, using process environment")
		}
	}

	fs := flag.NewFlagSet("pricing-ai-gateway", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(logger)

	client := upstream.New(cfg.PricingAPIURL, cfg.PricingInternalKey, cfg.UpstreamTimeout, logger)

	app, err := server.New(cfg, client, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		// 서버 시작
		logger.Info("pricing ai gateway starting", "config", *cfg)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
