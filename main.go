package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"sagrada/internal/archive"
	"sagrada/internal/config"
	"sagrada/internal/server"
)

//go:embed web/static
var static embed.FS

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	port := flag.Int("port", cfg.Port, "server port")
	flag.Parse()
	cfg.Port = *port
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.LogDev)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var store server.ResultStore
	if cfg.ArchivePath != "" {
		s, err := archive.Open(cfg.ArchivePath)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		store = s
		log.Info("results archive enabled", zap.String("path", cfg.ArchivePath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, static, store, log)
	return srv.Start(ctx)
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
