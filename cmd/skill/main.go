package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/spf13/pflag"

	"factskill/internal/adapters/httpapi"
	"factskill/internal/app"
	"factskill/internal/config"
)

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level (overrides LOG_LEVEL)")
	addr := cli.StringP("addr", "a", "", "Listen address (overrides HTTP_ADDR)")
	cli.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	if cli.CommandLine.Changed("log") {
		cfg.LogLevel = *logLevel
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("booting up")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to wire skill", "err", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := httpapi.NewServer(httpapi.Options{
		Addr:            cfg.HTTPAddr,
		ReadTimeout:     cfg.HTTPReadTimeout,
		WriteTimeout:    cfg.HTTPWriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, a.Skill, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped with error", "err", err)
		a.Close()
		os.Exit(1)
	}
}
