// Package main is the entry point for the hemp advocacy API server.
//
// main stays minimal: load configuration, build the external clients
// (logger, SES mailer), hand everything to internal/server, and block until
// shutdown. All actual logic lives in the imported packages.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dontbanhemp/action-server/internal/config"
	"github.com/dontbanhemp/action-server/internal/mailer"
	"github.com/dontbanhemp/action-server/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Local development reads secrets from a .env file; in production the
	// environment is set by the deployment and no file exists.
	if err := godotenv.Load(); err == nil {
		logger.Info("loaded environment from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The SQLite file lives in a subdirectory that may not exist yet.
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	sesMailer, err := mailer.NewSES(context.Background(), cfg.AWSRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
	if err != nil {
		logger.Error("failed to create SES mailer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, sesMailer, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
