// Package main is the entry point for the EduMatch MCP edge gateway.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edumatch/edumatch/internal/config"
	"github.com/edumatch/edumatch/internal/gateway"
	"github.com/edumatch/edumatch/internal/origin"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("EDUMATCH_LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.LoadGateway()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	originClient := origin.New(cfg.OriginURL, cfg.OriginTimeout)
	gw := gateway.New(cfg, originClient, logger)

	httpServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     gw.Router,
		ReadTimeout: 15 * time.Second,
		// No write timeout: event-stream responses stay open as long as
		// the client does.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("EduMatch gateway starting", "port", cfg.Port, "origin", cfg.OriginURL)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("EduMatch gateway stopped")
}
