package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lendtrack/internal/config"
	apphttp "lendtrack/internal/http"
	"lendtrack/internal/ledger"
	memstore "lendtrack/internal/ledger/memory"
	xlsxstore "lendtrack/internal/ledger/xlsx"
	applog "lendtrack/internal/log"
)

func main() {
	// .env is optional in production
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.New(applog.ParseLevel(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	storeLog := logger.WithComponent("ledger")
	var store ledger.Store
	switch cfg.DataBackend {
	case "memory":
		store = memstore.New()
		storeLog.Info("Initialized memory backend", "backend", cfg.DataBackend)
	default:
		s, err := xlsxstore.New(cfg.StoreDir)
		if err != nil {
			storeLog.Error("Failed to initialize ledger store", "error", err, "dir", cfg.StoreDir)
			os.Exit(1)
		}
		store = s
		storeLog.Info("Initialized xlsx backend", "backend", cfg.DataBackend, "dir", cfg.StoreDir)
	}

	srv := apphttp.NewServer(":"+cfg.Port, store)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	httpLog := logger.WithComponent("http")

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		httpLog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			httpLog.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	httpLog.Info("Starting lendtrack server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		httpLog.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	httpLog.Info("Server stopped gracefully")
}
