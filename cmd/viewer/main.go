package main

import (
	"context"
	"fmt"
	"forum-lab/internal"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	DebugPort      int    `env:"DEBUG_PORT,default=8081"`
	LogLevel       string `env:"LOG_LEVEL,default=INFO"`
}

// The viewer serves the debug inspector over a store without running the forum.
func main() {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(2)
	}
	logger := logs.GetLoggerFromString(config.LogLevel)

	// BypassLockGuard allows opening while the forum process holds the lock
	opts := badger.DefaultOptions(config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(opts)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	started := time.Now().UTC()
	server := internal.StartDebugServer(logger, db, config.DebugPort, func() map[string]any {
		return map[string]any{
			"status": "Viewer Mode (Read-Only)",
			"uptime": time.Since(started).Round(time.Second).String(),
		}
	})
	logger.Info("Viewer started", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}
