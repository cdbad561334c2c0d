package main

import (
	"context"
	"errors"
	"fmt"
	"forum-lab/auth"
	httpserver "forum-lab/infrastructure/http"
	"forum-lab/infrastructure/storage"
	"forum-lab/internal"
	"forum-lab/moderation"
	"forum-lab/observability"
	"forum-lab/runtime"
	"forum-lab/runtime/workers"
	"forum-lab/services"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const shutdownTimeout = 10 * time.Second

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Forum terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Every defer (database, index, debug server) runs before the exit code reaches main.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Database (BadgerDB) and full-text index (Bluge)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Releases the directory lock and flushes the memtables.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = blugeWriter.Close()
	}()

	// 3. Metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(promRegistry)
	monitoring := observability.NewMonitoringManager(logger, metrics)

	// 4. Repositories
	postRepository := storage.NewPostRepository(db, blugeWriter, logger, config.LimitPosts)
	roomRepository := storage.NewRoomRepository(db)
	memberRepository := storage.NewMemberRepository(db)
	userRepository := storage.NewUserRepository(db)
	preferenceRepository := storage.NewPreferenceRepository(db)
	notificationRepository := storage.NewNotificationRepository(db)
	bannedWordRepository := storage.NewBannedWordRepository(db)

	// 5. Word filter: embedded lists plus the words kept in Badger
	filter, err := buildWordFilter(logger, bannedWordRepository, config.BannedWords, charReplacement)
	if err != nil {
		return exitConfig, err
	}

	// 6. Setup Supervision & Orchestration
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	registry := runtime.NewRegistry(logger, config.DeliveryTimeout, metrics)
	notifier := runtime.NewNotifier(logger, preferenceRepository, notificationRepository, metrics,
		config.DeduplicateReplyNotifications)
	orchestrator := runtime.NewOrchestrator(logger, runtime.Settings{
		NumberOfWorkers:     config.NumberOfWorkers,
		BufferSize:          config.BufferSize,
		NotificationTimeout: config.NotificationTimeout,
		HeartbeatInterval:   config.HeartbeatInterval,
		MetricInterval:      config.MetricInterval,
		MaxContentLength:    config.MaxContentLength,
	}, supervisor, registry, notifier, monitoring,
		postRepository, roomRepository, userRepository, filter)

	// 7. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 2)

	// 8. Start the Engine (notification pool, heartbeat, telemetry)
	go func() {
		logger.Info("Starting orchestrator...")
		if err := orchestrator.Start(ctx); err != nil {
			errChan <- fmt.Errorf("orchestrator error: %w", err)
		}
	}()

	// 9. HTTP Server Setup
	issuer := auth.NewTokenIssuer(config.AuthSecret, config.AuthTokenDuration)
	forumService := services.NewForumService(orchestrator, roomRepository, memberRepository,
		preferenceRepository, postRepository, userRepository, notificationRepository)
	router := httpserver.NewRouter(httpserver.Dependencies{
		Log:                  logger,
		Auth:                 services.NewAuthService(userRepository, issuer),
		Forum:                forumService,
		Notifications:        services.NewNotificationService(notificationRepository),
		Issuer:               issuer,
		Metrics:              metrics,
		Gatherer:             promRegistry,
		ConnectionBufferSize: config.ConnectionBufferSize,
	})
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &stdhttp.Server{
		Addr:              address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if logger.Enabled(ctx, slog.LevelDebug) {
		debugServer := internal.StartDebugServer(logger, db, config.DebugPort, func() map[string]any {
			return map[string]any{
				"monitoring": monitoring.GetLatest(),
				"channels":   registry.Channels(),
				"live":       registry.Len(),
			}
		})
		logger.Info("Debug inspector available", "url", fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
		defer func() { _ = debugServer.Close() }()
	}

	// 10. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		_ = server.Close()
		orchestrator.Stop()
		return exitRuntime, err
	}

	// 11. Final Cleanup (Graceful Shutdown)
	// Event streams only end when their client leaves, so the deadline bounds the wait.
	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server did not stop in time", "error", err)
	}
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

func buildWordFilter(
	logger *slog.Logger,
	repository storage.BannedWordRepository,
	configured []string,
	charReplacement rune) (*moderation.WordFilter, error) {
	embedded, err := runtime.DefaultCensoredLoader().LoadAll("censored")
	if err != nil {
		return nil, fmt.Errorf("load embedded banned words: %w", err)
	}
	if len(configured) > 0 {
		if err = repository.AddWords(configured); err != nil {
			return nil, fmt.Errorf("store banned words: %w", err)
		}
	}
	stored, err := repository.ListWords()
	if err != nil {
		return nil, fmt.Errorf("list banned words: %w", err)
	}
	words := lo.Uniq(append(embedded.Words, stored...))
	logger.Info("Banned words loaded", "lists", embedded.Lists, "words", len(words))
	return moderation.NewWordFilter(words, charReplacement, logger)
}
