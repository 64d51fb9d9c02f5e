package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/aflondonor-afk/horario-app/internal/application"
	"github.com/aflondonor-afk/horario-app/internal/config"
	"github.com/aflondonor-afk/horario-app/internal/feed"
	httptransport "github.com/aflondonor-afk/horario-app/internal/http"
	"github.com/aflondonor-afk/horario-app/internal/jobs"
	"github.com/aflondonor-afk/horario-app/internal/persistence"
	"github.com/aflondonor-afk/horario-app/internal/persistence/sqlite"
	"github.com/aflondonor-afk/horario-app/internal/reminder"
)

func main() {
	if err := run(); err != nil {
		slog.Error("service terminated", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if closeErr := storage.Close(); closeErr != nil {
			logger.Error("failed to close storage", "error", closeErr)
		}
	}()
	if err := storage.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate storage: %w", err)
	}

	idGenerator := func() string { return uuid.NewString() }

	authService := application.NewAuthService(storage, storage, idGenerator, idGenerator, time.Now, logger)
	shiftService := application.NewShiftService(storage, idGenerator, time.Now, logger)
	logService := application.NewOperationalLogService(storage, idGenerator, time.Now, logger)

	feedClient := feed.NewClient(cfg.FeedSource)
	eventSource := application.EventSourceFunc(feedClient.Fetch)

	statusCache := application.NewStatusCache()
	gridService := application.NewGridService(eventSource, application.NewCachedStatusProvider(statusCache), storage, time.Now, logger)

	jobs.StartLogPoller(ctx, cfg.LogPollInterval, logService, statusCache, logger)

	reminderSource := application.NewReminderSource(eventSource, storage, time.Now)
	monitor := reminder.NewMonitor(
		reminderSource,
		logService,
		reminder.NewLogNotifier(logger),
		reminder.NewStaticGate(true),
		cfg.ReminderInterval,
		time.Now,
		logger,
	)
	go monitor.Run(ctx)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     httptransport.NewAuthHandler(authService, logger),
		Shifts:   httptransport.NewShiftHandler(shiftService, logger),
		Logs:     httptransport.NewLogHandler(&statusRecorder{logs: logService, cache: statusCache}, logger),
		Grid:     httptransport.NewGridHandler(gridService, logger),
		Sessions: authService,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	logger.Info("service stopped")
	return nil
}

// statusRecorder pushes successful status writes into the cache so the
// supervisor grid sees them before the next poll cycle.
type statusRecorder struct {
	logs  *application.OperationalLogService
	cache *application.StatusCache
}

func (s *statusRecorder) TodayLogs(ctx context.Context) ([]application.OperationalLog, error) {
	return s.logs.TodayLogs(ctx)
}

func (s *statusRecorder) SetStatus(ctx context.Context, eventID string, status persistence.Status, userID string) (application.OperationalLog, error) {
	log, err := s.logs.SetStatus(ctx, eventID, status, userID)
	if err == nil {
		s.cache.Set(log.EventID, log.Status, log.Timestamp)
	}
	return log, err
}

func (s *statusRecorder) CycleStatus(ctx context.Context, eventID, userID string) (application.OperationalLog, error) {
	log, err := s.logs.CycleStatus(ctx, eventID, userID)
	if err == nil {
		s.cache.Set(log.EventID, log.Status, log.Timestamp)
	}
	return log, err
}
