package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/pixgen-api/internal/config"
	"github.com/phrazzld/pixgen-api/internal/platform/cutout"
	"github.com/phrazzld/pixgen-api/internal/platform/gemini"
	"github.com/phrazzld/pixgen-api/internal/platform/logger"
	"github.com/phrazzld/pixgen-api/internal/service"
	"github.com/phrazzld/pixgen-api/internal/task"
)

// application holds the shared dependencies for the server. It is
// constructed once per process and passed by reference to the pieces that
// need it; there are no package-level singletons.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	scheduler *task.Scheduler
	tracker   *service.JobTracker
}

// newApplication loads configuration and wires up all application
// components: logger, background-removal client, Gemini generator, task
// scheduler, and the job tracker.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"model", cfg.Generation.ModelName,
		"queue_delay_seconds", cfg.Generation.QueueDelaySeconds,
		"api_key_present", cfg.Generation.GeminiAPIKey != "")

	remover := cutout.NewClient(cfg.Cutout, &http.Client{Timeout: 60 * time.Second}, log)

	generator, err := gemini.NewImageGenerator(ctx, log, cfg.Generation, remover)
	if err != nil {
		return nil, fmt.Errorf("failed to create image generator: %w", err)
	}

	scheduler := task.NewScheduler(log)

	tracker, err := service.NewJobTracker(
		cfg.Credits,
		time.Duration(cfg.Generation.QueueDelaySeconds)*time.Second,
		scheduler,
		generator,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job tracker: %w", err)
	}

	return &application{
		config:    cfg,
		logger:    log,
		scheduler: scheduler,
		tracker:   tracker,
	}, nil
}

// cleanup releases application resources during shutdown. The scheduler
// stop waits for in-flight generation batches to finish or observe
// cancellation.
func (app *application) cleanup() {
	app.logger.Info("stopping task scheduler")
	app.scheduler.Stop()
}
