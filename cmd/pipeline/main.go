package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/statlake/pitchload/internal/app"
	"github.com/statlake/pitchload/internal/config"
	"github.com/statlake/pitchload/internal/observability"
	"github.com/statlake/pitchload/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := 0
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pipeline failed", "error", err)
		exitCode = 1
	}

	if err := stopProfiler(); err != nil {
		logger.Warn("stop profiler", "error", err)
	}
	if err := shutdownUptrace(context.Background()); err != nil {
		logger.Warn("shutdown uptrace", "error", err)
	}

	_ = logger.Sync()
	os.Exit(exitCode)
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	pipeline, err := app.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	logger.Info("pipeline starting",
		"data_root", cfg.DataRoot,
		"lakehouse_root", cfg.LakehouseRoot,
		"store_path", cfg.StorePath,
		"workers", cfg.Workers,
		"partition_scheme", string(cfg.PartitionScheme),
		"acwr_variant", string(cfg.ACWRVariant),
		"minutes_source", string(cfg.MinutesSource),
	)

	return pipeline.Run(ctx)
}
