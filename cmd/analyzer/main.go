package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"TariffRadar/internal/analyzer"
	"TariffRadar/internal/collector"
	"TariffRadar/internal/config"
	"TariffRadar/internal/events"
	"TariffRadar/internal/recorder"
	"TariffRadar/internal/report"
	"TariffRadar/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("config validation")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	evs, err := events.Load(cfg.EventsFile)
	if err != nil {
		logger.WithError(err).Fatal("load events")
	}
	logger.WithFields(logrus.Fields{"events": len(evs), "symbol": cfg.DataSource.Symbol}).Info("TariffRadar starting")

	// Provider chain: Stooq primary, Yahoo fallback.
	col := collector.NewCollector(logger, cfg.DataSource.MaxAttempts,
		collector.NewStooqFetcher(cfg.Proxy),
		collector.NewYahooFetcher(cfg.Proxy),
	)

	var recorders []recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755); err != nil {
			logger.WithError(err).Fatal("create data dir")
		}
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, cfg.Database.Table, logger)
		if err != nil {
			logger.WithError(err).Fatal("init sqlite recorder")
		}
		defer sr.Close()
		recorders = append(recorders, sr)
	}
	if cfg.Output.CSVPath != "" {
		recorders = append(recorders, recorder.NewCSVRecorder(cfg.Output.CSVPath, logger))
	}
	if len(recorders) == 0 {
		recorders = append(recorders, recorder.NewNoopRecorder())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline := &analyzer.Pipeline{
		Evaluator: analyzer.NewEvaluator(col, logger),
		Events:    evs,
		Symbol:    cfg.DataSource.Symbol,
		Recorders: recorders,
		Logger:    logger,
	}

	run := func() {
		rows, err := pipeline.Run(ctx)
		if err != nil {
			logger.WithError(err).Error("analysis run failed")
		}
		if len(rows) > 0 {
			fmt.Println()
			fmt.Println(report.FormatPreview(rows))
		}
	}

	run()

	if cfg.Schedule.Cron == "" {
		logger.Info("no schedule configured, exiting")
		return
	}

	sched := scheduler.NewScheduler(run, logger)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		logger.WithError(err).Fatal("register schedule")
	}
	sched.Start()
	defer sched.Stop()

	logger.WithField("cron", cfg.Schedule.Cron).Info("TariffRadar is running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
}
