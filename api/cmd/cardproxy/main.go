package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"cardscan/api/internal/config"
	"cardscan/api/internal/handle"
	"cardscan/api/internal/httpserver"
	"cardscan/api/internal/logging"
	"cardscan/api/internal/ocr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engines, err := ocr.NewEngines(ctx, cfg)
	if err != nil {
		logger.Fatal("init engines", zap.Error(err))
	}
	defer func() { _ = engines.Close() }()

	engine, err := engines.GetEngine(cfg.LLMProvider)
	if err != nil {
		logger.Fatal("select engine", zap.Error(err))
	}

	scanner := ocr.NewScanner(engine, logger)
	h := handle.New(scanner, handle.Options{
		DefaultRegion:  cfg.DefaultRegion,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, logger)

	logger.Info("cardproxy starting",
		zap.String("provider", engine.Name()),
		zap.String("model", engine.GetModel()),
		zap.String("static_dir", cfg.StaticDir),
	)
	if err := httpserver.Run(ctx, ":"+cfg.Port, httpserver.NewRouter(h, cfg.StaticDir, logger), logger); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
