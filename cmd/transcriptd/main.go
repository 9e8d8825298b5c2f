package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/export"
	"github.com/gradpath/transcript-service/internal/extract"
	"github.com/gradpath/transcript-service/internal/llm"
	"github.com/gradpath/transcript-service/internal/llm/openai"
	"github.com/gradpath/transcript-service/internal/parser"
	"github.com/gradpath/transcript-service/internal/pipeline"
	"github.com/gradpath/transcript-service/internal/repository"
	"github.com/gradpath/transcript-service/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.HealthTimeout, logger); err != nil {
		logger.Error("database health check failed", "error", err)
		os.Exit(1)
	}
	if err := repository.Migrate(ctx, pool, logger); err != nil {
		logger.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	transcripts := repository.NewTranscriptRepository(pool, logger)
	jobs := repository.NewParseJobRepository(pool, logger)

	extractor := extract.NewExtractor(extract.Config{Pdftotext: cfg.Extract.Pdftotext}, logger)
	strategy := buildStrategy(cfg, logger)
	processor := pipeline.NewProcessor(logger, extractor, strategy, transcripts, jobs)
	exporter := export.NewService(transcripts, logger)

	srv := server.NewServer(&server.Options{
		Address:        cfg.Server.Addr,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		Pipeline:       processor,
		Transcripts:    transcripts,
		Jobs:           jobs,
		Exporter:       exporter,
		Health: func(ctx context.Context) error {
			return repository.HealthCheck(ctx, pool, cfg.Database.HealthTimeout, logger)
		},
		Logger: logger,
	})

	go func() {
		logger.Info("http server starting", "addr", cfg.Server.Addr, "strategy", processor.Strategy())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("stopped")
}

func buildStrategy(cfg *common.Config, logger *slog.Logger) parser.Strategy {
	if cfg.Strategy == constants.StrategyLLM {
		client := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Seed:        cfg.LLM.Seed,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		return llm.NewStrategy(client, logger)
	}
	return parser.NewRegexStrategy(logger)
}
