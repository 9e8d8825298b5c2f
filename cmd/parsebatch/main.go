// Command parsebatch parses every transcript PDF under a directory and writes
// a .json file next to each PDF. Useful for backfilling or smoke-testing the
// parser against a corpus of transcripts without a running server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/batch"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/extract"
	"github.com/gradpath/transcript-service/internal/llm"
	"github.com/gradpath/transcript-service/internal/llm/openai"
	"github.com/gradpath/transcript-service/internal/parser"
)

func main() {
	rootFlag := flag.String("dir", ".", "directory to scan for transcript PDFs")
	strategyFlag := flag.String("strategy", "regex", "extraction strategy: regex or llm")
	workersFlag := flag.Int("workers", 4, "number of concurrent parses")
	hiddenFlag := flag.Bool("include-hidden", false, "also scan hidden files and directories")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	strategy, err := buildStrategy(*strategyFlag, cfg, logger)
	if err != nil {
		logger.Error("invalid strategy", "strategy", *strategyFlag, "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, scanStats, err := batch.ScanDirectory(*rootFlag, !*hiddenFlag)
	if err != nil {
		logger.Error("scan failed", "dir", *rootFlag, "error", err)
		os.Exit(1)
	}
	logger.Info("scan complete",
		"dir", *rootFlag,
		"scanned", scanStats.Scanned,
		"matched", scanStats.Matched,
		"skipped", scanStats.Skipped,
	)
	if len(paths) == 0 {
		logger.Warn("no transcript PDFs found", "dir", *rootFlag)
		return
	}

	extractor := extract.NewExtractor(extract.Config{Pdftotext: cfg.Extract.Pdftotext}, logger)

	start := time.Now()
	runner := batch.NewRunner(*workersFlag, logger, func(ctx context.Context, path string) error {
		return parseOne(ctx, extractor, strategy, path)
	})
	_, stats := runner.Run(ctx, paths)

	logger.Info("batch complete",
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

func parseOne(ctx context.Context, extractor *extract.Extractor, strategy parser.Strategy, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := extractor.Extract(ctx, data)
	if err != nil {
		return err
	}
	transcript, err := strategy.Parse(ctx, res.Text)
	if err != nil {
		return err
	}
	transcript.UploadDate = time.Now().UTC()

	out, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(jsonPath(path), out, 0o644)
}

func jsonPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i > strings.LastIndexByte(path, '/') {
		return path[:i] + ".json"
	}
	return path + ".json"
}

func buildStrategy(name string, cfg *common.Config, logger *slog.Logger) (parser.Strategy, error) {
	switch constants.StrategyName(name) {
	case constants.StrategyRegex:
		return parser.NewRegexStrategy(logger), nil
	case constants.StrategyLLM:
		if cfg.LLM.APIKey == "" {
			return nil, common.NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required for -strategy=llm", common.ErrInvalidInput)
		}
		client := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Seed:        cfg.LLM.Seed,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		return llm.NewStrategy(client, logger), nil
	default:
		return nil, common.NewAppError("CONFIG_ERROR", "strategy must be one of: regex, llm", common.ErrInvalidInput)
	}
}
