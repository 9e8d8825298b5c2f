// Command parsefile parses a local transcript PDF and prints the assembled
// transcript JSON to stdout. It never touches the database, which makes it
// handy for checking a PDF before uploading it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/extract"
	"github.com/gradpath/transcript-service/internal/llm"
	"github.com/gradpath/transcript-service/internal/llm/openai"
	"github.com/gradpath/transcript-service/internal/parser"
)

func main() {
	strategyFlag := flag.String("strategy", "regex", "extraction strategy: regex or llm")
	timeoutFlag := flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "parsefile [-strategy=regex|llm] <transcript.pdf>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()

	var strategy parser.Strategy
	switch constants.StrategyName(*strategyFlag) {
	case constants.StrategyRegex:
		strategy = parser.NewRegexStrategy(logger)
	case constants.StrategyLLM:
		if cfg.LLM.APIKey == "" {
			logger.Error("OPENAI_API_KEY required for -strategy=llm")
			os.Exit(1)
		}
		client := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Seed:        cfg.LLM.Seed,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		strategy = llm.NewStrategy(client, logger)
	default:
		logger.Error("unknown strategy", "strategy", *strategyFlag)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	extractor := extract.NewExtractor(extract.Config{Pdftotext: cfg.Extract.Pdftotext}, logger)
	res, err := extractor.Extract(ctx, data)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	transcript, err := strategy.Parse(ctx, res.Text)
	if err != nil {
		logger.Error("parse failed", "path", path, "strategy", strategy.Name(), "error", err)
		os.Exit(1)
	}
	transcript.UploadDate = time.Now().UTC()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transcript); err != nil {
		logger.Error("encode transcript", "error", err)
		os.Exit(1)
	}
}
