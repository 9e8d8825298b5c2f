package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gradpath/transcript-service/internal/common"
)

// Config for the text extractor.
type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

// Extractor implements TextExtractor. It reads the PDF's embedded text layer
// first and falls back to the pdftotext binary when the layer is missing or
// the library chokes on the file.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

var _ TextExtractor = (*Extractor)(nil)

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract converts a PDF buffer into one linear text stream. A failure of
// both paths is fatal to the upload; there is no partial result.
func (e *Extractor) Extract(ctx context.Context, data []byte) (TextExtractionResult, error) {
	start := time.Now()
	if len(data) == 0 {
		return TextExtractionResult{}, common.NewAppError("EXTRACT_EMPTY", "empty upload buffer", common.ErrExtraction)
	}

	text, pages, warns, err := pdfLibText(data)
	method := "pdf-lib"
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			e.logger.Warn("pdf text layer unreadable, falling back to pdftotext", "error", err)
			warns = append(warns, err.Error())
		} else {
			e.logger.Warn("pdf text layer empty, falling back to pdftotext", "pages", pages)
		}
		var fbWarns []string
		text, pages, fbWarns, err = e.pdftotextText(ctx, data)
		warns = append(warns, fbWarns...)
		method = "pdftotext"
		if err != nil {
			return TextExtractionResult{Warnings: warns},
				common.NewAppError("EXTRACT_FAILED",
					fmt.Sprintf("unable to extract text from PDF (%d bytes)", len(data)),
					common.WrapError(common.ErrExtraction, err.Error()))
		}
	}

	res := TextExtractionResult{
		Text:       text,
		Pages:      pages,
		Method:     method,
		Duration:   time.Since(start),
		Warnings:   warns,
		Confidence: heuristicConfidence(text),
	}
	e.logger.Debug("text extraction ok",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
