package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: PDF bytes -> linear text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (TextExtractionResult, error)
}

// TextExtractionResult carries the linear text stream plus extraction
// metadata used for the job audit trail.
type TextExtractionResult struct {
	Text       string
	Pages      int
	Method     string // "pdf-lib" | "pdftotext"
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}
