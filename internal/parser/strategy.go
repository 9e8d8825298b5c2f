package parser

import (
	"context"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/entity"
)

// Strategy turns one linear transcript text stream into a structured
// Transcript. Implementations are interchangeable: the regex pipeline in this
// package and the LLM-delegated extractor both satisfy it.
type Strategy interface {
	Name() constants.StrategyName
	Parse(ctx context.Context, text string) (*entity.Transcript, error)
}

// Request carries the extracted text plus upload metadata. The regex pipeline
// reads only Text; the LLM strategy threads the filename hint and extraction
// confidence into its prompt and logs.
type Request struct {
	Text         string
	FilenameHint string
	Confidence   float32
}

// RawStrategy is satisfied by strategies that produce a raw intermediate
// payload worth keeping on the parse job, such as the model's JSON reply.
// Raw output is returned on failure too; a bad payload is exactly the one
// that needs diagnosing.
type RawStrategy interface {
	Strategy
	ParseRequest(ctx context.Context, req Request) (*entity.Transcript, []byte, error)
}
