package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/entity"
	"github.com/gradpath/transcript-service/internal/extract"
	"github.com/gradpath/transcript-service/internal/parser"
	"github.com/gradpath/transcript-service/internal/repository"
)

// Processor coordinates the two pipeline stages: text extraction, then
// strategy parse, with the parse_jobs audit row advanced at each step.
type Processor struct {
	logger      *slog.Logger
	extractor   extract.TextExtractor
	strategy    parser.Strategy
	transcripts repository.TranscriptRepository
	jobs        repository.ParseJobRepository
}

func NewProcessor(
	logger *slog.Logger,
	extractor extract.TextExtractor,
	strategy parser.Strategy,
	transcripts repository.TranscriptRepository,
	jobs repository.ParseJobRepository,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:      logger,
		extractor:   extractor,
		strategy:    strategy,
		transcripts: transcripts,
		jobs:        jobs,
	}
}

// Strategy exposes the configured parse strategy, mainly for logging.
func (p *Processor) Strategy() constants.StrategyName {
	return p.strategy.Name()
}

// ProcessUpload runs one transcript PDF through extract -> parse -> store and
// returns the stored transcript. The audit job is returned even on failure so
// callers can surface the job id.
func (p *Processor) ProcessUpload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*entity.Transcript, *entity.ParseJob, error) {
	if !constants.IsPDFContentType(contentType) && !constants.AllowedExt(filepath.Ext(filename)) {
		p.logger.Warn("upload rejected", "user_id", userID, "filename", filename, "content_type", contentType)
		return nil, nil, common.NewAppError("UNSUPPORTED_MEDIA", "only PDF transcripts are accepted", common.ErrUnsupportedMedia)
	}

	job, err := p.jobs.Start(ctx, userID, filename, len(data), p.strategy.Name())
	if err != nil {
		return nil, nil, err
	}
	if err := p.jobs.MarkRunning(ctx, job.ID); err != nil {
		return nil, job, err
	}

	start := time.Now()
	text, err := p.extractor.Extract(ctx, data)
	if err != nil {
		p.logger.Error("pipeline.extract.failed", "job_id", job.ID, "err", err)
		_ = p.jobs.MarkFailed(ctx, job.ID, err.Error())
		return nil, job, err
	}
	if err := p.jobs.MarkTextOK(ctx, job.ID, text.Method, text.Pages, text.Confidence); err != nil {
		return nil, job, err
	}
	p.logger.Info("pipeline.extract.ok",
		"job_id", job.ID,
		"method", text.Method,
		"pages", text.Pages,
		"confidence", text.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	var (
		transcript *entity.Transcript
		rawOutput  []byte
	)
	if rs, ok := p.strategy.(parser.RawStrategy); ok {
		transcript, rawOutput, err = rs.ParseRequest(ctx, parser.Request{
			Text:         text.Text,
			FilenameHint: filename,
			Confidence:   text.Confidence,
		})
	} else {
		transcript, err = p.strategy.Parse(ctx, text.Text)
	}
	if len(rawOutput) > 0 {
		if rerr := p.jobs.SetRawOutput(ctx, job.ID, rawOutput); rerr != nil {
			p.logger.Warn("pipeline.raw_output.store_failed", "job_id", job.ID, "err", rerr)
		}
	}
	if err != nil {
		p.logger.Error("pipeline.parse.failed", "job_id", job.ID, "strategy", p.strategy.Name(), "err", err)
		_ = p.jobs.MarkFailed(ctx, job.ID, err.Error())
		return nil, job, err
	}

	transcript.UserID = userID
	transcript.UploadDate = time.Now().UTC()

	if err := p.transcripts.UpsertForUser(ctx, transcript); err != nil {
		p.logger.Error("pipeline.store.failed", "job_id", job.ID, "err", err)
		_ = p.jobs.MarkFailed(ctx, job.ID, err.Error())
		return nil, job, err
	}
	if err := p.jobs.MarkParseOK(ctx, job.ID); err != nil {
		return transcript, job, err
	}

	p.logger.Info("pipeline.parse.ok",
		"job_id", job.ID,
		"user_id", userID,
		"strategy", p.strategy.Name(),
		"courses", len(transcript.Courses),
		"totals_parsed", transcript.OverallTotals.Parsed,
	)
	job.Status = constants.JobStatusParseOK
	return transcript, job, nil
}
