package llm

import (
	"context"
	"log/slog"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/common"
	"github.com/gradpath/transcript-service/internal/entity"
	"github.com/gradpath/transcript-service/internal/parser"
)

// Strategy adapts a TranscriptExtractor to the parsing strategy contract.
// Unlike the regex path, model failures are hard errors: a response that
// cannot be validated is worse than no response, so nothing partial is kept.
type Strategy struct {
	extractor TranscriptExtractor
	logger    *slog.Logger
}

var _ parser.RawStrategy = (*Strategy)(nil)

func NewStrategy(extractor TranscriptExtractor, logger *slog.Logger) *Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Strategy{extractor: extractor, logger: logger}
}

func (s *Strategy) Name() constants.StrategyName {
	return constants.StrategyLLM
}

func (s *Strategy) Parse(ctx context.Context, text string) (*entity.Transcript, error) {
	transcript, _, err := s.ParseRequest(ctx, parser.Request{Text: text})
	return transcript, err
}

// ParseRequest runs the model extraction and returns its raw JSON alongside
// the assembled transcript so callers can persist it on the audit trail.
func (s *Strategy) ParseRequest(ctx context.Context, req parser.Request) (*entity.Transcript, []byte, error) {
	if req.Confidence > 0 && req.Confidence < 0.5 {
		s.logger.Warn("llm.strategy.low_confidence_text",
			"confidence", req.Confidence, "filename", req.FilenameHint)
	}
	doc, raw, err := s.extractor.ExtractTranscript(ctx, ExtractRequest{
		Text:           req.Text,
		FilenameHint:   req.FilenameHint,
		TextConfidence: req.Confidence,
	})
	if err != nil {
		s.logger.Error("llm.strategy.extract_failed", "error", err, "raw_bytes", len(raw))
		return nil, raw, common.NewAppError("LLM_EXTRACT_FAILED", "model extraction failed", err)
	}
	return s.assemble(doc), raw, nil
}

func (s *Strategy) assemble(doc TranscriptDocument) *entity.Transcript {
	courses := make([]entity.Course, 0, len(doc.Courses))
	for _, c := range doc.Courses {
		grade := constants.NormalizeGrade(c.Grade)
		status := constants.CourseCompleted
		quality := c.QualityPoints
		if grade == constants.GradeInProgress {
			status = constants.CourseInProgress
			quality = 0
		}
		courses = append(courses, entity.Course{
			Term:          c.Term,
			Subject:       c.Subject,
			CourseCode:    c.CourseCode,
			Level:         c.Level,
			Title:         c.Title,
			Grade:         grade,
			CreditHours:   c.CreditHours,
			QualityPoints: quality,
			Status:        status,
		})
	}

	overall := entity.Totals{
		AttemptHours:  doc.OverallTotals.AttemptHours,
		PassedHours:   doc.OverallTotals.PassedHours,
		EarnedHours:   doc.OverallTotals.EarnedHours,
		GPAHours:      doc.OverallTotals.GPAHours,
		QualityPoints: doc.OverallTotals.QualityPoints,
		GPA:           doc.OverallTotals.GPA,
		Parsed:        true,
	}

	info := entity.StudentInfo{
		StudentID:     doc.StudentInfo.StudentID,
		Name:          doc.StudentInfo.Name,
		Program:       doc.StudentInfo.Program,
		College:       doc.StudentInfo.College,
		Major:         doc.StudentInfo.Major,
		CumulativeGPA: doc.StudentInfo.CumulativeGPA,
	}
	if info.CumulativeGPA == 0 {
		info.CumulativeGPA = overall.GPA
	}

	return &entity.Transcript{
		StudentInfo:   info,
		Courses:       courses,
		OverallTotals: overall,
		Source:        constants.StrategyLLM,
	}
}
