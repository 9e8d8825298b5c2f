package parser

import (
	"context"
	"log/slog"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/entity"
)

// RegexStrategy is the heuristic extraction pipeline: four independent
// section parsers whose partial records are assembled into one Transcript.
// It always produces a Transcript — sub-parser misses degrade to empty or
// unparsed values, never to an error.
type RegexStrategy struct {
	logger *slog.Logger
}

var _ Strategy = (*RegexStrategy)(nil)

func NewRegexStrategy(logger *slog.Logger) *RegexStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &RegexStrategy{logger: logger}
}

func (s *RegexStrategy) Name() constants.StrategyName {
	return constants.StrategyRegex
}

// Parse assembles the four partial records. The returned error is always nil;
// it exists to satisfy the Strategy contract shared with the LLM pipeline.
func (s *RegexStrategy) Parse(_ context.Context, text string) (*entity.Transcript, error) {
	info := ParseStudentInfo(text)
	courses := ParseCourses(text)
	termTotals := ParseTermTotals(text)
	overall := ParseOverallTotals(text)

	// The header rarely states a cumulative GPA directly; derive it from the
	// last column of the overall totals line when that line parsed.
	if info.CumulativeGPA == 0 && overall.Parsed {
		info.CumulativeGPA = overall.GPA
	}

	if !overall.Parsed {
		s.logger.Warn("overall totals unparsed, storing explicit unparsed record")
	}
	if len(courses) == 0 {
		s.logger.Warn("no course rows matched", "text_bytes", len(text))
	}

	return &entity.Transcript{
		StudentInfo:   info,
		Courses:       courses,
		TermTotals:    termTotals,
		OverallTotals: overall,
		Source:        constants.StrategyRegex,
	}, nil
}
