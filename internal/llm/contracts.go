package llm

import "context"

// ExtractRequest carries everything the model needs to structure one
// transcript's text layer.
type ExtractRequest struct {
	Text         string
	FilenameHint string

	// TextConfidence is the extraction-stage heuristic score (0..1). Low
	// scores are logged so noisy inputs are visible in the audit trail.
	TextConfidence float32
}

// TranscriptDocument is the normalized shape we want from the model. It is
// deliberately wire-level: plain strings and numbers, no derived fields. The
// strategy layer converts it into the domain record.
type TranscriptDocument struct {
	StudentInfo   StudentInfoDoc `json:"studentInfo"`
	Courses       []CourseDoc    `json:"courses"`
	OverallTotals TotalsDoc      `json:"overallTotals"`
}

type StudentInfoDoc struct {
	StudentID     string  `json:"studentId,omitempty"`
	Name          string  `json:"name,omitempty"`
	Program       string  `json:"program,omitempty"`
	College       string  `json:"college,omitempty"`
	Major         string  `json:"major,omitempty"`
	CumulativeGPA float64 `json:"cumulativeGPA,omitempty"`
}

type CourseDoc struct {
	Term          string  `json:"term"`
	Subject       string  `json:"subject"`
	CourseCode    string  `json:"courseCode"`
	Level         string  `json:"level,omitempty"`
	Title         string  `json:"title"`
	Grade         string  `json:"grade"`
	CreditHours   float64 `json:"creditHours"`
	QualityPoints float64 `json:"qualityPoints,omitempty"`
}

type TotalsDoc struct {
	AttemptHours  float64 `json:"attemptHours"`
	PassedHours   float64 `json:"passedHours"`
	EarnedHours   float64 `json:"earnedHours"`
	GPAHours      float64 `json:"gpaHours"`
	QualityPoints float64 `json:"qualityPoints"`
	GPA           float64 `json:"gpa"`
}

// TranscriptExtractor is the interface the LLM strategy depends on. The raw
// model JSON is returned alongside the parsed document so failures can be
// audited with the offending payload.
type TranscriptExtractor interface {
	ExtractTranscript(ctx context.Context, req ExtractRequest) (TranscriptDocument, []byte, error)
}
