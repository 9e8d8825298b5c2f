package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/gradpath/transcript-service/constants"
)

// StudentInfo holds the identity block extracted from the top of a transcript.
// Fields that fail to parse are empty strings, never errors.
type StudentInfo struct {
	StudentID     string  `json:"studentId"`
	Name          string  `json:"name"`
	Program       string  `json:"program"`
	College       string  `json:"college"`
	Major         string  `json:"major"`
	CumulativeGPA float64 `json:"cumulativeGPA"`
}

// Standing is the academic standing posted for a term, attached to each
// course row of that term.
type Standing struct {
	Academic   string `json:"academic,omitempty"`
	Additional string `json:"additional,omitempty"`
}

// Course is a single transcript line item.
//
// Invariant: Status == in-progress implies Grade == IP and QualityPoints == 0.
type Course struct {
	Term          string                 `json:"term"`
	Subject       string                 `json:"subject"`
	CourseCode    string                 `json:"courseCode"`
	Level         string                 `json:"level"`
	Title         string                 `json:"title"`
	Grade         constants.Grade        `json:"grade"`
	CreditHours   float64                `json:"creditHours"`
	QualityPoints float64                `json:"qualityPoints"`
	Status        constants.CourseStatus `json:"status"`
	Standing      *Standing              `json:"standing,omitempty"`
}

// GPABearing reports whether this row counts toward GPA hours.
func (c Course) GPABearing() bool {
	return c.Status == constants.CourseCompleted && constants.IsGPABearing(c.Grade)
}

// Totals is the six-number tuple posted on a term subtotal or the overall
// totals line. Parsed is false when no strategy matched and the record is a
// zero value; downstream consumers must treat such a record as absent data,
// not as a genuinely zero GPA.
type Totals struct {
	AttemptHours  float64 `json:"attemptHours"`
	PassedHours   float64 `json:"passedHours"`
	EarnedHours   float64 `json:"earnedHours"`
	GPAHours      float64 `json:"gpaHours"`
	QualityPoints float64 `json:"qualityPoints"`
	GPA           float64 `json:"gpa"`
	Parsed        bool    `json:"parsed"`
}

// TermTotal is a per-term subtotal, in transcript order.
type TermTotal struct {
	Term   string `json:"term"`
	Totals Totals `json:"totals"`
}

// Transcript is the assembled academic record for one user. It is replaced
// wholesale on re-upload; no history is retained.
type Transcript struct {
	UserID        uuid.UUID              `json:"userId"`
	StudentInfo   StudentInfo            `json:"studentInfo"`
	Courses       []Course               `json:"courses"`
	TermTotals    []TermTotal            `json:"termTotals"`
	OverallTotals Totals                 `json:"overallTotals"`
	Source        constants.StrategyName `json:"source"`
	UploadDate    time.Time              `json:"uploadDate"`
}
