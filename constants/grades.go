package constants

import "strings"

// Grade is a posted letter grade or one of the sentinel values used on
// transcript course rows.
type Grade string

// Sentinel grades. W and P rows carry no quality points; IP marks a course
// that is still in progress and has no posted grade at all.
const (
	GradeWithdrawn  Grade = "W"
	GradePass       Grade = "P"
	GradeInProgress Grade = "IP"
)

// gradePoints maps GPA-bearing letter grades to their per-credit point value.
var gradePoints = map[string]float64{
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.3,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"D-": 0.7,
	"F":  0.0,
}

// IsGPABearing reports whether a grade counts toward GPA hours.
// Withdrawn, pass/fail, and in-progress rows are excluded.
func IsGPABearing(g Grade) bool {
	_, ok := gradePoints[string(g)]
	return ok
}

// GradePoints returns the per-credit point value for a letter grade.
// The second return is false for sentinel or unrecognized grades.
func GradePoints(g Grade) (float64, bool) {
	v, ok := gradePoints[string(g)]
	return v, ok
}

// NormalizeGrade trims and uppercases a raw grade token.
func NormalizeGrade(raw string) Grade {
	return Grade(strings.ToUpper(strings.TrimSpace(raw)))
}
