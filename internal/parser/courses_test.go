package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/entity"
)

func findCourse(t *testing.T, courses []entity.Course, subject, code string) entity.Course {
	t.Helper()
	for _, c := range courses {
		if c.Subject == subject && c.CourseCode == code {
			return c
		}
	}
	t.Fatalf("course %s %s not found", subject, code)
	return entity.Course{}
}

func TestSplitTermsKeepsSubtotalLinesInsideTerms(t *testing.T) {
	completedRegion, _, _ := partition(sampleTranscript)
	sections := splitTerms(completedRegion)

	require.Len(t, sections, 2, "subtotal and totals lines must not open sections")
	assert.Equal(t, "Fall 2023", sections[0].name)
	assert.Equal(t, "Spring 2024", sections[1].name)
	assert.Contains(t, sections[0].body, "Current Term:", "a term keeps its own subtotal line")
	assert.NotContains(t, sections[1].body, "Total Institution:")
}

func TestParseCoursesEveryRowExactlyOnce(t *testing.T) {
	courses := ParseCourses(sampleTranscript)

	require.Len(t, courses, 8)

	seen := map[string]int{}
	for _, c := range courses {
		seen[c.Subject+" "+c.CourseCode]++
	}
	for key, n := range seen {
		assert.Equal(t, 1, n, "row %s duplicated", key)
	}

	var completed, inProgress int
	for _, c := range courses {
		switch c.Status {
		case constants.CourseCompleted:
			completed++
		case constants.CourseInProgress:
			inProgress++
		}
	}
	assert.Equal(t, 6, completed)
	assert.Equal(t, 2, inProgress)
}

func TestParseCoursesCompletedRow(t *testing.T) {
	courses := ParseCourses(sampleTranscript)

	c := findCourse(t, courses, "CSE", "1001")
	assert.Equal(t, "Fall 2023", c.Term)
	assert.Equal(t, "01", c.Level)
	assert.Equal(t, "Intro to CS", c.Title)
	assert.Equal(t, constants.Grade("A"), c.Grade)
	assert.Equal(t, 3.0, c.CreditHours)
	assert.Equal(t, 12.0, c.QualityPoints)
	assert.Equal(t, constants.CourseCompleted, c.Status)
	require.NotNil(t, c.Standing)
	assert.Equal(t, "Good Standing", c.Standing.Academic)
}

func TestParseCoursesWrappedTitleNormalized(t *testing.T) {
	courses := ParseCourses(sampleTranscript)

	c := findCourse(t, courses, "CSE", "1002")
	assert.Equal(t, "Fundamentals of Software Development", c.Title)
	assert.Equal(t, constants.Grade("B"), c.Grade)
	assert.Equal(t, 9.0, c.QualityPoints)
}

func TestParseCoursesSentinelGrades(t *testing.T) {
	courses := ParseCourses(sampleTranscript)

	w := findCourse(t, courses, "MTH", "2001")
	assert.Equal(t, constants.GradeWithdrawn, w.Grade)
	assert.Equal(t, 4.0, w.CreditHours)
	assert.Zero(t, w.QualityPoints)
	assert.Equal(t, constants.CourseCompleted, w.Status)
	assert.False(t, w.GPABearing(), "withdrawn rows must not count toward GPA")

	p := findCourse(t, courses, "PSY", "1411")
	assert.Equal(t, constants.GradePass, p.Grade)
	assert.False(t, p.GPABearing(), "pass/fail rows must not count toward GPA")
}

func TestParseCoursesInProgressRegion(t *testing.T) {
	courses := ParseCourses(sampleTranscript)

	c := findCourse(t, courses, "CSE", "2010")
	assert.Equal(t, "Fall 2024", c.Term)
	assert.Equal(t, "Algorithms and Data Structures", c.Title)
	assert.Equal(t, constants.GradeInProgress, c.Grade)
	assert.Equal(t, 4.0, c.CreditHours)
	assert.Zero(t, c.QualityPoints, "in-progress implies absent quality points")
	assert.Equal(t, constants.CourseInProgress, c.Status)
}

func TestParseCoursesNoInProgressBlock(t *testing.T) {
	courses := ParseCourses(completedOnlyTranscript)

	require.Len(t, courses, 1)
	assert.Equal(t, constants.CourseCompleted, courses[0].Status)
}

func TestParseCoursesMalformedRowSkipped(t *testing.T) {
	text := `Term: Fall 2023
CSE 1001 01 Intro to CS A 3.0 12.0
this line is not a course row at all
ECE 3551 ?? broken row without numbers
`
	courses := ParseCourses(text)

	require.Len(t, courses, 1)
	assert.Equal(t, "CSE", courses[0].Subject)
}

func TestParseCoursesEmptyInput(t *testing.T) {
	assert.Empty(t, ParseCourses(""))
}
