package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/transcript-service/internal/entity"
)

func TestParseOverallTotalsPrefersTotalInstitution(t *testing.T) {
	got := ParseOverallTotals(sampleTranscript)

	require.True(t, got.Parsed)
	assert.Equal(t, 20.0, got.AttemptHours)
	assert.Equal(t, 16.0, got.PassedHours)
	assert.Equal(t, 16.0, got.EarnedHours)
	assert.Equal(t, 13.0, got.GPAHours)
	assert.Equal(t, 45.3, got.QualityPoints)
	assert.Equal(t, 3.48, got.GPA)
}

func TestParseOverallTotalsLastCumulativeWins(t *testing.T) {
	// no Total Institution or Overall line, two Cumulative lines
	got := ParseOverallTotals(completedOnlyTranscript)

	require.True(t, got.Parsed)
	assert.Equal(t, 4.0, got.GPA)

	text := `Cumulative: 10.00 10.00 10.00 10.00 36.30 3.63
some rows
Cumulative: 20.00 16.00 16.00 13.00 45.30 3.48
`
	got = ParseOverallTotals(text)
	require.True(t, got.Parsed)
	assert.Equal(t, 3.48, got.GPA, "the final Cumulative line is the running total")
}

func TestParseOverallTotalsSectionFallback(t *testing.T) {
	text := `no labelled totals line here
TRANSCRIPT TOTALS
Attempt Passed Earned GPA Hours Quality Points GPA
5.00 5.00 5.00 5.00 20.00 4.00
`
	got := ParseOverallTotals(text)

	require.True(t, got.Parsed)
	assert.Equal(t, 5.0, got.AttemptHours)
	assert.Equal(t, 20.0, got.QualityPoints)
	assert.Equal(t, 4.0, got.GPA)
}

func TestParseOverallTotalsUnparsedMarker(t *testing.T) {
	got := ParseOverallTotals("nothing resembling a totals line")

	assert.False(t, got.Parsed)
	assert.Equal(t, entity.Totals{}, got)
}

func TestParseTermTotals(t *testing.T) {
	got := ParseTermTotals(sampleTranscript)

	require.Len(t, got, 2)

	assert.Equal(t, "Fall 2023", got[0].Term)
	assert.Equal(t, 36.3, got[0].Totals.QualityPoints)
	assert.Equal(t, 3.63, got[0].Totals.GPA)
	assert.True(t, got[0].Totals.Parsed)

	assert.Equal(t, "Spring 2024", got[1].Term)
	assert.Equal(t, 3.0, got[1].Totals.GPAHours)
	assert.Equal(t, 9.0, got[1].Totals.QualityPoints)
	assert.Equal(t, 3.0, got[1].Totals.GPA)
}

func TestParseTermTotalsTermWithoutSubtotalOmitted(t *testing.T) {
	text := `Term: Fall 2023
CSE 1001 01 Intro to CS A 3.0 12.0

Term: Spring 2024
MTH 2001 01 Calculus 2 B 4.0 12.0
Current Term: 4.00 4.00 4.00 4.00 12.00 3.00
`
	got := ParseTermTotals(text)

	require.Len(t, got, 1)
	assert.Equal(t, "Spring 2024", got[0].Term)
}

func TestOverallGPAConsistentWithCourseRows(t *testing.T) {
	courses := ParseCourses(sampleTranscript)
	overall := ParseOverallTotals(sampleTranscript)
	require.True(t, overall.Parsed)

	var points, hours float64
	for _, c := range courses {
		if c.GPABearing() {
			points += c.QualityPoints
			hours += c.CreditHours
		}
	}
	require.NotZero(t, hours)
	assert.InDelta(t, overall.GPA, points/hours, 0.01)
	assert.Equal(t, overall.GPAHours, hours)
	assert.InDelta(t, overall.QualityPoints, points, 0.001)
}
