package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradpath/transcript-service/constants"
)

func TestRegexStrategyParse(t *testing.T) {
	s := NewRegexStrategy(nil)

	tr, err := s.Parse(context.Background(), sampleTranscript)
	require.NoError(t, err)
	require.NotNil(t, tr)

	assert.Equal(t, "Jane Doe", tr.StudentInfo.Name)
	assert.Len(t, tr.Courses, 8)
	assert.Len(t, tr.TermTotals, 2)
	assert.True(t, tr.OverallTotals.Parsed)
	assert.Equal(t, constants.StrategyRegex, tr.Source)
}

func TestRegexStrategyDerivesCumulativeGPA(t *testing.T) {
	s := NewRegexStrategy(nil)

	tr, err := s.Parse(context.Background(), sampleTranscript)
	require.NoError(t, err)

	assert.Equal(t, 3.48, tr.StudentInfo.CumulativeGPA)
}

func TestRegexStrategyEmptyInput(t *testing.T) {
	s := NewRegexStrategy(nil)

	tr, err := s.Parse(context.Background(), "")
	require.NoError(t, err, "empty input degrades, it never errors")
	require.NotNil(t, tr)

	assert.Empty(t, tr.Courses)
	assert.Empty(t, tr.TermTotals)
	assert.False(t, tr.OverallTotals.Parsed)
	assert.Zero(t, tr.StudentInfo.CumulativeGPA)
}

func TestRegexStrategyDeterministic(t *testing.T) {
	s := NewRegexStrategy(nil)

	first, err := s.Parse(context.Background(), sampleTranscript)
	require.NoError(t, err)
	second, err := s.Parse(context.Background(), sampleTranscript)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRegexStrategyName(t *testing.T) {
	s := NewRegexStrategy(nil)
	assert.Equal(t, constants.StrategyRegex, s.Name())
}
