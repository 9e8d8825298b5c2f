package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestBuildUserPromptIncludesFilenameHint(t *testing.T) {
	prompt := BuildUserPrompt(ExtractRequest{Text: "transcript body", FilenameHint: "transcript.pdf"})

	assert.Contains(t, prompt, "Filename: transcript.pdf")
	assert.Contains(t, prompt, "transcript body")
}

func TestBuildUserPromptTruncatesOnRuneBoundary(t *testing.T) {
	// the leading ASCII byte shifts every two-byte rune onto an odd offset,
	// so a pure byte-count cut would land mid-sequence
	text := "a" + strings.Repeat("é", maxPromptChars)
	prompt := BuildUserPrompt(ExtractRequest{Text: text})

	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, "(truncated)")
	assert.Less(t, len(prompt), len(text))
}

func TestBuildUserPromptShortTextUntouched(t *testing.T) {
	prompt := BuildUserPrompt(ExtractRequest{Text: "short"})

	assert.Contains(t, prompt, "short")
	assert.NotContains(t, prompt, "(truncated)")
}
