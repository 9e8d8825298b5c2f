package llm

import (
	"strings"
	"unicode/utf8"
)

const maxPromptChars = 12000

// BuildSystemPrompt composes the system message: role, grade vocabulary, and
// strict formatting rules the schema alone cannot express.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a university transcript parser. Return ONLY JSON that matches the provided JSON Schema.",
		"Emit one course object per transcript row, in transcript order, each exactly once.",
		"Grades are one of A, A-, B+, B, B-, C+, C, C-, D+, D, D-, F, W (withdrawn), P (pass/fail), or IP (in progress).",
		"Rows listed under a COURSES IN PROGRESS heading have grade IP and no qualityPoints.",
		"creditHours and qualityPoints are numbers, never strings.",
		"overallTotals comes from the Total Institution, Overall, or final Cumulative line: attempted, passed, earned, GPA hours, quality points, GPA, in that order.",
		"Course titles that wrap across lines must be joined into a single line.",
		"Never output null. If a field is not present, omit it.",
		"Never invent rows or totals that are not in the text.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the filename hint and the extracted text layer.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if f := strings.TrimSpace(req.FilenameHint); f != "" {
		b.WriteString("Filename: ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	text := strings.TrimSpace(req.Text)
	b.WriteString("\nTranscript text:\n")
	if len(text) > maxPromptChars {
		// back off to a rune boundary so the cut never splits a UTF-8 sequence
		cut := maxPromptChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		b.WriteString(text[:cut])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
