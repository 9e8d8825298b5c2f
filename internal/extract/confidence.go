package extract

import "regexp"

var (
	reTermMarker = regexp.MustCompile(`(?m)^\s*Term:\s*\S`)
	reGradeToken = regexp.MustCompile(`\s[A-F][+-]?\s+\d+\.\d+`)
	reTotalsRow  = regexp.MustCompile(`(\d+\.\d+\s+){5}\d+\.\d+`)
	reInfoLabel  = regexp.MustCompile(`(?m)^(Name\s*:|Program:|College:|Major and Department:)`)
)

// heuristicConfidence scores how much the extracted text looks like a
// transcript. Each recognized artifact adds to a small base score.
func heuristicConfidence(txt string) float32 {
	score := float32(0.2) // base
	if reTermMarker.MatchString(txt) {
		score += 0.25
	}
	if reGradeToken.MatchString(txt) {
		score += 0.2
	}
	if reTotalsRow.MatchString(txt) {
		score += 0.15
	}
	if reInfoLabel.MatchString(txt) {
		score += 0.1
	}
	if len(txt) > 500 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
