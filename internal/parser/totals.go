package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gradpath/transcript-service/internal/entity"
)

// reSixDecimals matches the six-number tuple posted on totals lines:
// attempted, passed, earned, GPA hours, quality points, GPA.
var reSixDecimals = regexp.MustCompile(
	`(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)`)

// overallLabels are tried in order; the first that yields six consecutive
// decimal tokens wins. "Cumulative:" appears once per term plus a final
// running total, so its last occurrence is the authoritative one.
var overallLabels = []struct {
	label string
	last  bool
}{
	{label: "Total Institution:"},
	{label: "Overall:"},
	{label: "Cumulative:", last: true},
}

// termTotalLabels are the candidate markers for a per-term subtotal line.
var termTotalLabels = []string{"Term Totals:", "Current Term:"}

// ParseOverallTotals extracts the transcript's overall totals tuple. When
// every strategy fails it returns a zero record with Parsed=false — an
// explicit unparsed marker, deliberately distinguishable from real data.
func ParseOverallTotals(content string) entity.Totals {
	for _, cand := range overallLabels {
		var idx int
		if cand.last {
			idx = strings.LastIndex(content, cand.label)
		} else {
			idx = strings.Index(content, cand.label)
		}
		if idx < 0 {
			continue
		}
		if t, ok := sixAfter(content[idx+len(cand.label):]); ok {
			return t
		}
	}

	// fallback: any six-decimal run after the totals section header
	if idx := strings.Index(content, totalsMarker); idx >= 0 {
		if t, ok := sixAfter(content[idx+len(totalsMarker):]); ok {
			return t
		}
	}

	return entity.Totals{}
}

// ParseTermTotals extracts per-term subtotal tuples where present, in
// transcript order. Terms without a recognizable subtotal line are omitted.
func ParseTermTotals(content string) []entity.TermTotal {
	completedRegion, _, _ := partition(content)

	var totals []entity.TermTotal
	for _, sec := range splitTerms(completedRegion) {
		for _, label := range termTotalLabels {
			idx := strings.Index(sec.body, label)
			if idx < 0 {
				continue
			}
			if t, ok := sixAfter(sec.body[idx+len(label):]); ok {
				totals = append(totals, entity.TermTotal{Term: sec.name, Totals: t})
				break
			}
		}
	}
	return totals
}

// sixAfter scans text for the first six-consecutive-decimal sequence.
func sixAfter(tail string) (entity.Totals, bool) {
	m := reSixDecimals.FindStringSubmatch(tail)
	if m == nil {
		return entity.Totals{}, false
	}
	nums := make([]float64, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return entity.Totals{}, false
		}
		nums[i] = v
	}
	return entity.Totals{
		AttemptHours:  nums[0],
		PassedHours:   nums[1],
		EarnedHours:   nums[2],
		GPAHours:      nums[3],
		QualityPoints: nums[4],
		GPA:           nums[5],
		Parsed:        true,
	}, true
}
