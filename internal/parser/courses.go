package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gradpath/transcript-service/constants"
	"github.com/gradpath/transcript-service/internal/entity"
)

const (
	inProgressMarker = "COURSES IN PROGRESS"
	totalsMarker     = "TRANSCRIPT TOTALS"
)

var (
	// Completed rows: subject, number, level, title, grade, credit hours and
	// an optional quality-points column on the same line. The title may wrap
	// onto one continuation line; it is flattened afterwards.
	reCompletedRow = regexp.MustCompile(
		`([A-Z]{2,4})[ \t]+(\d+)[ \t]+(\d+)[ \t]+([^\n]+?(?:\n[ \t]*[^\n]+?)?)[ \t\n]+(IP|W|P|[A-F][+-]?)[ \t]+(\d+\.\d+)(?:[ \t]+(\d+\.\d+))?`)

	// In-progress rows carry no posted grade and no quality points.
	reInProgressRow = regexp.MustCompile(
		`([A-Z]{2,4})[ \t]+(\d+)[ \t]+(\d+)[ \t]+([^\n]+?(?:\n[ \t]*[^\n]+?)?)[ \t\n]+(\d+\.\d+)`)

	// Term headers sit at the start of a line. A bare substring search would
	// also hit every "Current Term:" subtotal line, so the marker is anchored.
	reTermHeader = regexp.MustCompile(`(?m)^[ \t]*Term:[ \t]*([^\n]*)`)

	reAcademicStanding   = regexp.MustCompile(`Academic Standing:\s*([^\n]+)`)
	reAdditionalStanding = regexp.MustCompile(`Additional Standing:\s*([^\n]+)`)
)

type termSection struct {
	name string
	body string
}

// splitTerms segments text at each line-anchored term header. The text before
// the first header (the student-info block) is discarded, headers that only
// introduce the transcript-totals trailer are dropped, and each body is cut
// at the trailer so overall totals never land inside a term.
func splitTerms(content string) []termSection {
	locs := reTermHeader.FindAllStringSubmatchIndex(content, -1)
	sections := make([]termSection, 0, len(locs))
	for i, loc := range locs {
		name := strings.TrimSpace(content[loc[2]:loc[3]])
		if name == "" || strings.Contains(name, totalsMarker) {
			continue
		}
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := content[loc[0]:end]
		if idx := strings.Index(body, totalsMarker); idx >= 0 {
			body = body[:idx]
		}
		sections = append(sections, termSection{name: name, body: body})
	}
	return sections
}

// partition splits the text at the in-progress marker. Completed rows are
// only matched before it, in-progress rows only after, so a row can never
// land in both sequences.
func partition(content string) (completed, inProgress string, hasInProgress bool) {
	before, after, found := strings.Cut(content, inProgressMarker)
	if !found {
		return content, "", false
	}
	return before, after, true
}

// ParseCourses scans the full text and emits every row matching the course
// record shape, tagged completed or in-progress by region. Rows that do not
// match the shape are silently skipped; that lossiness is inherent to the
// format's lack of a structured delimiter.
func ParseCourses(content string) []entity.Course {
	completedRegion, inProgressRegion, hasInProgress := partition(content)

	var courses []entity.Course
	for _, sec := range splitTerms(completedRegion) {
		standing := parseStanding(sec.body)
		for _, m := range reCompletedRow.FindAllStringSubmatch(sec.body, -1) {
			credit, err := strconv.ParseFloat(m[6], 64)
			if err != nil {
				continue
			}
			var quality float64
			if m[7] != "" {
				quality, _ = strconv.ParseFloat(m[7], 64)
			}
			courses = append(courses, entity.Course{
				Term:          sec.name,
				Subject:       m[1],
				CourseCode:    m[2],
				Level:         m[3],
				Title:         flattenSpaces(m[4]),
				Grade:         constants.NormalizeGrade(m[5]),
				CreditHours:   credit,
				QualityPoints: quality,
				Status:        constants.CourseCompleted,
				Standing:      standing,
			})
		}
	}

	if hasInProgress {
		term := "Current Term"
		if t := labelValue(inProgressRegion, reTermHeader); t != "" {
			term = t
		}
		for _, m := range reInProgressRow.FindAllStringSubmatch(inProgressRegion, -1) {
			credit, err := strconv.ParseFloat(m[5], 64)
			if err != nil {
				continue
			}
			courses = append(courses, entity.Course{
				Term:        term,
				Subject:     m[1],
				CourseCode:  m[2],
				Level:       m[3],
				Title:       flattenSpaces(m[4]),
				Grade:       constants.GradeInProgress,
				CreditHours: credit,
				Status:      constants.CourseInProgress,
			})
		}
	}

	return courses
}

func parseStanding(body string) *entity.Standing {
	s := entity.Standing{
		Academic:   labelValue(body, reAcademicStanding),
		Additional: labelValue(body, reAdditionalStanding),
	}
	if s.Academic == "" && s.Additional == "" {
		return nil
	}
	return &s
}
