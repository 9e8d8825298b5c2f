package parser

import (
	"regexp"

	"github.com/gradpath/transcript-service/internal/entity"
)

// Values may wrap onto one continuation line; a line holding another label
// (anything with a colon) is never swallowed. RE2 has no lookahead to stop a
// multi-line capture at the next label, so each regex captures the same-line
// value only and wrappedValue folds in the continuation line.
var (
	reStudentID = regexp.MustCompile(`(\d{9})\s+[^\n]+`)
	reName      = regexp.MustCompile(`Name\s*:[ \t]*([^\n]+)`)
	reProgram   = regexp.MustCompile(`Program:[ \t]*([^\n]+)`)
	reCollege   = regexp.MustCompile(`College:[ \t]*([^\n]+)`)
	reMajor     = regexp.MustCompile(`Major and Department:[ \t]*([^\n]+)`)
)

// ParseStudentInfo locates each identity field independently by its label
// token. Fields that fail to match come back as empty strings; the parser
// never aborts on partial failure. The cumulative GPA is filled in by the
// assembler from the overall totals when the header doesn't state one.
func ParseStudentInfo(content string) entity.StudentInfo {
	info := entity.StudentInfo{
		Name:    labelValue(content, reName),
		Program: wrappedValue(content, reProgram),
		College: wrappedValue(content, reCollege),
		Major:   wrappedValue(content, reMajor),
	}
	if m := reStudentID.FindStringSubmatch(content); m != nil {
		info.StudentID = m[1]
	}
	return info
}
