package parser

import (
	"regexp"
	"strings"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// flattenSpaces collapses embedded line breaks and whitespace runs into
// single spaces and trims the result. Wrapped course titles and multi-line
// label values pass through here.
func flattenSpaces(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}

// labelValue captures the rest of the line after a label token. A missing
// label yields an empty string, never an error.
func labelValue(content string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return flattenSpaces(m[1])
}

// wrappedValue captures the rest of the label's line, then appends the next
// line as a wrapped continuation unless that line is blank or carries a label
// of its own (a colon anywhere on it).
func wrappedValue(content string, re *regexp.Regexp) string {
	loc := re.FindStringSubmatchIndex(content)
	if loc == nil {
		return ""
	}
	value := content[loc[2]:loc[3]]
	if next, ok := strings.CutPrefix(content[loc[1]:], "\n"); ok {
		if i := strings.IndexByte(next, '\n'); i >= 0 {
			next = next[:i]
		}
		if strings.TrimSpace(next) != "" && !strings.Contains(next, ":") {
			value += " " + next
		}
	}
	return flattenSpaces(value)
}
