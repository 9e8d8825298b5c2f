package llm

import (
	"encoding/json"
	"strconv"
	"strings"
)

var courseNumberKeys = []string{"creditHours", "qualityPoints"}

var totalsNumberKeys = []string{
	"attemptHours", "passedHours", "earnedHours", "gpaHours", "qualityPoints", "gpa",
}

// SanitizeTranscriptJSON repairs the common ways a model response narrowly
// misses the schema: nulls where a field should be omitted, numbers quoted as
// strings, lowercase grades, and stray keys under additionalProperties=false
// objects. It returns the cleaned document and the list of repairs, so the
// caller can re-validate and log what changed.
func SanitizeTranscriptJSON(doc []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(doc, &m); err != nil {
		return nil, nil, err
	}

	var repaired []string
	note := func(s string) { repaired = append(repaired, s) }

	pruneUnknown(m, []string{"studentInfo", "courses", "overallTotals"}, "", note)

	if si, ok := m["studentInfo"].(map[string]any); ok {
		pruneUnknown(si, []string{"studentId", "name", "program", "college", "major", "cumulativeGPA"}, "studentInfo.", note)
		coerceNumber(si, "cumulativeGPA", "studentInfo.", note)
		dropEmptyStrings(si, "studentInfo.", note)
	}

	if courses, ok := m["courses"].([]any); ok {
		kept := make([]any, 0, len(courses))
		for _, raw := range courses {
			c, ok := raw.(map[string]any)
			if !ok {
				note("courses(non-object)")
				continue
			}
			pruneUnknown(c, []string{"term", "subject", "courseCode", "level", "title", "grade", "creditHours", "qualityPoints"}, "courses[].", note)
			for _, k := range courseNumberKeys {
				coerceNumber(c, k, "courses[].", note)
			}
			if g, ok := c["grade"].(string); ok {
				up := strings.ToUpper(strings.TrimSpace(g))
				if up != g {
					c["grade"] = up
					note("courses[].grade(case)")
				}
			}
			if s, ok := c["subject"].(string); ok {
				c["subject"] = strings.ToUpper(strings.TrimSpace(s))
			}
			dropEmptyStrings(c, "courses[].", note)
			kept = append(kept, c)
		}
		m["courses"] = kept
	}

	if tot, ok := m["overallTotals"].(map[string]any); ok {
		pruneUnknown(tot, totalsNumberKeys, "overallTotals.", note)
		for _, k := range totalsNumberKeys {
			coerceNumber(tot, k, "overallTotals.", note)
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, repaired, err
	}
	return out, repaired, nil
}

func pruneUnknown(m map[string]any, allowed []string, prefix string, note func(string)) {
	set := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		set[k] = struct{}{}
	}
	for k, v := range m {
		if _, ok := set[k]; !ok {
			delete(m, k)
			note(prefix + k + "(unknown)")
			continue
		}
		if v == nil {
			delete(m, k)
			note(prefix + k + "(null)")
		}
	}
}

func coerceNumber(m map[string]any, key, prefix string, note func(string)) {
	v, ok := m[key]
	if !ok {
		return
	}
	switch t := v.(type) {
	case float64:
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			m[key] = f
			note(prefix + key + "(string->number)")
		} else {
			delete(m, key)
			note(prefix + key + "(unparseable)")
		}
	default:
		delete(m, key)
		note(prefix + key + "(type)")
	}
}

func dropEmptyStrings(m map[string]any, prefix string, note func(string)) {
	for k, v := range m {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			delete(m, k)
			note(prefix + k + "(empty)")
		}
	}
}
