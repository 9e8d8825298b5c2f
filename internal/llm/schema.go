package llm

// BuildTranscriptJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass this to the model as a structured output constraint and
// also use it locally to validate the response.
func BuildTranscriptJSONSchema() map[string]any {
	gpaProp := map[string]any{"type": "number", "minimum": 0.0, "maximum": 4.0}
	hoursProp := map[string]any{"type": "number", "minimum": 0.0}

	studentInfo := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"studentId":     map[string]any{"type": "string", "pattern": `^\d{9}$`},
			"name":          map[string]any{"type": "string"},
			"program":       map[string]any{"type": "string"},
			"college":       map[string]any{"type": "string"},
			"major":         map[string]any{"type": "string"},
			"cumulativeGPA": gpaProp,
		},
	}

	course := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"term":          map[string]any{"type": "string", "minLength": 1},
			"subject":       map[string]any{"type": "string", "pattern": `^[A-Z]{2,4}$`},
			"courseCode":    map[string]any{"type": "string", "minLength": 1},
			"level":         map[string]any{"type": "string"},
			"title":         map[string]any{"type": "string", "minLength": 1},
			"grade":         map[string]any{"type": "string", "pattern": `^(IP|W|P|[A-F][+-]?)$`},
			"creditHours":   hoursProp,
			"qualityPoints": hoursProp,
		},
		"required": []string{"term", "subject", "courseCode", "title", "grade", "creditHours"},
	}

	totals := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"attemptHours":  hoursProp,
			"passedHours":   hoursProp,
			"earnedHours":   hoursProp,
			"gpaHours":      hoursProp,
			"qualityPoints": hoursProp,
			"gpa":           gpaProp,
		},
		"required": []string{"attemptHours", "passedHours", "earnedHours", "gpaHours", "qualityPoints", "gpa"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"studentInfo":   studentInfo,
			"courses":       map[string]any{"type": "array", "items": course},
			"overallTotals": totals,
		},
		"required": []string{"studentInfo", "courses", "overallTotals"},
	}
}
