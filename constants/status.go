package constants

// CourseStatus classifies a transcript course row by the text region it was
// found in.
type CourseStatus string

const (
	CourseCompleted  CourseStatus = "completed"
	CourseInProgress CourseStatus = "in-progress"
)

// JobStatus is the canonical status for rows in parse_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued  JobStatus = "QUEUED"   // accepted, not started
	JobStatusRunning JobStatus = "RUNNING"  // in progress
	JobStatusTextOK  JobStatus = "TEXT_OK"  // stage 1 completed (text extracted)
	JobStatusParseOK JobStatus = "PARSE_OK" // stage 2 completed (transcript assembled)
	JobStatusFailed  JobStatus = "FAILED"   // terminal failure
)

// StrategyName identifies an extraction strategy.
type StrategyName string

const (
	StrategyRegex StrategyName = "regex"
	StrategyLLM   StrategyName = "llm"
)
