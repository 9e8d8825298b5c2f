package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/gradpath/transcript-service/constants"
)

// ParseJob is the audit record for one upload run through the pipeline.
type ParseJob struct {
	ID           uuid.UUID              `json:"id"`
	UserID       uuid.UUID              `json:"user_id"`
	Filename     string                 `json:"filename"`
	FileSize     int                    `json:"file_size"`
	Status       constants.JobStatus    `json:"status"`
	Strategy     constants.StrategyName `json:"strategy"`
	TextMethod   string                 `json:"text_method,omitempty"`
	TextPages    int                    `json:"text_pages,omitempty"`
	Confidence   float32                `json:"confidence,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	RawOutput    string                 `json:"raw_output,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}
