package model

import "time"

// Job statuses, updated as the controller moves through its stages
const (
	JobPending   = "pending"
	JobRunning   = "running"
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// PipelineRequest is the body of POST /api/v1/pipelines
type PipelineRequest struct {
	Video      string `json:"video"`                 // 11-char id or any URL that embeds it
	MaxResults int    `json:"maxResults,omitempty"` // optional override of the configured cap
}

// Job is one API-triggered pipeline run
type Job struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"videoId"`
	MaxResults int       `json:"maxResults"`
	Status     string    `json:"status"`
	ReportPath string    `json:"reportPath,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// StageProgress records the state of one stage of a job
type StageProgress struct {
	Stage     string     `json:"stage"`
	Status    string     `json:"status"` // "started", "completed", "failed"
	Records   int        `json:"records"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// ErrorDetail is a stored failure of a job
type ErrorDetail struct {
	ID        int64     `json:"id"`
	Stage     string    `json:"stage,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// PipelineLog is a stage-level log line persisted for a job
type PipelineLog struct {
	Stage     string                 `json:"stage"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}
