package linkverify

import "time"

// Generation statuses carried by GenerationEvent.
const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// BrokenLinkEvent is published for each broken link found in a run.
type BrokenLinkEvent struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Resolved  string    `json:"resolved"`
	Timestamp time.Time `json:"timestamp"`
}

// GenerationEvent reports the lifecycle of a generation run.
type GenerationEvent struct {
	RunID          string    `json:"run_id"`
	Status         string    `json:"status"`
	Template       string    `json:"template,omitempty"`
	PageCount      int       `json:"page_count,omitempty"`
	FilesGenerated int       `json:"files_generated,omitempty"`
	BrokenLinks    int       `json:"broken_links,omitempty"`
	DurationMS     int64     `json:"duration_ms,omitempty"`
	Stage          string    `json:"stage,omitempty"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
