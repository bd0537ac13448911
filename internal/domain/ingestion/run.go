// Package ingestion holds the shared result types produced by provider
// ingestion runs and the composite tasks that group them.
package ingestion

import "time"

// Per-run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusNoData  = "no_data"
)

// Composite task statuses.
const (
	TaskStatusSuccess       = "success"
	TaskStatusPartialFailed = "partial_failed"
	TaskStatusFailed        = "failed"
)

// RunSummary reports the outcome of a single entity ingestion run.
type RunSummary struct {
	Source    string   `json:"source"`
	Status    string   `json:"status"`
	Processed int      `json:"processed"`
	Errors    []string `json:"errors,omitempty"`
}

// Failed reports whether the run ended in failure. A no_data run is not a
// failure: the provider simply had nothing for the requested window.
func (s RunSummary) Failed() bool {
	return s.Status == StatusFailure
}

// TaskReport is the aggregate outcome of a composite task (initial load,
// historical load, daily incremental).
type TaskReport struct {
	Task            string       `json:"task"`
	Status          string       `json:"status"`
	StartedAt       time.Time    `json:"started_at"`
	DurationSeconds float64      `json:"duration_seconds"`
	Runs            []RunSummary `json:"runs"`
}

// Aggregate derives the composite status from the individual runs: success
// when none failed, partial_failed otherwise. TaskStatusFailed is reserved
// for a task that could not finish its run sequence at all.
func Aggregate(runs []RunSummary) string {
	for _, run := range runs {
		if run.Failed() {
			return TaskStatusPartialFailed
		}
	}

	return TaskStatusSuccess
}
