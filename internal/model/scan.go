package model

import "time"

// TaskState is the lifecycle state of one symbol within a scan.
type TaskState string

const (
	StatePending     TaskState = "PENDING"
	StateFetching    TaskState = "FETCHING"
	StateFetched     TaskState = "FETCHED"
	StateFetchFailed TaskState = "FETCH_FAILED"
	StateEnriching   TaskState = "ENRICHING"
	StateScoring     TaskState = "SCORING"
	StateIncluded    TaskState = "INCLUDED"
	StateExcluded    TaskState = "EXCLUDED"
)

// Terminal reports whether no further transition follows s.
func (s TaskState) Terminal() bool {
	return s == StateFetchFailed || s == StateIncluded || s == StateExcluded
}

// Progress is emitted each time a symbol finishes, in completion order.
type Progress struct {
	RunID     string    `json:"run_id"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Symbol    string    `json:"symbol"`
	State     TaskState `json:"state"`
}

// Percent returns completion as a whole percentage.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// ScanReport is the immutable outcome of one scan run.
// TotalSucceeded counts symbols that reached scoring, whatever their score.
type ScanReport struct {
	RunID          string         `json:"run_id"`
	Mode           string         `json:"mode"`
	Results        []ScoredResult `json:"results"`
	TotalAttempted int            `json:"total_attempted"`
	TotalSucceeded int            `json:"total_succeeded"`
	TotalFailed    int            `json:"total_failed"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
}

// Duration returns how long the scan took.
func (r *ScanReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
