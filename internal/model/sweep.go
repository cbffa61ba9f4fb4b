package model

import "time"

// Sweep item results.
const (
	SweepDeleted   = "deleted"
	SweepSkipped   = "skipped"
	SweepUntracked = "untracked"
	SweepKept      = "kept"
)

// SweepItem records what the sweeper did with one certificate.
type SweepItem struct {
	ARN    string `json:"arn"`
	Result string `json:"result"`
	Reason string `json:"reason,omitempty"`
}

// SweepOutcome is the batch result of one sweep run.
type SweepOutcome struct {
	StartedAt time.Time   `json:"startedAt"`
	Items     []SweepItem `json:"items"`
	Tracked   []string    `json:"tracked"`
	Skipped   bool        `json:"skipped,omitempty"`
}

// Count returns how many items ended with result.
func (o *SweepOutcome) Count(result string) int {
	n := 0
	for _, item := range o.Items {
		if item.Result == result {
			n++
		}
	}
	return n
}
