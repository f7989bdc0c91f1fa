package model

// Status classifies the outcome of a single check.
// The closed set replaces the ad hoc PASS/FAIL strings the old shell
// scripts compared by hand.
type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
	StatusSkip Status = "SKIP"
)

// CheckResult is the recorded outcome of one named check.
// Immutable once appended to a Suite.
type CheckResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Detail     string `json:"detail,omitempty"`
	DurationMS int64  `json:"durationMs"`
}
