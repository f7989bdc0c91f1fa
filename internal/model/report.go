package model

import (
	"time"

	"github.com/google/uuid"
)

const toolVersion = "0.4.0"

// Target identifies the service under validation.
type Target struct {
	Namespace string `json:"namespace"`
	Service   string `json:"service"`
	Port      int    `json:"port"`
	Color     string `json:"color,omitempty"`
}

type Tool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// RunReport is the serializable artifact of one validation run.
type RunReport struct {
	SchemaVersion   string        `json:"schemaVersion"`
	RunID           string        `json:"runId"`
	Tool            Tool          `json:"tool"`
	Mode            string        `json:"mode"`
	Policy          Policy        `json:"policy"`
	Target          Target        `json:"target"`
	StartedAt       time.Time     `json:"startedAt"`
	EndedAt         time.Time     `json:"endedAt"`
	DurationSeconds int           `json:"durationSeconds"`
	Checks          []CheckResult `json:"checks"`
	Summary         ScoreSummary  `json:"summary"`
	Decision        Decision      `json:"decision"`
	// Comparison holds the diff against a previous report when
	// --compare is used. It lives here rather than in internal/compare
	// so report consumers avoid a circular import.
	Comparison *ComparisonSummary `json:"comparison,omitempty"`
}

// ComparisonSummary is the delta between a previous report and the
// current one, keyed by check name.
type ComparisonSummary struct {
	PreviousRunID    string   `json:"previousRunId"`
	PreviousRunAt    string   `json:"previousRunAt"`
	PreviousPassRate int      `json:"previousPassRate"`
	PassRateDelta    int      `json:"passRateDelta"`
	PreviousDecision string   `json:"previousDecision"`
	NewlyFailing     []string `json:"newlyFailing,omitempty"`
	Recovered        []string `json:"recovered,omitempty"`
	ChecksAdded      []string `json:"checksAdded,omitempty"`
	ChecksRemoved    []string `json:"checksRemoved,omitempty"`
}

func NewReport(mode string, policy Policy, target Target) RunReport {
	return RunReport{
		SchemaVersion: "1.0.0",
		RunID:         uuid.NewString(),
		Tool: Tool{
			Name:    "k8s-readiness-gate",
			Version: toolVersion,
		},
		Mode:      mode,
		Policy:    policy,
		Target:    target,
		StartedAt: time.Now().UTC(),
	}
}

// Finish seals the report with the finalized suite and verdict.
func (r *RunReport) Finish(suite *Suite) {
	suite.Finalize()
	r.EndedAt = time.Now().UTC()
	r.DurationSeconds = int(r.EndedAt.Sub(r.StartedAt).Seconds())
	r.Checks = suite.Results
	r.Summary = suite.Summarize()
	r.Decision = Decide(r.Summary, r.Policy)
}

// GateSummary is the single-line machine-readable output for CI mode.
type GateSummary struct {
	RunID        string   `json:"runId"`
	TimestampUtc string   `json:"timestampUtc"`
	Mode         string   `json:"mode"`
	Decision     Decision `json:"decision"`
	PassRate     int      `json:"passRate"`
	Passed       int      `json:"passed"`
	Failed       int      `json:"failed"`
	Warned       int      `json:"warned"`
	Skipped      int      `json:"skipped"`
	Trend        string   `json:"trend,omitempty"`
	Delta        int      `json:"delta,omitempty"`
}
