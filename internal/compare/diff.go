// Package compare diffs two gate runs so a pipeline can see which
// checks regressed or recovered since the previous report.
package compare

import (
	"time"

	"k8s-readiness-gate/internal/model"
)

// Diff compares prev against curr by check name.
func Diff(prev, curr *model.RunReport) model.ComparisonSummary {
	s := model.ComparisonSummary{
		PreviousRunID:    prev.RunID,
		PreviousRunAt:    prev.StartedAt.Format(time.RFC3339),
		PreviousPassRate: prev.Summary.PassRate,
		PassRateDelta:    curr.Summary.PassRate - prev.Summary.PassRate,
		PreviousDecision: string(prev.Decision),
	}

	prevByName := statusByName(prev.Checks)
	currByName := statusByName(curr.Checks)

	for _, c := range curr.Checks {
		prevStatus, known := prevByName[c.Name]
		if !known {
			s.ChecksAdded = append(s.ChecksAdded, c.Name)
			continue
		}
		if c.Status == model.StatusFail && prevStatus != model.StatusFail {
			s.NewlyFailing = append(s.NewlyFailing, c.Name)
		}
		if c.Status != model.StatusFail && prevStatus == model.StatusFail {
			s.Recovered = append(s.Recovered, c.Name)
		}
	}
	for _, c := range prev.Checks {
		if _, known := currByName[c.Name]; !known {
			s.ChecksRemoved = append(s.ChecksRemoved, c.Name)
		}
	}

	return s
}

func statusByName(checks []model.CheckResult) map[string]model.Status {
	out := make(map[string]model.Status, len(checks))
	for _, c := range checks {
		out[c.Name] = c.Status
	}
	return out
}
