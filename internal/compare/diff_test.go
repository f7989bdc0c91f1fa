package compare

import (
	"reflect"
	"testing"

	"k8s-readiness-gate/internal/model"
)

func reportWith(checks map[string]model.Status, passRate int) *model.RunReport {
	r := model.NewReport("readiness", model.PolicyStrict, model.Target{Service: "demo-api"})
	for name, st := range checks {
		r.Checks = append(r.Checks, model.CheckResult{Name: name, Status: st})
	}
	r.Summary = model.ScoreSummary{PassRate: passRate}
	r.Decision = model.DecisionApproved
	return &r
}

func TestDiffRegressionsAndRecoveries(t *testing.T) {
	prev := reportWith(map[string]model.Status{
		"health endpoint": model.StatusPass,
		"load handling":   model.StatusFail,
		"response time":   model.StatusPass,
	}, 66)
	curr := reportWith(map[string]model.Status{
		"health endpoint": model.StatusFail,
		"load handling":   model.StatusPass,
		"response time":   model.StatusPass,
	}, 66)

	s := Diff(prev, curr)

	if !reflect.DeepEqual(s.NewlyFailing, []string{"health endpoint"}) {
		t.Errorf("NewlyFailing = %v", s.NewlyFailing)
	}
	if !reflect.DeepEqual(s.Recovered, []string{"load handling"}) {
		t.Errorf("Recovered = %v", s.Recovered)
	}
	if s.PreviousRunID != prev.RunID {
		t.Errorf("PreviousRunID = %q, want %q", s.PreviousRunID, prev.RunID)
	}
	if s.PassRateDelta != 0 {
		t.Errorf("PassRateDelta = %d, want 0", s.PassRateDelta)
	}
}

func TestDiffWarnIsNotARegression(t *testing.T) {
	prev := reportWith(map[string]model.Status{"user listing": model.StatusPass}, 100)
	curr := reportWith(map[string]model.Status{"user listing": model.StatusWarn}, 100)

	s := Diff(prev, curr)
	if len(s.NewlyFailing) != 0 {
		t.Errorf("NewlyFailing = %v, want none", s.NewlyFailing)
	}
}

func TestDiffAddedAndRemoved(t *testing.T) {
	prev := reportWith(map[string]model.Status{
		"health endpoint": model.StatusPass,
		"old check":       model.StatusPass,
	}, 100)
	curr := reportWith(map[string]model.Status{
		"health endpoint": model.StatusPass,
		"server banner":   model.StatusPass,
	}, 100)

	s := Diff(prev, curr)
	if !reflect.DeepEqual(s.ChecksAdded, []string{"server banner"}) {
		t.Errorf("ChecksAdded = %v", s.ChecksAdded)
	}
	if !reflect.DeepEqual(s.ChecksRemoved, []string{"old check"}) {
		t.Errorf("ChecksRemoved = %v", s.ChecksRemoved)
	}
}

func TestDiffPassRateDelta(t *testing.T) {
	prev := reportWith(map[string]model.Status{"health endpoint": model.StatusPass}, 80)
	curr := reportWith(map[string]model.Status{"health endpoint": model.StatusPass}, 95)

	s := Diff(prev, curr)
	if s.PassRateDelta != 15 {
		t.Errorf("PassRateDelta = %d, want 15", s.PassRateDelta)
	}
	if s.PreviousPassRate != 80 {
		t.Errorf("PreviousPassRate = %d, want 80", s.PreviousPassRate)
	}
}
