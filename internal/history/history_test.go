package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"k8s-readiness-gate/internal/model"
)

func testReport(mode string, passRate int) *model.RunReport {
	r := model.NewReport(mode, model.PolicyLenient, model.Target{
		Namespace: "default",
		Service:   "demo-api",
		Port:      8000,
	})
	r.Summary = model.ScoreSummary{Total: 10, Passed: passRate / 10, PassRate: passRate}
	r.Decision = model.DecisionApproved
	return &r
}

func TestRecordFirstRun(t *testing.T) {
	dir := t.TempDir()

	tr, err := Record(dir, testReport("smoke", 100))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if tr.Label != "FIRST_RUN" {
		t.Errorf("Label = %q, want FIRST_RUN", tr.Label)
	}
	if tr.Current != 100 {
		t.Errorf("Current = %d, want 100", tr.Current)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "history", "index.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		t.Fatalf("parse index: %v", err)
	}
	if len(idx.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(idx.Entries))
	}
	e := idx.Entries[0]
	if e.Mode != "smoke" || e.PassRate != 100 || e.Service != "demo-api" {
		t.Errorf("entry = %+v", e)
	}
	if _, err := os.Stat(filepath.Join(dir, e.ReportFile)); err != nil {
		t.Errorf("archived report missing: %v", err)
	}
}

func TestRecordTrend(t *testing.T) {
	dir := t.TempDir()

	if _, err := Record(dir, testReport("smoke", 80)); err != nil {
		t.Fatal(err)
	}

	tr, err := Record(dir, testReport("smoke", 90))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Label != "IMPROVING" {
		t.Errorf("Label = %q, want IMPROVING", tr.Label)
	}
	if tr.Previous != 80 || tr.Current != 90 || tr.Delta != 10 {
		t.Errorf("trend = %+v", tr)
	}

	tr, err = Record(dir, testReport("smoke", 70))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Label != "DECLINING" {
		t.Errorf("Label = %q, want DECLINING", tr.Label)
	}
	if tr.Delta != -20 {
		t.Errorf("Delta = %d, want -20", tr.Delta)
	}

	tr, err = Record(dir, testReport("smoke", 70))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Label != "SAME" {
		t.Errorf("Label = %q, want SAME", tr.Label)
	}
}

func TestRecordTrendIgnoresOtherModes(t *testing.T) {
	dir := t.TempDir()

	if _, err := Record(dir, testReport("smoke", 50)); err != nil {
		t.Fatal(err)
	}

	// A readiness run after a smoke run still counts as a first run.
	tr, err := Record(dir, testReport("readiness", 100))
	if err != nil {
		t.Fatal(err)
	}
	if tr.Label != "FIRST_RUN" {
		t.Errorf("Label = %q, want FIRST_RUN", tr.Label)
	}
}
