// Package history keeps an index of past gate runs under the output
// directory so CI can see whether the pass rate is trending the right
// way. The in-memory suite itself is never persisted; only the derived
// summary lands here.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"k8s-readiness-gate/internal/model"
)

const maxEntries = 200

type IndexEntry struct {
	TimestampUTC string         `json:"timestampUtc"`
	RunID        string         `json:"runId"`
	Mode         string         `json:"mode"`
	Namespace    string         `json:"namespace"`
	Service      string         `json:"service"`
	PassRate     int            `json:"passRate"`
	Decision     model.Decision `json:"decision"`
	ReportFile   string         `json:"reportFile"`
}

type Index struct {
	Entries []IndexEntry `json:"entries"`
}

type Trend struct {
	Previous int
	Current  int
	Delta    int
	Label    string // IMPROVING / DECLINING / SAME / FIRST_RUN
}

// Record appends the run to the history index and archives its report.
// The trend compares pass rates against the most recent prior run of
// the same mode.
func Record(outDir string, r *model.RunReport) (Trend, error) {
	historyDir := filepath.Join(outDir, "history")
	if err := os.MkdirAll(historyDir, 0o755); err != nil {
		return Trend{}, err
	}

	indexPath := filepath.Join(historyDir, "index.json")
	var idx Index
	if raw, err := os.ReadFile(indexPath); err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &idx)
	}

	prev := -1
	for i := len(idx.Entries) - 1; i >= 0; i-- {
		if idx.Entries[i].Mode == r.Mode {
			prev = idx.Entries[i].PassRate
			break
		}
	}

	ts := time.Now().UTC().Format("20060102-150405")
	reportName := fmt.Sprintf("gate-report-%s-%s.json", r.Mode, ts)
	if err := writeJSON(filepath.Join(historyDir, reportName), r); err != nil {
		return Trend{}, err
	}

	idx.Entries = append(idx.Entries, IndexEntry{
		TimestampUTC: time.Now().UTC().Format(time.RFC3339),
		RunID:        r.RunID,
		Mode:         r.Mode,
		Namespace:    r.Target.Namespace,
		Service:      r.Target.Service,
		PassRate:     r.Summary.PassRate,
		Decision:     r.Decision,
		ReportFile:   filepath.ToSlash(filepath.Join("history", reportName)),
	})
	if len(idx.Entries) > maxEntries {
		idx.Entries = idx.Entries[len(idx.Entries)-maxEntries:]
	}

	raw, _ := json.MarshalIndent(idx, "", "  ")
	if err := os.WriteFile(indexPath, raw, 0o644); err != nil {
		return Trend{}, err
	}

	tr := Trend{Previous: prev, Current: r.Summary.PassRate, Label: "FIRST_RUN"}
	if prev >= 0 {
		tr.Delta = tr.Current - tr.Previous
		switch {
		case tr.Delta > 0:
			tr.Label = "IMPROVING"
		case tr.Delta < 0:
			tr.Label = "DECLINING"
		default:
			tr.Label = "SAME"
		}
	}
	return tr, nil
}

func writeJSON(path string, r *model.RunReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
