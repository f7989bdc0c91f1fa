package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"k8s-readiness-gate/internal/model"
)

// PrintCISummary emits the single machine-readable JSON line CI
// pipelines parse instead of the text summary.
func PrintCISummary(w io.Writer, r *model.RunReport, trend string, delta int) {
	summary := model.GateSummary{
		RunID:        r.RunID,
		TimestampUtc: time.Now().UTC().Format(time.RFC3339),
		Mode:         r.Mode,
		Decision:     r.Decision,
		PassRate:     r.Summary.PassRate,
		Passed:       r.Summary.Passed,
		Failed:       r.Summary.Failed,
		Warned:       r.Summary.Warned,
		Skipped:      r.Summary.Skipped,
		Trend:        trend,
		Delta:        delta,
	}
	raw, _ := json.Marshal(summary)
	fmt.Fprintln(w, string(raw))
}
