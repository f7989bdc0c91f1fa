package output

import (
	"fmt"
	"io"
	"strings"

	"k8s-readiness-gate/internal/model"
)

// WriteSummary renders the human-readable run summary: every check
// with its status and detail, the counts, the pass rate and the
// decision. No recorded outcome is dropped.
func WriteSummary(w io.Writer, r *model.RunReport) {
	fmt.Fprintf(w, "\n%s validation of %s/%s (run %s)\n",
		r.Mode, r.Target.Namespace, r.Target.Service, r.RunID)
	fmt.Fprintln(w, "----------------------------------------")
	for _, c := range r.Checks {
		if c.Detail != "" {
			fmt.Fprintf(w, "  [%-4s] %s: %s\n", c.Status, c.Name, c.Detail)
		} else {
			fmt.Fprintf(w, "  [%-4s] %s\n", c.Status, c.Name)
		}
	}
	fmt.Fprintln(w, "----------------------------------------")

	s := r.Summary
	fmt.Fprintf(w, "Checks: %d passed, %d failed, %d warned, %d skipped\n",
		s.Passed, s.Failed, s.Warned, s.Skipped)
	fmt.Fprintf(w, "Pass rate: %d%% (%d of %d non-skipped checks)\n",
		s.PassRate, s.Passed+s.Warned, s.Total)

	if c := r.Comparison; c != nil {
		fmt.Fprintf(w, "Compared to run %s: pass rate %+d%%\n", c.PreviousRunID, c.PassRateDelta)
		if len(c.NewlyFailing) > 0 {
			fmt.Fprintf(w, "  newly failing: %s\n", strings.Join(c.NewlyFailing, ", "))
		}
		if len(c.Recovered) > 0 {
			fmt.Fprintf(w, "  recovered: %s\n", strings.Join(c.Recovered, ", "))
		}
	}

	fmt.Fprintf(w, "Decision: %s (%s policy)\n", r.Decision, r.Policy)
}
