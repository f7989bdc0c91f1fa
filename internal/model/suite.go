package model

// Suite accumulates check results for one validation run.
// Insertion order is execution order. A Suite lives for a single run and
// is discarded once the summary and decision have been emitted.
type Suite struct {
	Results []CheckResult
	final   bool
}

// Append records a result. Appending after Finalize is a programming
// error and is ignored rather than silently mutating a finalized suite.
func (s *Suite) Append(r CheckResult) {
	if s.final {
		return
	}
	s.Results = append(s.Results, r)
}

// Finalize marks the suite read-only.
func (s *Suite) Finalize() {
	s.final = true
}

// ScoreSummary is derived from a finalized suite.
// Warn counts as pass-equivalent; Skip is excluded from the denominator.
type ScoreSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warned   int `json:"warned"`
	Skipped  int `json:"skipped"`
	PassRate int `json:"passRate"`
}

// Summarize derives counts and the pass rate from the suite.
// Total is every non-skipped check; Warn feeds the pass-rate numerator.
// PassRate uses integer truncation. An empty suite reports 100 so a run
// with nothing but skipped checks never divides by zero.
func (s *Suite) Summarize() ScoreSummary {
	var sum ScoreSummary
	for _, r := range s.Results {
		switch r.Status {
		case StatusPass:
			sum.Passed++
		case StatusWarn:
			sum.Warned++
		case StatusFail:
			sum.Failed++
		case StatusSkip:
			sum.Skipped++
		}
	}
	sum.Total = sum.Passed + sum.Warned + sum.Failed
	if sum.Total == 0 {
		sum.PassRate = 100
	} else {
		sum.PassRate = 100 * (sum.Passed + sum.Warned) / sum.Total
	}
	return sum
}
