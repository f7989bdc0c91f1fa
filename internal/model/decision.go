package model

// Decision is the final verdict for a validation run.
type Decision string

const (
	DecisionApproved     Decision = "APPROVED"
	DecisionWithWarnings Decision = "APPROVED_WITH_WARNINGS"
	DecisionRejected     Decision = "REJECTED"
)

// Policy selects the decision rule applied to a summary.
type Policy string

const (
	// PolicyLenient tolerates up to two failed checks. Used by the
	// smoke and integration gates.
	PolicyLenient Policy = "lenient"
	// PolicyStrict requires a 90% pass rate once anything has failed.
	// Used by the production readiness gate.
	PolicyStrict Policy = "strict"
)

const (
	lenientMaxFailed  = 2
	strictMinPassRate = 90
)

// Decide maps a summary to the final verdict under the given policy.
func Decide(sum ScoreSummary, p Policy) Decision {
	if sum.Failed == 0 {
		return DecisionApproved
	}
	switch p {
	case PolicyStrict:
		if sum.PassRate >= strictMinPassRate {
			return DecisionWithWarnings
		}
	default:
		if sum.Failed <= lenientMaxFailed {
			return DecisionWithWarnings
		}
	}
	return DecisionRejected
}

// ExitCode maps a decision to the process exit code. Only a rejection
// is non-zero; a fatal connectivity failure exits 1 before any decision
// is made.
func ExitCode(d Decision) int {
	if d == DecisionRejected {
		return 1
	}
	return 0
}
