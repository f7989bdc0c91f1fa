package probe

import (
	"context"
	"fmt"
)

// Probe is a single external check operation. The returned detail is
// surfaced on success (for example a measured latency); a nil error
// means the check passed.
type Probe func(ctx context.Context) (string, error)

// SkipError marks a tolerated failure, such as the service answering
// 503 because a backing dependency is down. The evaluator records it
// as a skip, not a failure.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return e.Reason }

// Skipf builds a SkipError.
func Skipf(format string, a ...any) error {
	return &SkipError{Reason: fmt.Sprintf(format, a...)}
}

// FatalError marks a connectivity failure that makes the whole run
// pointless. The evaluator aborts immediately instead of recording it.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }
