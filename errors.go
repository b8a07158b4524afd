package scheduler

import "fmt"

// ErrInvariantViolation reports a timeline inconsistency that should
// never occur under correct usage. It aborts the run.
type ErrInvariantViolation struct {
	ResourceID string
	Detail     string
}

func (e ErrInvariantViolation) Error() string {
	return fmt.Sprintf(
		"invariant violation on resource %s: %s",

		e.ResourceID,
		e.Detail,
	)
}
