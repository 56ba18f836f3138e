package rules

import "fmt"

// IllegalActionError is the recoverable error the action resolver
// returns when a requested action fails a legality check: malformed
// target, wrong team to move, player already acted, and so on. It is
// a plain typed value, never wrapped with errors.Wrap — the caller is
// expected to inspect it and resubmit, not treat it as a bug report.
type IllegalActionError struct {
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s: %s", e.Action, e.Reason)
}

// NewIllegalAction builds an IllegalActionError for act with reason.
func NewIllegalAction(act Action, reason string) *IllegalActionError {
	return &IllegalActionError{Action: act, Reason: reason}
}
