package model

// SendFailure records one recipient that could not be delivered to.
type SendFailure struct {
	Token   string
	Code    string
	Message string
}

// MulticastOutcome accumulates per-recipient results across all batches of a
// single multicast dispatch. Partial failure is a terminal outcome, not an
// error.
type MulticastOutcome struct {
	SuccessCount int
	Failures     []SendFailure
}

func (o *MulticastOutcome) FailureCount() int {
	return len(o.Failures)
}
