package walletpaytest

import (
	"context"
	"slices"
	"sync"

	"github.com/vitalink/walletpay"
)

// Recorder is a walletpay.ResultHandler that keeps every outcome it receives.
type Recorder struct {
	mu       sync.Mutex
	outcomes []walletpay.Outcome
	attempts []*walletpay.AttemptInfo

	// Reject is returned for successful outcomes, simulating a merchant
	// callback that fails to finish the order.
	Reject error
}

// HandleResult implements walletpay.ResultHandler.
func (r *Recorder) HandleResult(ctx context.Context, outcome walletpay.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
	r.attempts = append(r.attempts, walletpay.AttemptFromContext(ctx))
	if outcome.Failed() {
		return nil
	}
	return r.Reject
}

// Outcomes lists the received outcomes in order.
func (r *Recorder) Outcomes() []walletpay.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.outcomes)
}

// Attempts lists the attempt metadata seen with each outcome; nil for Init failures.
func (r *Recorder) Attempts() []*walletpay.AttemptInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.attempts)
}

// Errors lists the failure outcomes.
func (r *Recorder) Errors() []*walletpay.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []*walletpay.Error
	for _, o := range r.outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
