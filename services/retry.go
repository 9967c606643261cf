package services

import (
	"context"
	"time"
)

type attemptOutcome int

const (
	outcomeSuccess attemptOutcome = iota
	outcomeTransport
	outcomeRateLimited
	outcomeAPIError
)

func (o attemptOutcome) String() string {
	switch o {
	case outcomeSuccess:
		return "success"
	case outcomeTransport:
		return "transport_error"
	case outcomeRateLimited:
		return "rate_limited"
	default:
		return "api_error"
	}
}

type retryAction int

const (
	actionReturn retryAction = iota
	actionRetry
	actionFail
)

type retryPolicy struct {
	maxAttempts    int
	retryDelay     time.Duration
	rateLimitDelay time.Duration
}

type decision struct {
	action retryAction
	wait   time.Duration
	err    *FetchError
}

// retryState tracks one Fetch call. attempt is 1-based and refers to the
// attempt whose outcome is being decided.
type retryState struct {
	policy  retryPolicy
	attempt int
	lastErr string
}

func newRetryState(p retryPolicy) *retryState {
	if p.maxAttempts < 1 {
		p.maxAttempts = 1
	}
	return &retryState{policy: p, attempt: 1}
}

func (s *retryState) final() bool {
	return s.attempt >= s.policy.maxAttempts
}

// decide maps the outcome of the current attempt to what the fetcher does next.
// A rate-limit signal on the final attempt falls through to exhaustion rather
// than surfacing the upstream message.
func (s *retryState) decide(outcome attemptOutcome, detail string) decision {
	s.lastErr = detail

	switch outcome {
	case outcomeSuccess:
		return decision{action: actionReturn}
	case outcomeTransport:
		if s.final() {
			return decision{action: actionFail, err: &FetchError{Kind: FetchNetwork, Detail: detail}}
		}
		return decision{action: actionRetry, wait: s.policy.retryDelay}
	case outcomeRateLimited:
		if s.final() {
			return decision{action: actionFail, err: &FetchError{Kind: FetchExhausted, Detail: msgExhausted}}
		}
		return decision{action: actionRetry, wait: s.policy.rateLimitDelay}
	default:
		if detail == "" {
			detail = msgUnknownAPI
		}
		return decision{action: actionFail, err: &FetchError{Kind: FetchAPIError, Detail: detail}}
	}
}

func (s *retryState) next() {
	s.attempt++
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
