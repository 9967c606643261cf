package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testPolicy = retryPolicy{maxAttempts: 3, retryDelay: time.Second, rateLimitDelay: 2 * time.Second}

func TestRetryState_Decide(t *testing.T) {
	cases := []struct {
		name     string
		attempt  int
		outcome  attemptOutcome
		detail   string
		action   retryAction
		wait     time.Duration
		kind     FetchErrorKind
		wantText string
	}{
		{name: "success first", attempt: 1, outcome: outcomeSuccess, action: actionReturn},
		{name: "success last", attempt: 3, outcome: outcomeSuccess, action: actionReturn},
		{name: "transport early", attempt: 1, outcome: outcomeTransport, detail: "boom", action: actionRetry, wait: time.Second},
		{name: "transport second", attempt: 2, outcome: outcomeTransport, detail: "boom", action: actionRetry, wait: time.Second},
		{name: "transport final", attempt: 3, outcome: outcomeTransport, detail: "boom", action: actionFail, kind: FetchNetwork, wantText: "Network error: boom"},
		{name: "rate limited early", attempt: 1, outcome: outcomeRateLimited, detail: "exceeded", action: actionRetry, wait: 2 * time.Second},
		{name: "rate limited final", attempt: 3, outcome: outcomeRateLimited, detail: "exceeded", action: actionFail, kind: FetchExhausted, wantText: "API request failed after multiple attempts"},
		{name: "api error first", attempt: 1, outcome: outcomeAPIError, detail: "private", action: actionFail, kind: FetchAPIError, wantText: "private"},
		{name: "api error no message", attempt: 2, outcome: outcomeAPIError, action: actionFail, kind: FetchAPIError, wantText: "Unknown API error"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newRetryState(testPolicy)
			for i := 1; i < c.attempt; i++ {
				s.next()
			}

			d := s.decide(c.outcome, c.detail)

			assert.Equal(t, c.action, d.action)
			assert.Equal(t, c.wait, d.wait)
			if c.action == actionFail {
				if assert.NotNil(t, d.err) {
					assert.Equal(t, c.kind, d.err.Kind)
					assert.Equal(t, c.wantText, d.err.Error())
				}
			} else {
				assert.Nil(t, d.err)
			}
			assert.Equal(t, c.detail, s.lastErr)
		})
	}
}

func TestRetryState_SingleAttemptPolicy(t *testing.T) {
	s := newRetryState(retryPolicy{})
	assert.Equal(t, 1, s.policy.maxAttempts)

	d := s.decide(outcomeTransport, "refused")
	assert.Equal(t, actionFail, d.action)
	assert.Equal(t, FetchNetwork, d.err.Kind)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
	assert.ErrorIs(t, sleepContext(ctx, 0), context.Canceled)
}
