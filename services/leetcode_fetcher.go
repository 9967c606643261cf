package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"leetStats/internal/leetcode"
)

const maxResponseBytes = 1 << 20

type FetcherConfig struct {
	Endpoint       string
	Timeout        time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	RateLimitDelay time.Duration
	// MaxRPS paces outbound requests; 0 disables pacing.
	MaxRPS float64
}

// LeetCodeFetcher queries the LeetCode GraphQL API for one profile, retrying
// transport failures and rate-limit responses a bounded number of times.
type LeetCodeFetcher struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	policy     retryPolicy
	limiter    *rate.Limiter
	sleep      func(ctx context.Context, d time.Duration) error
	logger     zerolog.Logger
}

func NewLeetCodeFetcher(cfg FetcherConfig, logger zerolog.Logger) *LeetCodeFetcher {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = leetcode.DefaultEndpoint
	}

	f := &LeetCodeFetcher{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		timeout:    cfg.Timeout,
		policy: retryPolicy{
			maxAttempts:    cfg.MaxAttempts,
			retryDelay:     cfg.RetryDelay,
			rateLimitDelay: cfg.RateLimitDelay,
		},
		sleep:  sleepContext,
		logger: logger.With().Str("component", "leetcode_fetcher").Logger(),
	}

	if cfg.MaxRPS > 0 {
		burst := int(cfg.MaxRPS)
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(cfg.MaxRPS), burst)
	}

	return f
}

// Fetch returns the decoded success payload for username, or a *FetchError.
func (f *LeetCodeFetcher) Fetch(ctx context.Context, username string) (*leetcode.Response, error) {
	body, err := json.Marshal(leetcode.ProfileRequest(username))
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile query: %w", err)
	}

	state := newRetryState(f.policy)
	for {
		resp, err := f.attempt(ctx, body)

		outcome, detail := classify(resp, err)
		upstreamAttempts.WithLabelValues(outcome.String()).Inc()

		d := state.decide(outcome, detail)
		switch d.action {
		case actionReturn:
			return resp, nil
		case actionFail:
			f.logger.Warn().
				Str("username", username).
				Int("attempt", state.attempt).
				Str("kind", d.err.Kind.String()).
				Str("detail", d.err.Detail).
				Msg("profile fetch failed")
			return nil, d.err
		}

		f.logger.Info().
			Str("username", username).
			Int("attempt", state.attempt).
			Str("outcome", outcome.String()).
			Str("detail", detail).
			Dur("wait", d.wait).
			Msg("profile fetch attempt failed, retrying")

		if err := f.sleep(ctx, d.wait); err != nil {
			return nil, &FetchError{Kind: FetchNetwork, Detail: err.Error()}
		}
		state.next()
	}
}

func classify(resp *leetcode.Response, err error) (attemptOutcome, string) {
	switch {
	case err != nil:
		return outcomeTransport, err.Error()
	case resp.Variant() == leetcode.VariantAPIError && resp.RateLimited():
		return outcomeRateLimited, resp.FirstError()
	case resp.Variant() == leetcode.VariantAPIError:
		return outcomeAPIError, resp.FirstError()
	default:
		return outcomeSuccess, ""
	}
}

// attempt performs one request. Any returned error is a transport failure.
func (f *LeetCodeFetcher) attempt(ctx context.Context, body []byte) (*leetcode.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range leetcode.Headers {
		req.Header.Set(k, v)
	}

	res, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, maxResponseBytes))
		return nil, fmt.Errorf("%d %s for url: %s", res.StatusCode, http.StatusText(res.StatusCode), f.endpoint)
	}

	var decoded leetcode.Response
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes)).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &decoded, nil
}
