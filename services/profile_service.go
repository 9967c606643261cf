package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"leetStats/internal/leetcode"
	"leetStats/internal/stats"
)

type ProfileFetcher interface {
	Fetch(ctx context.Context, username string) (*leetcode.Response, error)
}

// ProfileService runs the fetch and normalize steps for one username.
type ProfileService struct {
	fetcher ProfileFetcher
	logger  zerolog.Logger
}

func NewProfileService(fetcher ProfileFetcher, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *ProfileService) Lookup(ctx context.Context, username string) (*stats.Record, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		lookupResults.WithLabelValues("invalid").Inc()
		return nil, ErrEmptyUsername
	}

	raw, err := s.fetcher.Fetch(ctx, username)
	if err != nil {
		lookupResults.WithLabelValues(resultLabel(err)).Inc()
		return nil, err
	}

	record, err := Normalize(username, raw)
	if err != nil {
		lookupResults.WithLabelValues("not_found").Inc()
		s.logger.Info().Str("username", username).Str("reason", err.Error()).Msg("profile not usable")
		return nil, err
	}

	lookupResults.WithLabelValues("ok").Inc()
	s.logger.Debug().
		Str("username", username).
		Int("total_solved", record.TotalSolved).
		Int("languages", len(record.TopLanguages)).
		Msg("profile looked up")
	return record, nil
}

func resultLabel(err error) string {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind.String()
	}
	return "error"
}
