package services

import (
	"errors"
	"fmt"
)

// FetchErrorKind classifies why a profile fetch gave up.
type FetchErrorKind int

const (
	FetchNetwork FetchErrorKind = iota + 1
	FetchAPIError
	FetchExhausted
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchNetwork:
		return "network"
	case FetchAPIError:
		return "api_error"
	case FetchExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("FetchErrorKind(%d)", int(k))
	}
}

const (
	msgExhausted     = "API request failed after multiple attempts"
	msgUnknownAPI    = "Unknown API error"
	msgUserNotFound  = "User not found or profile is private"
	msgEmptyUsername = "Username cannot be empty"
	msgEmptyQuestion = "Question cannot be empty"
)

// FetchError is the terminal failure of a LeetCodeFetcher.Fetch call.
type FetchError struct {
	Kind   FetchErrorKind
	Detail string
}

func (e *FetchError) Error() string {
	if e.Kind == FetchNetwork {
		return "Network error: " + e.Detail
	}
	return e.Detail
}

// NormalizeError means the response carried no usable user record.
type NormalizeError struct {
	Message string
}

func (e *NormalizeError) Error() string {
	return e.Message
}

var (
	ErrEmptyUsername     = errors.New("username is empty")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrAssistantDisabled = errors.New("assistant is not configured: GEMINI_API_KEY is not set")
)

// UserMessage converts any lookup or assistant failure into the single string
// shown to the user.
func UserMessage(err error) string {
	var fetchErr *FetchError
	var normErr *NormalizeError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyUsername):
		return msgEmptyUsername
	case errors.Is(err, ErrEmptyQuestion):
		return msgEmptyQuestion
	case errors.As(err, &fetchErr):
		return fetchErr.Error()
	case errors.As(err, &normErr):
		return normErr.Message
	default:
		return err.Error()
	}
}
