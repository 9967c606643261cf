package leetcode

import "strings"

// Response is the body returned by the LeetCode GraphQL endpoint for one request.
// Exactly one of Data.MatchedUser or Errors is expected to be populated.
type Response struct {
	Data   *Data      `json:"data"`
	Errors []APIError `json:"errors,omitempty"`
}

type Data struct {
	MatchedUser *MatchedUser `json:"matchedUser"`
}

type MatchedUser struct {
	Username             string          `json:"username"`
	Profile              *Profile        `json:"profile"`
	LanguageProblemCount []LanguageCount `json:"languageProblemCount"`
	SubmitStats          *SubmitStats    `json:"submitStats"`
	Badges               []Badge         `json:"badges"`
}

type Profile struct {
	Ranking *int `json:"ranking"`
}

type LanguageCount struct {
	LanguageName   string `json:"languageName"`
	ProblemsSolved int    `json:"problemsSolved"`
}

type SubmitStats struct {
	AcSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type Badge struct {
	Name string `json:"name"`
}

type APIError struct {
	Message string `json:"message"`
}

// Variant classifies a decoded Response.
type Variant int

const (
	VariantSuccess Variant = iota
	VariantAPIError
)

// Variant reports which shape the response has. A response carrying any error
// record counts as an API error even if data is also present.
func (r *Response) Variant() Variant {
	if r != nil && len(r.Errors) > 0 {
		return VariantAPIError
	}
	return VariantSuccess
}

// FirstError returns the message of the first error record, or "" when absent.
func (r *Response) FirstError() string {
	if r == nil || len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// RateLimited reports whether the first error record signals an exceeded quota.
func (r *Response) RateLimited() bool {
	return strings.Contains(strings.ToLower(r.FirstError()), "exceeded")
}

// User returns the matched user record, or nil when the profile is missing.
func (r *Response) User() *MatchedUser {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.MatchedUser
}
