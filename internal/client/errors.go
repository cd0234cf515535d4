package client

import "fmt"

// AuthError indicates the API rejected the configured key.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("authentication failed (status %d)", e.Status)
}

// RateLimitError indicates the retry budget for 429 responses was exhausted.
type RateLimitError struct {
	Retries int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded after %d retries", e.Retries)
}

// ParseError indicates the API returned a body that does not match the
// expected JSON:API shape.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed API response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// APIError is any other non-success response from the API.
type APIError struct {
	Status int
	Code   string
	Detail string
}

func (e *APIError) Error() string {
	if e.Code != "" || e.Detail != "" {
		return fmt.Sprintf("API request failed (status %d): %s: %s", e.Status, e.Code, e.Detail)
	}
	return fmt.Sprintf("API request failed (status %d)", e.Status)
}
