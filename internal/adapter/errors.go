package adapter

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRequest wraps transport failures: the request did not produce a
	// Bot API response at all.
	ErrRequest = errors.New("bot api request failed")

	// ErrDecodingResponse is returned when a response is not a Bot API
	// envelope.
	ErrDecodingResponse = errors.New("error decoding bot api response")
)

// APIError is a Bot API error response.
type APIError struct {
	Method      string
	Code        int
	Description string

	// RetryAfter is set when the platform asks to slow down.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bot api %s: %d %s", e.Method, e.Code, e.Description)
}

// IsBadRequest reports whether err is a 400 response. Edits of messages that
// are gone or unchanged fail this way.
func IsBadRequest(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest
}

// IsForbidden reports whether err is a 403 response, returned when the user
// blocked the bot.
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusForbidden
}

// IsRetryable reports whether the call may succeed if repeated later.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRequest) {
		return true
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}
