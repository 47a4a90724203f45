package integrations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	perrors "github.com/stakpak/paks-og/pkg/errors"
)

// DefaultTimeout is used by [NewHTTPClient] when no timeout is configured.
// Zero means requests are bounded only by their context.
const DefaultTimeout = 0

var (
	// ErrNotFound is returned when a resource doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnauthorized is returned when the registry rejects the request's credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-success response from a registry, carrying the message
// from its {"error":{"code","message"}} body when one was sent.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (%d %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Unwrap maps the status onto the package sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden:
		return ErrUnauthorized
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrNetwork
	default:
		return nil
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// parseAPIError builds an APIError from a response body. Bodies that are not
// the registry's error envelope are used verbatim as the message.
func parseAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error.Message != "" {
		e.Code = eb.Error.Code
		e.Message = eb.Error.Message
		return e
	}
	e.Message = strings.TrimSpace(string(body))
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// rateLimited converts a 429 response into a coded error. Retry-After may be
// given in seconds or as an HTTP date.
func rateLimited(h http.Header, now time.Time) *perrors.RateLimitedError {
	e := &perrors.RateLimitedError{Message: "registry rate limit exceeded"}
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return e
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		e.RetryAfter = secs
		return e
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		e.RetryAfter = int(t.Sub(now).Round(time.Second) / time.Second)
	}
	return e
}

// NewHTTPClient creates an HTTP client for registry requests. A zero timeout
// leaves requests bounded only by their context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
