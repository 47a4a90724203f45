// Package errors provides coded errors shared by the paks-og pipeline, the
// HTTP server and the CLI.
//
// Every failure the service can report carries a [Code]. The code decides
// how the failure surfaces: invalid input becomes a 400 with the error's
// message, and everything else becomes a bare 500. Lookup failures never
// reach this point because the pipeline recovers from them with a default
// card.
//
//	err := errors.Wrap(errors.ErrCodeFontUnavailable, cause, "load %s", family)
//	if errors.Is(err, errors.ErrCodeFontUnavailable) {
//	    // respond 500
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// Request and configuration validation.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidOwner   Code = "INVALID_OWNER"
	ErrCodeInvalidPackage Code = "INVALID_PACKAGE"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Registry transport.
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Image pipeline.
	ErrCodeFontUnavailable Code = "FONT_UNAVAILABLE"
	ErrCodeRenderFailed    Code = "RENDER_FAILED"
	ErrCodeRasterFailed    Code = "RASTER_FAILED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// clientCodes are the codes a request can be blamed for.
var clientCodes = map[Code]bool{
	ErrCodeInvalidInput:   true,
	ErrCodeInvalidOwner:   true,
	ErrCodeInvalidPackage: true,
	ErrCodeInvalidFormat:  true,
}

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e := asError(err); e != nil {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns the message of the outermost *Error without its code
// and cause, or err.Error() for other errors.
func UserMessage(err error) string {
	if e := asError(err); e != nil {
		return e.Message
	}
	return err.Error()
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// HTTPStatus maps err to the status the server responds with.
func HTTPStatus(err error) int {
	if clientCodes[GetCode(err)] {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RateLimitedError is returned for 429 responses. RetryAfter is in seconds
// and zero when the server gave no usable hint.
type RateLimitedError struct {
	RetryAfter int
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code reports ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }
