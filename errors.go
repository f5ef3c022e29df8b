package chatoyant

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorKind string

const (
	ErrKindInvalidRequest ErrorKind = "invalid_request"
	ErrKindAuthentication ErrorKind = "authentication"
	ErrKindPermission     ErrorKind = "permission"
	ErrKindNotFound       ErrorKind = "not_found"
	ErrKindRateLimit      ErrorKind = "rate_limit"
	ErrKindServerError    ErrorKind = "server_error"
	ErrKindTimeout        ErrorKind = "timeout"
	ErrKindCanceled       ErrorKind = "canceled"
	ErrKindParse          ErrorKind = "parse"
)

// APIError is a provider-agnostic error for failed API calls.
//
// It is designed for enterprise handling: stable classification (rate limits,
// auth), observability (request IDs, raw payloads), and retries (retry-after).
// Transport-level failures are represented with StatusCode 0 rather than
// leaking raw net/http errors.
type APIError struct {
	Provider string

	// StatusCode is the HTTP status. It is 0 when the request failed before
	// a response was received (network error, cancellation, malformed body).
	StatusCode int

	Kind ErrorKind

	// Code is the provider-specific machine-readable error code.
	Code string

	// Type is the provider-specific error type string.
	Type string

	// Param names the offending request parameter, when the provider reports one.
	Param string

	// Message is the human-readable error message.
	Message string

	// RequestID is the request correlation ID, when available.
	RequestID string

	// RetryAfter is the server-suggested wait before retrying (rate limits).
	RetryAfter time.Duration

	// Header holds the HTTP response headers, when a response was received.
	Header http.Header

	// Raw is the unparsed response body.
	Raw []byte

	Cause error
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	if strings.TrimSpace(e.Provider) != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf("http %d", e.StatusCode))
	} else {
		b.WriteString("request failed")
	}

	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.StatusCode != 0 {
		msg = http.StatusText(e.StatusCode)
	}
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}

	if strings.TrimSpace(e.Code) != "" {
		b.WriteString(" (")
		b.WriteString(strings.TrimSpace(e.Code))
		b.WriteString(")")
	}
	if strings.TrimSpace(e.RequestID) != "" {
		b.WriteString(" request_id=")
		b.WriteString(strings.TrimSpace(e.RequestID))
	}

	return b.String()
}

func (e *APIError) Unwrap() error { return e.Cause }

// Retryable reports whether the call is likely safe to retry: rate limits,
// server errors, and timeouts.
func (e *APIError) Retryable() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ErrKindRateLimit, ErrKindServerError, ErrKindTimeout:
		return true
	}
	return e.StatusCode >= 500
}

// RetryAfterSeconds returns the server-suggested wait in whole seconds,
// rounded up. 0 means no hint was provided.
func (e *APIError) RetryAfterSeconds() int {
	if e == nil || e.RetryAfter <= 0 {
		return 0
	}
	secs := int(e.RetryAfter / time.Second)
	if e.RetryAfter%time.Second != 0 {
		secs++
	}
	return secs
}

// AsAPIError extracts an *APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func IsRateLimit(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Kind == ErrKindRateLimit
}

func IsAuth(err error) bool {
	ae, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return ae.Kind == ErrKindAuthentication || ae.Kind == ErrKindPermission
}

func IsRetryable(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Retryable()
}

// ClassifyStatus maps an HTTP status code to an ErrorKind.
//
// 4xx codes without a more specific class fall back to invalid_request.
func ClassifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return ErrKindAuthentication
	case http.StatusForbidden:
		return ErrKindPermission
	case http.StatusNotFound:
		return ErrKindNotFound
	case http.StatusTooManyRequests:
		return ErrKindRateLimit
	case http.StatusRequestTimeout:
		return ErrKindTimeout
	}
	if status >= 500 {
		return ErrKindServerError
	}
	return ErrKindInvalidRequest
}

// NotSupported returns the error providers use for operations their backend
// does not implement (e.g. image generation on a chat-only vendor).
func NotSupported(provider, operation string) *APIError {
	return &APIError{
		Provider: provider,
		Kind:     ErrKindInvalidRequest,
		Message:  operation + " is not supported by this provider",
	}
}
