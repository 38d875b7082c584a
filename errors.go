package zhlive

import (
	"errors"
	"fmt"
)

// TransportError indicates the backend could not be reached or answered with
// a non-success status.
type TransportError struct {
	Endpoint   string // e.g. "/translate"
	StatusCode int    // 0 when no response was received
	Cause      error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("transport error (%s)", e.Endpoint)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": http %d", e.StatusCode)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// BackendError indicates the backend answered with an error field.
type BackendError struct {
	Endpoint string
	Message  string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend error (%s): %s", e.Endpoint, e.Message)
}

// PlaybackError indicates an audio failure.
type PlaybackError struct {
	Message string
	Cause   error
}

func (e *PlaybackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("playback error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("playback error: %s", e.Message)
}

func (e *PlaybackError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// IsBackend reports whether err carries a backend-reported error.
func IsBackend(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr)
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// userMessage maps a translate failure to the text shown to the user.
func userMessage(err error) string {
	if IsBackend(err) {
		return MsgTranslationError
	}
	return MsgServiceUnavailable
}
