package customerrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("required fields missing")
	ErrSessionNotFound = errors.New("form session not found")
	ErrSessionClosed   = errors.New("form session closed")
	ErrPresetNotFound  = errors.New("preset not found")
	ErrPresetsDisabled = errors.New("presets are not configured")
	ErrInvalidPreset   = errors.New("invalid preset")
)

// User-facing messages
const (
	MsgRequiredFields = "Please fill in all required fields."
	MsgServerError    = "Server error: %s"
	MsgFetchFailed    = "Failed to fetch data. Please try again later."
)

// ValidationError is returned before any network activity when required filters are absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) UserMessage() string { return MsgRequiredFields }

// ServerError means the screening service answered with a non-success status.
type ServerError struct {
	StatusCode int
	StatusText string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("screening service error (status %d): %s", e.StatusCode, e.StatusText)
}

func (e *ServerError) UserMessage() string { return fmt.Sprintf(MsgServerError, e.StatusText) }

// NetworkError covers transport failures and bodies that are not a list of scored stocks.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch screener results: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

func (e *NetworkError) UserMessage() string { return MsgFetchFailed }

// UserFacing is implemented by every error a form session can end in
type UserFacing interface {
	error
	UserMessage() string
}
