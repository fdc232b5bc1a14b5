package scraper

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the stage a run failed in
type ErrorCode string

const (
	ErrCodeNavigation ErrorCode = "NAVIGATION"
	ErrCodeParse      ErrorCode = "PARSE"
	ErrCodeWrite      ErrorCode = "WRITE"
	ErrCodeBrowser    ErrorCode = "BROWSER"
)

// ScrapeError wraps errors with the failing stage and optional details
type ScrapeError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Details    map[string]any
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Underlying
}

// Is matches another ScrapeError by code, otherwise defers to the underlying error
func (e *ScrapeError) Is(target error) bool {
	if t, ok := target.(*ScrapeError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewScrapeError creates a new ScrapeError
func NewScrapeError(code ErrorCode, message string, err error) *ScrapeError {
	return &ScrapeError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Details:    make(map[string]any),
	}
}

// WithDetail adds a detail to the error
func (e *ScrapeError) WithDetail(key string, value any) *ScrapeError {
	e.Details[key] = value
	return e
}

// CodeOf returns the code of the first ScrapeError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// stageError wraps err with code unless it already carries one.
func stageError(code ErrorCode, message string, err error) error {
	var se *ScrapeError
	if errors.As(err, &se) {
		return err
	}
	return NewScrapeError(code, message, err)
}
