package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by a provider that answered but had no data.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable covers transport failures, timeouts and non-2xx answers.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrNotConfigured is returned when a provider has no credentials.
	ErrNotConfigured = errors.New("provider not configured")

	ErrDestinationNotFound = errors.New("destination could not be geocoded")
	ErrStrategyFailed      = errors.New("planning strategy failed")
	ErrUnknownMode         = errors.New("unknown planning mode")
)

// FetchError is the error every external-data collaborator returns. Callers
// inspect it with errors.Is against the sentinels above and pick a fallback.
type FetchError struct {
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError wraps err for provider. A nil err stays nil.
func NewFetchError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Provider: provider, Err: err}
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when user input is rejected before planning.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}
