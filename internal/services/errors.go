package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidID           = errors.New("invalid schema ID format")
	ErrNotFound            = errors.New("schema not found")
	ErrConflict            = errors.New("a schema with this name already exists")
	ErrProviderAuth        = errors.New("invalid API key configuration")
	ErrProviderQuota       = errors.New("API quota exceeded")
	ErrMalformedGeneration = errors.New("AI generated invalid response format")
)

// InputError carries a client-facing message and matches ErrInvalidInput.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalidInput(format string, args ...interface{}) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}
