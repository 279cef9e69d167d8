package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated covers bad signature, unknown user, soft-deleted
	// account and stale token version alike; callers must not be able to
	// tell these apart.
	ErrUnauthenticated = errors.New("authentication required")

	ErrUsernameTaken = errors.New("username already taken")
	ErrIdentityTaken = errors.New("social account already registered")

	ErrTrialAlreadyUsed = errors.New("free trial already used")
	ErrTrialActive      = errors.New("free trial already active")
	ErrNotSubscribed    = errors.New("not currently subscribed")

	ErrWalkNotFound = errors.New("walk not found")
)

// ValidationError carries per-field messages for malformed input, as opposed
// to state conflicts or business-rule refusals.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
