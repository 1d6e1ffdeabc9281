package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoActiveCluster is matched by errors.Is for any NoActiveClusterError.
var ErrNoActiveCluster = errors.New("no active cluster")

// Violation describes one invalid field. RuleIndex and PatchIndex are -1
// when the violation is not tied to a rule or patch.
type Violation struct {
	RuleIndex  int
	PatchIndex int
	Field      string
	Message    string
}

func (v Violation) String() string {
	switch {
	case v.RuleIndex >= 0 && v.PatchIndex >= 0:
		return fmt.Sprintf("rule %d, patch %d: %s %s", v.RuleIndex, v.PatchIndex, v.Field, v.Message)
	case v.RuleIndex >= 0:
		return fmt.Sprintf("rule %d: %s %s", v.RuleIndex, v.Field, v.Message)
	default:
		return fmt.Sprintf("%s %s", v.Field, v.Message)
	}
}

// FieldViolation creates a violation that is not bound to a rule or patch.
func FieldViolation(field, message string) Violation {
	return Violation{RuleIndex: -1, PatchIndex: -1, Field: field, Message: message}
}

// ValidationError reports every invalid field found in a single pass.
type ValidationError struct {
	Violations []Violation
}

func NewValidationError(violations ...Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return "validation failed: " + e.Violations[0].String()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("validation failed with %d problems: %s", len(e.Violations), strings.Join(parts, "; "))
}

// HasField reports whether any violation names the given field.
func (e *ValidationError) HasField(field string) bool {
	for _, v := range e.Violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// IndexError is returned by positional operations that reference a rule or
// patch that does not exist.
type IndexError struct {
	Collection string
	Index      int
	Length     int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (length %d)", e.Collection, e.Index, e.Length)
}

// NoActiveClusterError is returned when a request is attempted while no
// cluster is selected. It is never a network failure.
type NoActiveClusterError struct{}

func (e *NoActiveClusterError) Error() string {
	return "not connected: no active cluster selected"
}

func (e *NoActiveClusterError) Is(target error) bool {
	return target == ErrNoActiveCluster
}

// APIError is a non-2xx reply from the dashboard backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Detail)
}
