// Package validation validates connection configurations against
// connector schemas. Violations are returned as data, one record per
// offending field, so a form layer can highlight every bad field at once.
package validation

import (
	"fmt"
	"strings"
)

// Code identifies the category of a validation failure.
type Code string

// Validation failure categories. All are recoverable; none is ever
// raised as a panic.
const (
	CodeConnectorNotFound    Code = "connector_not_found"
	CodeMissingRequiredField Code = "missing_required_field"
	CodeTypeMismatch         Code = "type_mismatch"
	CodeUnknownField         Code = "unknown_field"
	CodeInvalidEnumValue     Code = "invalid_enum_value"
	CodeInvalidPattern       Code = "invalid_pattern"
	CodeInvalidSchedule      Code = "invalid_schedule"
)

// ValidationError is one field-addressable violation.
type ValidationError struct {
	// Code is the failure category.
	Code Code `json:"code"`

	// Field is the path of the offending field, relative to the object
	// that was validated. Aggregating callers prefix it with their own
	// path so the final list is addressable from the request root.
	Field string `json:"field"`

	// Message is a human-readable description. It never contains the
	// value of a secret property.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// ErrorList is an ordered collection of validation errors. The order is
// deterministic for a given input, so validating the same config twice
// yields identical lists.
type ErrorList []*ValidationError

// Error implements the error interface.
func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Prefixed returns a copy of the list with every field path prefixed,
// used when aggregating sub-validation errors into a combined list.
func (l ErrorList) Prefixed(prefix string) ErrorList {
	if prefix == "" || len(l) == 0 {
		return l
	}
	out := make(ErrorList, len(l))
	for i, e := range l {
		field := prefix
		if e.Field != "" {
			field = prefix + "." + e.Field
		}
		out[i] = &ValidationError{Code: e.Code, Field: field, Message: e.Message}
	}
	return out
}

// HasCode reports whether any error in the list carries the given code.
func (l ErrorList) HasCode(code Code) bool {
	for _, e := range l {
		if e.Code == code {
			return true
		}
	}
	return false
}
