// Package web defines the error taxonomy surfaced to API callers and the
// echo error handler that translates it into structured JSON responses.
package web

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries a field-level error map and renders as a 400
// response of the form {"errors": {field: [messages]}}.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError builds a ValidationError for a single field.
func FieldError(field, message string) *ValidationError {
	e := NewValidationError()
	e.Add(field, message)
	return e
}

// Add appends a message for a field and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// HasErrors reports whether any field message has been recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, f := range fields {
		fmt.Fprintf(&b, "; %s: %s", f, strings.Join(e.Fields[f], ", "))
	}
	return b.String()
}

// AuthenticationError renders as a 401 response.
type AuthenticationError struct {
	Detail string
}

func (e *AuthenticationError) Error() string { return e.Detail }

// Unauthorized builds an AuthenticationError with the given detail.
func Unauthorized(detail string) *AuthenticationError {
	return &AuthenticationError{Detail: detail}
}

// NotFoundError renders as a 404 response. It is returned both when a record
// does not exist and when it exists outside the caller's visible set, so the
// two cases are indistinguishable to the caller.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for the named resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}
