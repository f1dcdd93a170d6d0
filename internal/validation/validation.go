// Package validation turns raw request input into typed values.
//
// A Schema is a plain function from the decoded input to a Result. Schemas
// are built with Fields, which visits object keys in the order the schema
// asks for them and stops at the first issue, so a failed Result carries
// exactly one Issue.
package validation

import (
	"fmt"
)

// Target names the part of the request a schema validated.
type Target string

const (
	TargetBody   Target = "body"
	TargetQuery  Target = "query"
	TargetParams Target = "params"
)

// Issue describes one rejected value.
type Issue struct {
	Field    string
	Message  string
	Received any
	Expected string
}

func (i Issue) Error() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Result is the outcome of running a Schema.
type Result[T any] struct {
	Value  T
	Issues []Issue
}

// OK reports whether the input was accepted.
func (r Result[T]) OK() bool {
	return len(r.Issues) == 0
}

// Schema validates and converts a decoded input value.
type Schema[T any] func(raw any) Result[T]

// Ok wraps an accepted value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail wraps rejected input.
func Fail[T any](issues ...Issue) Result[T] {
	return Result[T]{Issues: issues}
}

// Error is the 400 payload written when a gate rejects a request.
type Error struct {
	Message  string `json:"message"`
	Target   Target `json:"target"`
	Field    string `json:"field,omitempty"`
	Received any    `json:"received,omitempty"`
	Expected string `json:"expected,omitempty"`
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s: %s", e.Target, e.Message)
	}
	return fmt.Sprintf("invalid %s field %s: %s", e.Target, e.Field, e.Message)
}

// NewError builds the payload for the first issue of a failed Result.
func NewError(target Target, issues []Issue) *Error {
	if len(issues) == 0 {
		return &Error{Message: "Invalid input", Target: target}
	}
	first := issues[0]
	return &Error{
		Message:  first.Message,
		Target:   target,
		Field:    first.Field,
		Received: first.Received,
		Expected: first.Expected,
	}
}

// typeName describes a decoded JSON, query or form value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any, []string:
		return "Array"
	case map[string]any:
		return "Object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func typeIssue(expected string, received any) *Issue {
	return &Issue{
		Message:  fmt.Sprintf("Invalid type: Expected %s but received %s", expected, typeName(received)),
		Received: typeName(received),
		Expected: expected,
	}
}
