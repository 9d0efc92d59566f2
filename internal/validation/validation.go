// Package validation provides the rule-set validation used by every usecase.
// A rule set accumulates field-level failures instead of short-circuiting, so a
// single response can report everything that is wrong with a request.
package validation

import "fmt"

// Kind classifies a validation failure. The HTTP layer maps it to a status code.
type Kind int

const (
	// KindBadRequest is the default classification for malformed input.
	KindBadRequest Kind = iota

	// KindNotFound marks failures where a referenced entity does not exist.
	KindNotFound

	// KindConflict marks failures where the request collides with existing state,
	// such as a uniqueness violation.
	KindConflict
)

// FieldError describes a single failed rule for one request property.
type FieldError struct {
	Property string `json:"property"`
	Message  string `json:"message"`
}

// Error is the accumulated result of running a rule set.
// Kind is the strongest classification among the failed rules: conflict wins over
// not-found, which wins over bad-request.
type Error struct {
	Kind   Kind
	Fields []FieldError
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Fields[0].Property, e.Fields[0].Message)
}

// Result collects rule failures while a rule set runs.
// The zero value is ready to use.
type Result struct {
	kind   Kind
	fields []FieldError
}

// Fail records a failed rule for the given property with the default
// bad-request classification.
func (r *Result) Fail(property, message string) {
	r.FailKind(KindBadRequest, property, message)
}

// FailKind records a failed rule with an explicit classification.
// The result keeps the strongest classification seen so far.
func (r *Result) FailKind(kind Kind, property, message string) {
	if kind > r.kind {
		r.kind = kind
	}
	r.fields = append(r.fields, FieldError{Property: property, Message: message})
}

// OK reports whether no rule has failed.
func (r *Result) OK() bool {
	return len(r.fields) == 0
}

// Err returns the accumulated *Error, or nil if every rule passed.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}
	return &Error{Kind: r.kind, Fields: r.fields}
}
