// Package form turns raw form submissions into validated model records.
// Every check runs on each submission and all failures are reported
// together, so a single response can list every problem.
package form

import (
	"fmt"
	"strings"
)

// Kind classifies a field error.
type Kind int

const (
	// MissingField means a required value was absent or empty.
	MissingField Kind = iota + 1
	// InvalidChoice means a value is outside its closed set of choices.
	InvalidChoice
	// InvalidFormat means a value is present but malformed.
	InvalidFormat
)

func (k Kind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidChoice:
		return "InvalidChoice"
	case InvalidFormat:
		return "InvalidFormat"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// FieldError describes one problem with one submitted field.  Value is
// only set for InvalidChoice.
type FieldError struct {
	Kind  Kind
	Field string
	Value string
}

func (e FieldError) Error() string {
	switch e.Kind {
	case MissingField:
		return e.Field + " is required"
	case InvalidChoice:
		return fmt.Sprintf("%s: %q is not a valid choice", e.Field, e.Value)
	default:
		return e.Field + " has an invalid format"
	}
}

// Errors collects every field error of one submission.
type Errors []FieldError

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Field returns the errors reported for one field.
func (es Errors) Field(name string) []FieldError {
	var out []FieldError
	for _, e := range es {
		if e.Field == name {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns one human readable line per error.
func (es Errors) Messages() []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Error())
	}
	return out
}
