package players

import (
	"errors"
	"fmt"
)

// ErrValidation marks every rejection produced by Validate.
var ErrValidation = errors.New("invalid player")

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validate checks required fields, enum membership and counter bounds.
// Every store calls it on add and update so backends cannot drift apart.
func (p Player) Validate() error {
	if p.FirstName == "" {
		return &ValidationError{Field: "firstName", Reason: "is required"}
	}
	if p.LastName == "" {
		return &ValidationError{Field: "lastName", Reason: "is required"}
	}
	if p.Position == "" {
		return &ValidationError{Field: "position", Reason: "is required"}
	}
	if !p.Position.Valid() {
		return &ValidationError{Field: "position", Reason: fmt.Sprintf("%q is not a valid position", p.Position)}
	}
	if p.Team == "" {
		return &ValidationError{Field: "team", Reason: "is required"}
	}
	if !p.Team.Valid() {
		return &ValidationError{Field: "team", Reason: fmt.Sprintf("%q is not a valid team", p.Team)}
	}
	counters := []struct {
		name  string
		value int
	}{
		{"appearances", p.Appearances},
		{"goals", p.Goals},
		{"saves", p.Saves},
		{"cleanSheets", p.CleanSheets},
	}
	for _, c := range counters {
		if c.value < 0 {
			return &ValidationError{Field: c.name, Reason: "must not be negative"}
		}
	}
	return nil
}
