package policy

import (
	"fmt"

	"mercator-hq/ganymede/pkg/policy/parser"
)

// ParseError is returned by AddRule and AddRules when a rule's text does not
// parse. It carries the offending rule's name together with the underlying
// position-annotated grammar error.
type ParseError struct {
	RuleName string
	Err      *parser.Error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse rule %q: %s", e.RuleName, e.Err)
}

// Unwrap exposes the underlying grammar error for errors.As.
func (e *ParseError) Unwrap() error {
	return e.Err
}
