package parser

import (
	"fmt"
	"strings"

	"mercator-hq/ganymede/pkg/policy/ast"
)

// Error is a parse error with the source position of the failure and a
// description of the tokens that would have been valid there. The position is
// the furthest point the parser reached before giving up, which is the most
// useful location when the grammar backtracks.
type Error struct {
	Location ast.Location
	Expected []string // Descriptions of acceptable input at Location
}

// Error implements the error interface.
// Format: "parse error at line:column: expected X or Y"
func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s: expected %s", e.Location, strings.Join(e.Expected, " or "))
}
