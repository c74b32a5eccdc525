package ast

import "fmt"

// Location is a position in rule source text. It enables precise parse-error
// reporting with line and column information.
type Location struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "line:column"
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// IsValid returns true if the location has valid line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}
