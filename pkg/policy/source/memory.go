package source

import (
	"context"
	"maps"
)

// Memory is an in-memory rule source, mainly for tests and for hosts that
// assemble rule texts themselves.
type Memory struct {
	rules map[string]string
}

// NewMemory creates a new in-memory rule source.
func NewMemory(rules map[string]string) *Memory {
	return &Memory{rules: rules}
}

// LoadRules returns a copy of the rules stored in memory.
func (s *Memory) LoadRules(ctx context.Context) (map[string]string, error) {
	return maps.Clone(s.rules), nil
}

// SetRules replaces the rules in memory (for testing).
func (s *Memory) SetRules(rules map[string]string) {
	s.rules = rules
}
