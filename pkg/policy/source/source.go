package source

import (
	"context"
	"fmt"

	"mercator-hq/ganymede/pkg/policy"
)

// Source provides rule texts to be parsed into a rule set.
type Source interface {
	// LoadRules returns all rules from the source as a mapping of rule name
	// to rule text.
	LoadRules(ctx context.Context) (map[string]string, error)
}

// Apply loads all rules from the source into the rule set. Rule texts are
// parsed as they are added; a parse failure surfaces as a *policy.ParseError
// carrying the rule name and position. Rules added before the failure remain
// committed.
func Apply(ctx context.Context, src Source, rs *policy.RuleSet) error {
	rules, err := src.LoadRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	return rs.AddRules(rules)
}
