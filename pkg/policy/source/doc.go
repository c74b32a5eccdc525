// Package source provides rule-text sources for populating a policy.RuleSet.
//
// A Source yields a mapping of rule name to rule text. Three implementations
// are provided: Memory (fixed in-process rules), File (a YAML or JSON policy
// file, or a directory of them) and SQLite (a policy_rules table). Apply
// loads a source into a rule set in one call.
//
// Sources load once; they do not watch for changes. Callers needing a policy
// reload build a new RuleSet, apply the source again, and swap the reference.
package source
