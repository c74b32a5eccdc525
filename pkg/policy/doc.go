// Package policy is an embeddable authorization-policy engine. It compiles
// small boolean expressions ("rules") written against request attributes and
// evaluates them against a concrete request to answer "may this token perform
// this action on this target?".
//
// The rule language mirrors the one used by OpenStack's oslo.policy. Rules
// are parsed by pkg/policy/parser, stored in a RuleSet under a name, and
// evaluated against a Request pairing a Token (identity facts about the
// caller) with a Target (facts about the object acted upon).
//
// # Basic Usage
//
//	rs := policy.NewRuleSet()
//	if err := rs.AddRule("owner", "user_id:%(user_id)s"); err != nil {
//	    log.Fatal(err)
//	}
//
//	token := &policy.StaticToken{
//	    Roles:         []string{"member"},
//	    APIAttributes: map[string]string{"user_id": "u-1"},
//	}
//	req := policy.NewRequest(token).WithTarget(policy.TargetMap{"user_id": "u-1"})
//
//	allowed := rs.Evaluate("owner", req)
//
// # Checks and Checkers
//
// Each lhs:rhs leaf in a rule is a check. An identifier left-hand side is
// resolved first against the registered checkers ("role" and "rule" are built
// in; hosts may register more via AddChecker), then as a token API attribute.
// A quoted left-hand side is a string literal compared verbatim against the
// resolved right-hand side.
//
// # Fail-Closed Semantics
//
// Evaluation never errors. An undefined rule name, a missing API attribute, a
// missing target attribute behind a %(name)s interpolation, or an
// unregistered checker name that also misses as an attribute all make the
// affected check false. Ambiguity about data availability denies rather than
// grants.
//
// # Concurrency
//
// The intended discipline is build-then-publish: construct and populate a
// RuleSet fully, then share it for concurrent read-only evaluation. Evaluate
// is safe to call from multiple goroutines as long as no AddRule/AddChecker
// call races with it and all registered checkers are themselves safe for
// concurrent use. Callers needing atomic policy reloads build a new RuleSet
// and swap the reference.
//
// The "rule" checker performs no cycle detection: a rule that directly or
// transitively references itself recurses until the stack is exhausted.
// Avoid cyclic references by construction.
package policy
