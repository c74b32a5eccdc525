package policy

// Checker is a pluggable evaluator for checks with an identifier left-hand
// side. When a rule set encounters a check whose lhs matches a registered
// checker name, the checker decides the check's truth value; the resolved
// right-hand side is supplied in rhs.
//
// Checkers are invoked from concurrent evaluations without external
// synchronization: implementations must either hold no mutable state or
// synchronize internally.
type Checker interface {
	Check(rs *RuleSet, req Request, rhs string) bool
}

// RoleChecker matches if the request's token covers a role. The check
// "role:foo" returns whether the token reports the role named foo as held.
//
// NewRuleSet registers it under the name "role".
type RoleChecker struct{}

func (RoleChecker) Check(_ *RuleSet, req Request, rhs string) bool {
	return req.Token.HasRole(rhs)
}

// RuleChecker recurses into another rule of the same rule set. The check
// "rule:foo" returns the result of evaluating the rule foo against the same
// request, or false if no such rule exists. This is the mechanism for rule
// composition; the engine performs no cycle detection, so a cyclic rule
// reference recurses until the call stack is exhausted.
//
// NewRuleSet registers it under the name "rule".
type RuleChecker struct{}

func (RuleChecker) Check(rs *RuleSet, req Request, rhs string) bool {
	return rs.Evaluate(rhs, req)
}
