package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/ganymede/pkg/policy/ast"
	"mercator-hq/ganymede/pkg/policy/parser"
	"mercator-hq/ganymede/pkg/telemetry/metrics"
)

// RuleSet is a container and evaluation engine for policy rules. It owns a
// mapping of rule name to parsed expression and a registry of checkers keyed
// by name.
//
// A RuleSet is not safe for concurrent mutation. Populate it fully, then
// share it for read-only evaluation; swap in a freshly built RuleSet to
// reload policies atomically.
type RuleSet struct {
	rules    map[string]ast.Expression
	checkers map[string]Checker

	logger       *slog.Logger
	policyMetric *metrics.PolicyMetrics
}

// NewRuleSet returns a new empty RuleSet. The built-in "rule" and "role"
// checkers are registered automatically.
func NewRuleSet() *RuleSet {
	rs := &RuleSet{
		rules:    make(map[string]ast.Expression),
		checkers: make(map[string]Checker),
		logger:   slog.Default(),
	}
	rs.AddChecker("rule", RuleChecker{})
	rs.AddChecker("role", RoleChecker{})
	return rs
}

// WithLogger sets the logger used for evaluation tracing. A nil logger keeps
// the current one.
func (rs *RuleSet) WithLogger(logger *slog.Logger) *RuleSet {
	if logger != nil {
		rs.logger = logger
	}
	return rs
}

// WithMetrics enables recording of evaluation metrics.
func (rs *RuleSet) WithMetrics(pm *metrics.PolicyMetrics) *RuleSet {
	rs.policyMetric = pm
	return rs
}

// AddChecker registers a checker under the given name. Registering a name
// again replaces the earlier checker; last write wins.
func (rs *RuleSet) AddChecker(name string, checker Checker) {
	rs.checkers[name] = checker
}

// AddRule parses a single rule and stores it under the given name, replacing
// any previous rule with that name. On a parse failure the rule set is left
// unchanged for that name and a *ParseError is returned.
func (rs *RuleSet) AddRule(name, text string) error {
	expr, perr := parser.Parse(text)
	if perr != nil {
		return &ParseError{RuleName: name, Err: perr}
	}
	rs.rules[name] = expr
	return nil
}

// AddRules parses multiple rules and adds them to the rule set. Entries are
// applied in map iteration order, which is unspecified: when several entries
// are malformed, which error is returned is likewise unspecified, and
// entries that succeeded before the failure remain committed.
func (rs *RuleSet) AddRules(rules map[string]string) error {
	for name, text := range rules {
		if err := rs.AddRule(name, text); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate evaluates the named rule against the given request. If no rule
// with that name exists, false is returned: undefined rules are implicitly
// denied, not an error.
func (rs *RuleSet) Evaluate(ruleName string, req Request) bool {
	start := time.Now()

	expr, defined := rs.rules[ruleName]
	result := false
	if defined {
		result = rs.evaluateExpr(req, expr)
	}

	if rs.logger.Enabled(context.Background(), slog.LevelDebug) {
		rs.logger.Debug("rule evaluated",
			"decision_id", uuid.NewString(),
			"rule", ruleName,
			"defined", defined,
			"result", result,
		)
	}
	if rs.policyMetric != nil {
		rs.policyMetric.RecordEvaluation(ruleName, result, time.Since(start))
	}

	return result
}

// evaluateExpr walks an expression tree. And/Or short-circuit; the overall
// result is a pure function of rule set, expression and request.
func (rs *RuleSet) evaluateExpr(req Request, expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Const:
		return e.Value
	case *ast.Check:
		return rs.evaluateCheck(req, e.LHS, e.RHS)
	case *ast.And:
		return rs.evaluateExpr(req, e.Left) && rs.evaluateExpr(req, e.Right)
	case *ast.Or:
		return rs.evaluateExpr(req, e.Left) || rs.evaluateExpr(req, e.Right)
	case *ast.Not:
		return !rs.evaluateExpr(req, e.Expr)
	default:
		// The ast node set is sealed; this is unreachable.
		panic(fmt.Sprintf("unknown expression type %T", expr))
	}
}

// evaluateCheck evaluates a single lhs:rhs leaf.
func (rs *RuleSet) evaluateCheck(req Request, lhs ast.LeftHandSide, rhs string) bool {
	// Expand %(foo)s syntax on the right-hand side. If an interpolated
	// attribute is missing, the entire check fails.
	rhs, ok := resolveTargetAttrRefs(rhs, req.Target)
	if !ok {
		return false
	}

	// Option 1: the LHS is a literal value.
	if lhs.IsLiteral() {
		return lhs.Value == rhs
	}

	// Option 2: the LHS is either a checker name or the name of an API
	// attribute. A missing attribute fails the check.
	if checker, ok := rs.checkers[lhs.Value]; ok {
		return checker.Check(rs, req, rhs)
	}
	value, ok := req.Token.GetAPIAttribute(lhs.Value)
	return ok && value == rhs
}
