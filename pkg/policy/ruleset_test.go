package policy

import (
	"errors"
	"strings"
	"testing"
)

func memberToken() *StaticToken {
	return &StaticToken{
		Roles: []string{"guest", "member"},
		APIAttributes: map[string]string{
			"user_id":    "u-1",
			"project_id": "p-2",
		},
	}
}

func TestRuleSet_Evaluate_Basic(t *testing.T) {
	// This test scenario comes from the goslo.policy test suite.
	req := NewRequest(memberToken()).WithTarget(TargetMap{
		"target.user_id": "u-1",
		"user_id":        "u-2",
		"some_number":    "1",
		"some_bool":      "True",
	})

	tests := []struct {
		rule string
		want bool
	}{
		{"@", true},
		{"!", false},
		{"role:member", true},
		{"not role:member", false},
		{"role:admin", false},
		{"role:admin or role:guest", true},
		{"role:admin and role:guest", false},
		{"user_id:u-1", true},
		{"user_id:u-2", false},
		{"'u-2':%(user_id)s", true},
		// Non-string values live on the right-hand side as their string
		// spellings; quoting them on the left is equivalent.
		{"'True':%(some_bool)s", true},
		{"'1':%(some_number)s", true},
		{"domain_id:%(does_not_exist)s", false},
		{"not (@ or @)", false},
		{"not @ or @", true},
		{"@ and (! or (not !))", true},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			rs := NewRuleSet()
			if err := rs.AddRule("test", tt.rule); err != nil {
				t.Fatalf("AddRule(%q) failed: %v", tt.rule, err)
			}
			if got := rs.Evaluate("test", req); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestRuleSet_Evaluate_RealisticRoles(t *testing.T) {
	// A Keystone-flavored policy excerpt, from the goslo.policy test suite.
	rules := map[string]string{
		"admin_required":         "role:admin",
		"cloud_admin":            "rule:admin_required and domain_id:admin_domain_id",
		"service_role":           "role:service",
		"service_or_admin":       "rule:admin_required or rule:service_role",
		"owner":                  "user_id:%(user_id)s or user_id:%(target.token.user_id)s",
		"service_admin_or_owner": "rule:service_or_admin or rule:owner",
	}

	rs := NewRuleSet()
	if err := rs.AddRules(rules); err != nil {
		t.Fatalf("AddRules() failed: %v", err)
	}

	serviceReq := NewRequest(&StaticToken{Roles: []string{"service"}})
	adminReq := NewRequest(&StaticToken{
		Roles:         []string{"admin"},
		APIAttributes: map[string]string{"domain_id": "admin_domain_id"},
	})
	userToken := &StaticToken{
		Roles:         []string{"member"},
		APIAttributes: map[string]string{"user_id": "u-1"},
	}
	ownReq := NewRequest(userToken).WithTarget(TargetMap{"user_id": "u-1"})
	otherReq := NewRequest(userToken).WithTarget(TargetMap{"user_id": "u-2"})

	tests := []struct {
		name string
		req  Request
		rule string
		want bool
	}{
		{"service is service_or_admin", serviceReq, "service_or_admin", true},
		{"undefined rule denies", serviceReq, "non_existent_rule", false},
		{"admin in admin domain is cloud_admin", adminReq, "cloud_admin", true},
		{"admin is service_admin_or_owner", adminReq, "service_admin_or_owner", true},
		{"owner of own target", ownReq, "service_admin_or_owner", true},
		{"not owner of another target", otherReq, "service_admin_or_owner", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rs.Evaluate(tt.rule, tt.req); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}
}

func TestRuleSet_AddRule_ParseError(t *testing.T) {
	rs := NewRuleSet()

	err := rs.AddRule("broken", "'foo bar':x")
	if err == nil {
		t.Fatal("AddRule() should fail on malformed rule text")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseErr.RuleName != "broken" {
		t.Errorf("RuleName = %q, want %q", parseErr.RuleName, "broken")
	}
	if !parseErr.Err.Location.IsValid() {
		t.Errorf("embedded error location %v should be valid", parseErr.Err.Location)
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("Error() = %q, should mention the rule name", err.Error())
	}

	// The failed name must not be defined.
	if got := rs.Evaluate("broken", NewRequest(memberToken())); got {
		t.Error("failed rule should evaluate to false (undefined)")
	}
}

func TestRuleSet_AddRule_ReplacesAndPreserves(t *testing.T) {
	rs := NewRuleSet()
	req := NewRequest(memberToken())

	if err := rs.AddRule("r", "@"); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}
	if !rs.Evaluate("r", req) {
		t.Fatal("rule @ should evaluate to true")
	}

	// Re-adding a name overwrites the previous expression.
	if err := rs.AddRule("r", "!"); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}
	if rs.Evaluate("r", req) {
		t.Error("overwritten rule should now evaluate to false")
	}

	// A parse failure leaves the existing rule untouched.
	if err := rs.AddRule("r", "not"); err == nil {
		t.Fatal("AddRule() should fail on malformed text")
	}
	if rs.Evaluate("r", req) {
		t.Error("rule should keep its previous expression after a failed add")
	}
}

func TestRuleSet_AddRules_PartialCommit(t *testing.T) {
	rs := NewRuleSet()
	req := NewRequest(memberToken())

	err := rs.AddRules(map[string]string{
		"good": "@",
		"bad":  "'foo bar':x",
	})
	if err == nil {
		t.Fatal("AddRules() should surface the malformed entry")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if parseErr.RuleName != "bad" {
		t.Errorf("RuleName = %q, want %q", parseErr.RuleName, "bad")
	}

	// Entries applied before the failure remain committed. Map iteration
	// order is unspecified, so "good" may or may not have been reached;
	// either state is within contract. What must hold: "bad" is undefined.
	if rs.Evaluate("bad", req) {
		t.Error("malformed rule must not be defined")
	}
}

type grantAllChecker struct{}

func (grantAllChecker) Check(*RuleSet, Request, string) bool { return true }

type denyAllChecker struct{}

func (denyAllChecker) Check(*RuleSet, Request, string) bool { return false }

func TestRuleSet_AddChecker(t *testing.T) {
	rs := NewRuleSet()
	rs.AddChecker("always", grantAllChecker{})
	req := NewRequest(&StaticToken{})

	if err := rs.AddRule("r", "always:anything"); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}
	if !rs.Evaluate("r", req) {
		t.Error("custom checker should grant")
	}

	// A later registration under the same name replaces the earlier one.
	rs.AddChecker("always", denyAllChecker{})
	if rs.Evaluate("r", req) {
		t.Error("replaced checker should deny")
	}
}

func TestRuleSet_UnregisteredCheckerFallsThrough(t *testing.T) {
	// An identifier that names no checker is looked up as a token API
	// attribute; if that also misses, the check is false.
	rs := NewRuleSet()
	if err := rs.AddRule("r", "no_such_checker:value"); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}

	if rs.Evaluate("r", NewRequest(&StaticToken{})) {
		t.Error("missing checker and attribute should deny")
	}

	token := &StaticToken{APIAttributes: map[string]string{"no_such_checker": "value"}}
	if !rs.Evaluate("r", NewRequest(token)) {
		t.Error("attribute fallthrough should match")
	}
}

func TestRuleSet_RuleChecker_UndefinedTarget(t *testing.T) {
	rs := NewRuleSet()
	if err := rs.AddRule("r", "rule:undefined_rule"); err != nil {
		t.Fatalf("AddRule() failed: %v", err)
	}
	if rs.Evaluate("r", NewRequest(&StaticToken{})) {
		t.Error("rule: check against an undefined rule should be false")
	}
}
