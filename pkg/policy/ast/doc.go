// Package ast provides the expression tree for parsed policy rules.
//
// A rule is a boolean expression over checks. The parser produces an
// Expression, the rule set stores it, and the evaluator walks it. Expressions
// are immutable once built: composite nodes own their children exclusively
// and nothing mutates a tree after parsing.
//
// # Core Types
//
// Expression: a node in the tree. Concrete types are Const (the @ and !
// literals), Check (an lhs:rhs leaf test), And, Or and Not.
//
// LeftHandSide: the left half of a check, either a quoted Literal compared
// verbatim or an unquoted Identifier resolved at evaluation time.
//
// Location: a 1-based line/column position in rule source text, used for
// parse-error reporting.
package ast
