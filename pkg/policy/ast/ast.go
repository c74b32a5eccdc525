package ast

import "fmt"

// Expression is a node in a parsed rule's expression tree.
type Expression interface {
	fmt.Stringer

	// Equal reports whether two expression trees are structurally identical.
	Equal(other Expression) bool

	// sealed keeps the set of node types closed so the evaluator's type
	// switch stays exhaustive.
	sealed()
}

// Const is a boolean literal: "@" is true, "!" is false.
type Const struct {
	Value bool
}

// Check is a single lhs:rhs leaf test. RHS is raw, uninterpreted text; it may
// contain further colons (only the first colon in the source separates lhs
// from rhs) and may be a %(attr)s interpolation resolved at evaluation time.
type Check struct {
	LHS LeftHandSide
	RHS string
}

// And is the conjunction of two subexpressions.
type And struct {
	Left, Right Expression
}

// Or is the disjunction of two subexpressions.
type Or struct {
	Left, Right Expression
}

// Not negates a subexpression.
type Not struct {
	Expr Expression
}

func (*Const) sealed() {}
func (*Check) sealed() {}
func (*And) sealed()   {}
func (*Or) sealed()    {}
func (*Not) sealed()   {}

// Equal reports whether other is a Const with the same value.
func (c *Const) Equal(other Expression) bool {
	o, ok := other.(*Const)
	return ok && o.Value == c.Value
}

// Equal reports whether other is a Check with the same lhs and rhs.
func (c *Check) Equal(other Expression) bool {
	o, ok := other.(*Check)
	return ok && o.LHS == c.LHS && o.RHS == c.RHS
}

// Equal reports whether other is an And with structurally equal operands.
func (a *And) Equal(other Expression) bool {
	o, ok := other.(*And)
	return ok && a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
}

// Equal reports whether other is an Or with structurally equal operands.
func (o *Or) Equal(other Expression) bool {
	e, ok := other.(*Or)
	return ok && o.Left.Equal(e.Left) && o.Right.Equal(e.Right)
}

// Equal reports whether other is a Not with a structurally equal operand.
func (n *Not) Equal(other Expression) bool {
	o, ok := other.(*Not)
	return ok && n.Expr.Equal(o.Expr)
}

// String renders the expression in its simplest form in the rule language.
// Because "and" binds tighter than "or", an Or operand inside an And is the
// only place that needs parentheses.
func (c *Const) String() string {
	if c.Value {
		return "@"
	}
	return "!"
}

func (c *Check) String() string {
	return c.LHS.String() + ":" + c.RHS
}

func (n *Not) String() string {
	return "not " + n.Expr.String()
}

func (o *Or) String() string {
	return o.Left.String() + " or " + o.Right.String()
}

func (a *And) String() string {
	left := a.Left.String()
	if _, ok := a.Left.(*Or); ok {
		left = "(" + left + ")"
	}
	right := a.Right.String()
	if _, ok := a.Right.(*Or); ok {
		right = "(" + right + ")"
	}
	return left + " and " + right
}
