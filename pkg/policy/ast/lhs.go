package ast

// LHSKind distinguishes the two forms a check's left-hand side can take.
type LHSKind string

const (
	// LHSLiteral is a quoted string constant, compared verbatim against the
	// resolved right-hand side.
	LHSLiteral LHSKind = "literal"

	// LHSIdentifier is an unquoted name resolved dynamically at evaluation
	// time: first against the checker registry, then as a token API
	// attribute.
	LHSIdentifier LHSKind = "identifier"
)

// LeftHandSide is the left half of a check. It is a value type and compares
// with ==.
type LeftHandSide struct {
	Kind  LHSKind
	Value string
}

// Literal returns a quoted-constant left-hand side.
func Literal(s string) LeftHandSide {
	return LeftHandSide{Kind: LHSLiteral, Value: s}
}

// Identifier returns an unquoted-name left-hand side.
func Identifier(s string) LeftHandSide {
	return LeftHandSide{Kind: LHSIdentifier, Value: s}
}

// IsLiteral reports whether the left-hand side is a quoted constant.
func (l LeftHandSide) IsLiteral() bool {
	return l.Kind == LHSLiteral
}

// String renders the left-hand side in its simplest rule-language form.
// Literals always render with single quotes, so a check parsed from double
// quotes round-trips to the single-quoted spelling.
func (l LeftHandSide) String() string {
	if l.Kind == LHSLiteral {
		return "'" + l.Value + "'"
	}
	return l.Value
}
