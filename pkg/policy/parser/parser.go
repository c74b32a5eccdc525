package parser

import (
	"strings"
	"unicode/utf8"

	"mercator-hq/ganymede/pkg/policy/ast"
)

// Parse parses rule source text into an expression tree.
//
// It returns the concrete *Error type rather than error so the rule set can
// embed the position information together with the rule name; a nil *Error
// means success. The whole input must form one expression: trailing text
// after a complete expression is a parse error.
func Parse(input string) (ast.Expression, *Error) {
	p := &parser{input: input, failPos: -1}
	expr, ok := p.parseExpr()
	if ok {
		if p.pos == len(p.input) {
			return expr, nil
		}
		p.failAt(p.pos, "end of input")
	}
	return nil, p.newError()
}

// parser is a backtracking recursive-descent parser. Alternatives are tried
// in order and the position is rewound on failure; the furthest position any
// alternative reached is kept for error reporting.
type parser struct {
	input string
	pos   int

	failPos      int
	failExpected []string
}

// skipWS consumes spaces, tabs and newlines. These are the only whitespace
// characters the grammar knows.
func (p *parser) skipWS() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n':
			p.pos++
		default:
			return
		}
	}
}

// eat consumes lit if the input continues with it. Keywords are matched with
// no word-boundary requirement, faithful to the source grammar: "not" eats
// the first three characters of "nothing:x" and the remainder must then parse
// as an operand on its own.
func (p *parser) eat(lit string) bool {
	if strings.HasPrefix(p.input[p.pos:], lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

func (p *parser) eatByte(b byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

// parseExpr parses a whitespace-padded expression. It is the entry point and
// also the production inside parentheses.
func (p *parser) parseExpr() (ast.Expression, bool) {
	p.skipWS()
	expr, ok := p.parseOr()
	if !ok {
		return nil, false
	}
	p.skipWS()
	return expr, true
}

// parseOr handles the lowest precedence level, left-associatively. When an
// "or" keyword matches but its right operand does not parse, the keyword is
// given back and the expression ends before it.
func (p *parser) parseOr() (ast.Expression, bool) {
	left, ok := p.parseAnd()
	if !ok {
		return nil, false
	}
	for {
		save := p.pos
		p.skipWS()
		if !p.eat("or") {
			p.pos = save
			return left, true
		}
		p.skipWS()
		right, ok := p.parseAnd()
		if !ok {
			p.pos = save
			return left, true
		}
		left = &ast.Or{Left: left, Right: right}
	}
}

// parseAnd binds tighter than "or", also left-associatively.
func (p *parser) parseAnd() (ast.Expression, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		save := p.pos
		p.skipWS()
		if !p.eat("and") {
			p.pos = save
			return left, true
		}
		p.skipWS()
		right, ok := p.parseUnary()
		if !ok {
			p.pos = save
			return left, true
		}
		left = &ast.And{Left: left, Right: right}
	}
}

// parseUnary handles "not". The keyword is matched directly against the
// input with no intervening whitespace skip; the operand is an atom, which
// consumes its own surrounding whitespace. If the operand fails, the "not"
// match is undone and the whole run is retried as an atom.
func (p *parser) parseUnary() (ast.Expression, bool) {
	save := p.pos
	if p.eat("not") {
		if expr, ok := p.parseUnary(); ok {
			return &ast.Not{Expr: expr}, true
		}
		p.pos = save
	}
	return p.parseAtom()
}

// parseAtom parses a whitespace-padded atom: a constant, a parenthesized
// subexpression, or a check. The alternatives are ordered; a failed
// parenthesized group falls through to the check alternative, since '(' is a
// valid character in an unquoted left-hand side.
func (p *parser) parseAtom() (ast.Expression, bool) {
	p.skipWS()
	start := p.pos

	var expr ast.Expression
	switch {
	case p.eatByte('@'):
		expr = &ast.Const{Value: true}
	case p.eatByte('!'):
		expr = &ast.Const{Value: false}
	default:
		if p.eatByte('(') {
			if inner, ok := p.parseExpr(); ok && p.eatByte(')') {
				expr = inner
			} else {
				p.pos = start
			}
		}
		if expr == nil {
			check, ok := p.parseCheck()
			if !ok {
				p.failAt(start, "check or opening parenthesis")
				p.pos = start
				return nil, false
			}
			expr = check
		}
	}

	p.skipWS()
	return expr, true
}

// parseCheck parses lhs ":" rhs. The first colon separates the sides; the
// rhs is a greedy run of non-whitespace and may itself contain colons.
func (p *parser) parseCheck() (ast.Expression, bool) {
	save := p.pos
	lhs, ok := p.parseLHS()
	if !ok {
		p.pos = save
		return nil, false
	}
	if !p.eatByte(':') {
		p.pos = save
		return nil, false
	}
	rhs, ok := p.scanRHS()
	if !ok {
		p.pos = save
		return nil, false
	}
	return &ast.Check{LHS: lhs, RHS: rhs}, true
}

// parseLHS parses the left-hand side of a check: a single- or double-quoted
// literal, or an unquoted identifier. Quoting supports no escape sequences;
// the character set inside a literal is the same as for an identifier, so a
// backslash anywhere fails the quoted alternatives and (being excluded from
// identifiers too) the check as a whole.
func (p *parser) parseLHS() (ast.LeftHandSide, bool) {
	for _, quote := range [2]byte{'\'', '"'} {
		save := p.pos
		if !p.eatByte(quote) {
			continue
		}
		if s, ok := p.scanLHSChars(); ok && p.eatByte(quote) {
			return ast.Literal(s), true
		}
		p.pos = save
	}
	if s, ok := p.scanLHSChars(); ok {
		return ast.Identifier(s), true
	}
	return ast.LeftHandSide{}, false
}

// scanLHSChars consumes one or more characters excluding whitespace, the
// colon, both quote characters and the backslash.
func (p *parser) scanLHSChars() (string, bool) {
	start := p.pos
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', ':', '\'', '"', '\\':
			goto done
		}
		p.pos++
	}
done:
	if p.pos == start {
		return "", false
	}
	return p.input[start:p.pos], true
}

// scanRHS consumes one or more non-whitespace characters.
func (p *parser) scanRHS() (string, bool) {
	start := p.pos
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n':
			goto done
		}
		p.pos++
	}
done:
	if p.pos == start {
		return "", false
	}
	return p.input[start:p.pos], true
}

// failAt records an expectation at the given offset. Only the furthest
// failure is kept; expectations at the same offset accumulate.
func (p *parser) failAt(pos int, expected string) {
	if pos < p.failPos {
		return
	}
	if pos > p.failPos {
		p.failPos = pos
		p.failExpected = p.failExpected[:0]
	}
	for _, e := range p.failExpected {
		if e == expected {
			return
		}
	}
	p.failExpected = append(p.failExpected, expected)
}

// newError converts the recorded furthest failure into an *Error.
func (p *parser) newError() *Error {
	pos := p.failPos
	if pos < 0 {
		pos = p.pos
	}
	expected := p.failExpected
	if len(expected) == 0 {
		expected = []string{"expression"}
	}
	return &Error{
		Location: p.locate(pos),
		Expected: expected,
	}
}

// locate converts a byte offset into a 1-based line/column position. Columns
// count runes, not bytes.
func (p *parser) locate(pos int) ast.Location {
	line, lineStart := 1, 0
	for i := 0; i < pos; i++ {
		if p.input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return ast.Location{
		Line:   line,
		Column: utf8.RuneCountInString(p.input[lineStart:pos]) + 1,
	}
}
