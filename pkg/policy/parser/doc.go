// Package parser converts policy rule text into an expression tree.
//
// The rule language is the one used by OpenStack-style policy files:
//
//	expr  := expr "or" expr | expr "and" expr | "not" expr
//	       | "@" | "!" | "(" expr ")" | check
//	check := lhs ":" rhs
//
// "and" binds tighter than "or", "not" binds tighter than both, and
// parentheses override precedence. "@" is constant true, "!" constant false.
//
// The tokenization model is deliberately idiosyncratic and is reproduced
// exactly:
//
//   - Whitespace between tokens is insignificant, but whitespace inside a
//     check is a parse error ('foo bar':x does not parse), because the source
//     format is conceptually whitespace-tokenized before anything else.
//   - Only the first colon in a check splits lhs from rhs; the rhs may contain
//     further colons (role:compute:get_all) and runs to the next whitespace.
//   - The lhs may be single- or double-quoted, yielding a literal. Quoted
//     literals support no escape sequences; a backslash is a parse error.
//   - Keywords are matched without word boundaries, and the empty string is a
//     parse error: an always-true rule must be written explicitly as "@".
//
// Parse returns a *Error carrying the 1-based line/column of the failure and
// a description of what was expected there.
package parser
