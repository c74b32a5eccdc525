package policy

import "strings"

// resolveTargetAttrRefs expands the %(name)s target-attribute reference on
// the right-hand side of a check.
//
// Only a single interpolation spanning the entire string is recognized. Any
// other input, including text that merely contains %(...)s as a substring, is
// returned verbatim. If the referenced target attribute does not exist, the
// second return value is false and the whole check fails.
func resolveTargetAttrRefs(input string, target Target) (string, bool) {
	stripped, ok := strings.CutPrefix(input, "%(")
	if !ok {
		return input, true
	}
	attrName, ok := strings.CutSuffix(stripped, ")s")
	if !ok {
		return input, true
	}
	return target.GetAttribute(attrName)
}
