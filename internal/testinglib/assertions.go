package testinglib

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
)

// matchers that assert an element is present, resp. absent. A .not link in
// the chain inverts the meaning.
var (
	presenceMatchers = map[string]bool{
		"toBeInTheDocument": true,
		"toBeTruthy":        true,
		"toBeDefined":       true,
	}
	absenceMatchers = map[string]bool{
		"toBeNull":  true,
		"toBeFalsy": true,
	}
)

// scoping helpers that narrow queries to a container instead of the
// whole document.
var scopingHelpers = []string{"within", "getQueriesForElement"}

// ExpectCall returns the nearest enclosing expect(...) call, or nil.
func ExpectCall(node *sitter.Node, src []byte) *sitter.Node {
	return jsast.NearestAncestorCall(node, src, "expect")
}

// assertionMatcher walks the member chain hanging off an expect(...) call
// and returns the final matcher name plus whether a .not link negates it.
// expect(x).not.toBeNull() yields ("toBeNull", true).
func assertionMatcher(expectCall *sitter.Node, src []byte) (string, bool) {
	negated := false
	for n := expectCall; ; {
		parent := n.Parent()
		if parent == nil || parent.Type() != "member_expression" {
			return "", false
		}
		prop := parent.ChildByFieldName("property")
		if prop == nil {
			return "", false
		}
		if prop.Content(src) == "not" {
			negated = !negated
			n = parent
			continue
		}
		return prop.Content(src), negated
	}
}

// IsPresenceAssertion reports whether the assertion hanging off expectCall
// expects the element to be present.
func IsPresenceAssertion(expectCall *sitter.Node, src []byte) bool {
	matcher, negated := assertionMatcher(expectCall, src)
	if negated {
		return absenceMatchers[matcher]
	}
	return presenceMatchers[matcher]
}

// IsAbsenceAssertion reports whether the assertion hanging off expectCall
// expects the element to be absent.
func IsAbsenceAssertion(expectCall *sitter.Node, src []byte) bool {
	matcher, negated := assertionMatcher(expectCall, src)
	if negated {
		return presenceMatchers[matcher]
	}
	return absenceMatchers[matcher]
}

// InsideScopingHelper reports whether a query callee identifier is scoped
// through within(...) (or getQueriesForElement): either invoked directly on
// the helper's result, within(el).queryByText(...), or nested somewhere
// inside a helper call's arguments.
func InsideScopingHelper(ident *sitter.Node, src []byte) bool {
	// within(el).queryByText: the helper call is the member object,
	// a sibling of the identifier rather than an ancestor.
	if parent := ident.Parent(); parent != nil && parent.Type() == "member_expression" {
		if obj := parent.ChildByFieldName("object"); obj != nil && obj.Type() == "call_expression" {
			name := jsast.CalleeName(obj, src)
			for _, helper := range scopingHelpers {
				if name == helper {
					return true
				}
			}
		}
	}
	return jsast.NearestAncestorCall(ident, src, scopingHelpers...) != nil
}
