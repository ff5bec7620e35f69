package lints

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/scope"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/testinglib"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

// Message kinds reported by prefer-presence-queries.
const (
	MsgPresenceQueryExpected = "presence-query-expected"
	MsgAbsenceQueryExpected  = "absence-query-expected"
)

// correctionKind selects the direction of the variant rename.
type correctionKind int

const (
	correctToPresence correctionKind = iota // queryBy* -> getBy*
	correctToAbsence                        // getBy* -> queryBy*
)

// PresenceQueryOptions are the two independent toggles of the rule; both
// default to enabled.
type PresenceQueryOptions struct {
	Presence bool
	Absence  bool
}

// PreferPresenceQueries checks that getBy* queries are used when asserting
// an element's presence and queryBy* queries when asserting its absence.
//
// The decision is an ordered match per candidate callee, first row wins:
// no enclosing expect, or not a synchronized get*/query* variant, means no
// report; a presence context (presence assertion, or a call scoped through
// within) with an absence-style query reports presence-query-expected; an
// absence assertion with a presence-style query reports
// absence-query-expected, but never for calls scoped through within, since
// absence checks are only meaningful against the whole document.
func PreferPresenceQueries(filename string, file *jsast.File, scopes *scope.Table, opts PresenceQueryOptions, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	jsast.Inspect(file.Root, func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}
		callee := jsast.CalleeIdentifier(n)
		if callee == nil {
			return true
		}

		expectCall := testinglib.ExpectCall(callee, file.Src)
		if expectCall == nil {
			return true
		}
		name := file.Text(callee)
		if !testinglib.IsSynchronizedQuery(name) {
			return true
		}

		presenceStyle := testinglib.IsPresenceQuery(name)
		inHelper := testinglib.InsideScopingHelper(callee, file.Src)

		switch {
		case opts.Presence && !presenceStyle &&
			(testinglib.IsPresenceAssertion(expectCall, file.Src) || inHelper):
			issues = append(issues, queryIssue(file, callee, scopes, correctToPresence, severity))

		case opts.Absence && presenceStyle && !inHelper &&
			testinglib.IsAbsenceAssertion(expectCall, file.Src):
			issues = append(issues, queryIssue(file, callee, scopes, correctToAbsence, severity))
		}
		return true
	})

	return issues, nil
}

func queryIssue(file *jsast.File, callee *sitter.Node, scopes *scope.Table, kind correctionKind, severity tt.Severity) tt.Issue {
	name := file.Text(callee)
	target := testinglib.VariantTarget(name)
	fixes := buildQueryFix(file, callee, scopes)

	category := MsgPresenceQueryExpected
	message := "use getBy* queries when asserting element presence"
	if kind == correctToAbsence {
		category = MsgAbsenceQueryExpected
		message = "use queryBy* queries when asserting element absence"
	}

	confidence := 1.0
	note := fmt.Sprintf("replace %s with %s", name, target)
	if len(fixes) > 1 {
		confidence = 0.9
		note += "; the destructured declaration is updated to bind both names"
	}

	return tt.Issue{
		Rule:       "prefer-presence-queries",
		Category:   category,
		Filename:   file.Path,
		Message:    message,
		Note:       note,
		Start:      file.PositionOf(callee),
		End:        file.EndPositionOf(callee),
		Severity:   severity,
		Confidence: confidence,
		Fixes:      fixes,
	}
}

// buildQueryFix produces the edits correcting a flagged query call: always
// the call-site rename, plus a declaration-site edit when the originating
// destructured binding can be found and renaming introduces no duplicate
// pattern key.
func buildQueryFix(file *jsast.File, callee *sitter.Node, scopes *scope.Table) []tt.TextEdit {
	if callee.Type() != "identifier" && callee.Type() != "property_identifier" {
		return nil
	}

	name := file.Text(callee)
	target := testinglib.VariantTarget(name)
	edits := []tt.TextEdit{{
		Start:   callee.StartByte(),
		End:     callee.EndByte(),
		NewText: target,
	}}

	// queries reached through a scoping object (screen.getByText,
	// within(el).queryByText) have no destructured declaration to rewrite
	if jsast.IsMemberProperty(callee) {
		return edits
	}

	def := scopes.Innermost(callee).Resolve(name, file.Src)
	if def == nil {
		return edits
	}

	declTarget := declarationTarget(def, target, file.Src)
	if declTarget == nil {
		return edits
	}

	// the declaration keeps the original key and adds the corrected one,
	// so other usages of the original binding stay valid
	edits = append(edits, tt.TextEdit{
		Start:   declTarget.StartByte(),
		End:     declTarget.EndByte(),
		NewText: name + ", " + target,
	})
	return edits
}

// declarationTarget checks whether the resolved declaration identifier sits
// in a destructuring object pattern and whether candidate would collide
// with an existing sibling key. It returns the node to edit, or nil when
// the declaration must be left alone.
func declarationTarget(def *sitter.Node, candidate string, src []byte) *sitter.Node {
	pattern := def.Parent()
	if pattern == nil {
		return nil
	}
	// pair_pattern values and defaulted entries are one level deeper
	if pattern.Type() == "pair_pattern" || pattern.Type() == "object_assignment_pattern" {
		pattern = pattern.Parent()
		if pattern == nil {
			return nil
		}
	}
	if pattern.Type() != "object_pattern" {
		return nil
	}

	for i := 0; i < int(pattern.NamedChildCount()); i++ {
		entry := pattern.NamedChild(i)
		var key string
		switch entry.Type() {
		case "shorthand_property_identifier_pattern":
			key = entry.Content(src)
		case "pair_pattern":
			if k := entry.ChildByFieldName("key"); k != nil {
				key = k.Content(src)
			}
		case "object_assignment_pattern":
			if left := entry.ChildByFieldName("left"); left != nil {
				key = left.Content(src)
			}
		default:
			// rest entries have no key to collide with
			continue
		}
		if key == candidate {
			// a pattern cannot have two identical keys
			return nil
		}
	}
	return def
}
