package lints

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/scope"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

var debuggingUtils = map[string]bool{
	"debug":                   true,
	"logTestingPlaygroundURL": true,
	"logDOM":                  true,
}

// NoDebuggingUtils flags calls to debugging helpers (debug, screen.debug,
// logTestingPlaygroundURL) left behind in committed tests. The fix removes
// the whole call statement.
func NoDebuggingUtils(filename string, file *jsast.File, _ *scope.Table, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	jsast.Inspect(file.Root, func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}
		callee := jsast.CalleeIdentifier(n)
		if callee == nil || !debuggingUtils[file.Text(callee)] {
			return true
		}

		issues = append(issues, tt.Issue{
			Rule:       "no-debugging-utils",
			Category:   "debugging",
			Filename:   file.Path,
			Message:    "remove debugging utility calls before committing tests",
			Start:      file.PositionOf(callee),
			End:        file.EndPositionOf(callee),
			Severity:   severity,
			Confidence: 1.0,
			Fixes:      removeStatementFix(n),
		})
		return true
	})

	return issues, nil
}

// removeStatementFix deletes the expression statement wrapping call, or
// just the call itself when it is not a standalone statement.
func removeStatementFix(call *sitter.Node) []tt.TextEdit {
	target := call
	if parent := call.Parent(); parent != nil && parent.Type() == "expression_statement" {
		target = parent
	}
	return []tt.TextEdit{{Start: target.StartByte(), End: target.EndByte(), NewText: ""}}
}
