package lints

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/scope"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/testinglib"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

// NoAwaitSyncQueries flags await applied directly to a synchronous
// get*/query* call; only findBy* queries return promises. The fix drops
// the await keyword.
func NoAwaitSyncQueries(filename string, file *jsast.File, _ *scope.Table, severity tt.Severity) ([]tt.Issue, error) {
	var issues []tt.Issue

	jsast.Inspect(file.Root, func(n *sitter.Node) bool {
		if n.Type() != "await_expression" || n.NamedChildCount() == 0 {
			return true
		}
		call := n.NamedChild(0)
		if call.Type() != "call_expression" {
			return true
		}
		callee := jsast.CalleeIdentifier(call)
		if callee == nil || !testinglib.IsSynchronizedQuery(file.Text(callee)) {
			return true
		}

		issues = append(issues, tt.Issue{
			Rule:       "no-await-sync-queries",
			Category:   "async",
			Filename:   file.Path,
			Message:    "await is not needed on synchronous queries; use findBy* for async lookups",
			Note:       "remove the await keyword",
			Start:      file.PositionOf(n),
			End:        file.EndPositionOf(n),
			Severity:   severity,
			Confidence: 1.0,
			Fixes: []tt.TextEdit{{
				Start:   n.StartByte(),
				End:     call.StartByte(),
				NewText: "",
			}},
		})
		return true
	})

	return issues, nil
}
