// Package nolint suppresses issues based on eslint-style disable comments
// in the linted JavaScript/TypeScript source:
//
//	// eslint-disable-next-line testing-library/prefer-presence-queries
//	// eslint-disable-line no-debugging-utils
//	/* eslint-disable */ ... /* eslint-enable */
//
// Rule lists are comma separated; an empty list disables every rule. The
// conventional "testing-library/" plugin prefix is accepted and stripped.
package nolint

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
)

const (
	disableNextLine = "eslint-disable-next-line"
	disableLine     = "eslint-disable-line"
	disableBlock    = "eslint-disable"
	enableBlock     = "eslint-enable"

	pluginPrefix = "testing-library/"
)

// scope is a line range where a set of rules is disabled. An empty rule
// set applies to all rules.
type scope struct {
	startLine int
	endLine   int
	rules     map[string]struct{}
}

func (s scope) covers(rule string, line int) bool {
	if line < s.startLine || line > s.endLine {
		return false
	}
	if len(s.rules) == 0 {
		return true
	}
	_, ok := s.rules[rule]
	return ok
}

// Manager holds the disabled scopes of one file.
type Manager struct {
	scopes []scope
}

// Suppressed reports whether rule is disabled at the given 1-based line.
func (m *Manager) Suppressed(rule string, line int) bool {
	if m == nil {
		return false
	}
	for _, s := range m.scopes {
		if s.covers(rule, line) {
			return true
		}
	}
	return false
}

type directive struct {
	keyword string
	rules   map[string]struct{}
	line    int
}

// ParseComments scans the file's comment nodes and builds the suppression
// scopes. Malformed directives are ignored.
func ParseComments(file *jsast.File) *Manager {
	var directives []directive
	lastLine := int(file.Root.EndPoint().Row) + 1

	jsast.Inspect(file.Root, func(n *sitter.Node) bool {
		if n.Type() != "comment" {
			return true
		}
		if d, ok := parseComment(file.Text(n), int(n.StartPoint().Row)+1); ok {
			directives = append(directives, d)
		}
		return true
	})

	sort.Slice(directives, func(i, j int) bool { return directives[i].line < directives[j].line })

	mgr := &Manager{}
	open := make(map[int]bool) // indexes of still-open block scopes
	for _, d := range directives {
		switch d.keyword {
		case disableNextLine:
			mgr.scopes = append(mgr.scopes, scope{startLine: d.line + 1, endLine: d.line + 1, rules: d.rules})
		case disableLine:
			mgr.scopes = append(mgr.scopes, scope{startLine: d.line, endLine: d.line, rules: d.rules})
		case disableBlock:
			mgr.scopes = append(mgr.scopes, scope{startLine: d.line, endLine: lastLine, rules: d.rules})
			open[len(mgr.scopes)-1] = true
		case enableBlock:
			for idx := range open {
				if enableCloses(mgr.scopes[idx].rules, d.rules) {
					mgr.scopes[idx].endLine = d.line
					delete(open, idx)
				}
			}
		}
	}
	return mgr
}

// enableCloses reports whether an eslint-enable directive with the given
// rules closes a block disabling disabled.
func enableCloses(disabled, enabled map[string]struct{}) bool {
	if len(enabled) == 0 {
		return true
	}
	if len(disabled) == 0 {
		return false
	}
	for rule := range enabled {
		if _, ok := disabled[rule]; ok {
			return true
		}
	}
	return false
}

func parseComment(text string, line int) (directive, bool) {
	text = strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(text, "//"):
		text = strings.TrimSpace(strings.TrimPrefix(text, "//"))
	case strings.HasPrefix(text, "/*"):
		text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		text = strings.TrimSpace(text)
	}

	// longest keyword first so eslint-disable does not shadow the others
	for _, keyword := range []string{disableNextLine, disableLine, enableBlock, disableBlock} {
		if text == keyword {
			return directive{keyword: keyword, rules: map[string]struct{}{}, line: line}, true
		}
		if strings.HasPrefix(text, keyword+" ") {
			return directive{keyword: keyword, rules: parseRuleList(text[len(keyword)+1:]), line: line}, true
		}
	}
	return directive{}, false
}

func parseRuleList(list string) map[string]struct{} {
	rules := make(map[string]struct{})
	for _, rule := range strings.Split(list, ",") {
		rule = strings.TrimSpace(rule)
		rule = strings.TrimPrefix(rule, pluginPrefix)
		if rule != "" {
			rules[rule] = struct{}{}
		}
	}
	return rules
}
