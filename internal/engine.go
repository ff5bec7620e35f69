package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/nolint"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/scope"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	ignoredPaths []string
	rules        map[string]LintRule
}

// NewEngine creates a new lint engine with the default rules, adjusted by
// the given configuration.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{}
	engine.applyRules(rules)
	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"prefer-presence-queries": NewPreferPresenceQueriesRule,
	"no-debugging-utils":      NewNoDebuggingUtilsRule,
	"no-await-sync-queries":   NewNoAwaitSyncQueriesRule,
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	for key, cfg := range rules {
		rule := e.findRule(key)
		if rule == nil {
			newRuleCstr := allRuleConstructors[key]
			if newRuleCstr == nil {
				// Unknown rule, continue to the next one
				continue
			}
			rule = newRuleCstr()
			e.rules[key] = rule
		}
		if cfg.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		rule.SetSeverity(cfg.Severity)
		for name, enabled := range cfg.Options {
			rule.SetOption(name, enabled)
		}
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.pathIgnored(filename) {
		return nil, nil
	}

	file, err := jsast.ParseFile(context.Background(), filename)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	defer file.Close()

	return e.runRules(filename, file)
}

// RunSource applies all lint rules to the given source and returns a slice
// of Issues. The tsx grammar is used, which accepts plain JavaScript too.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	file, err := jsast.ParseSource(context.Background(), "source.test.tsx", source)
	if err != nil {
		return nil, fmt.Errorf("error parsing source: %w", err)
	}
	defer file.Close()

	return e.runRules(file.Path, file)
}

func (e *Engine) runRules(filename string, file *jsast.File) ([]tt.Issue, error) {
	scopes := scope.Build(file.Root, file.Src)
	nolintMgr := nolint.ParseComments(file)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			if e.ignoredRules[r.Name()] || r.Severity() == tt.SeverityOff {
				return
			}
			issues, err := r.Check(filename, file, scopes)
			if err != nil {
				return
			}

			kept := filterSuppressed(issues, nolintMgr)

			mu.Lock()
			allIssues = append(allIssues, kept...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	sort.Slice(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Line != allIssues[j].Start.Line {
			return allIssues[i].Start.Line < allIssues[j].Start.Line
		}
		return allIssues[i].Start.Column < allIssues[j].Start.Column
	})

	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

func (e *Engine) IgnorePath(path string) {
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

func (e *Engine) pathIgnored(path string) bool {
	clean := filepath.Clean(path)
	for _, ignored := range e.ignoredPaths {
		if clean == ignored || strings.HasPrefix(clean, ignored+string(filepath.Separator)) {
			return true
		}
		if ok, _ := filepath.Match(ignored, filepath.Base(clean)); ok {
			return true
		}
	}
	return false
}

// filterSuppressed drops issues disabled by eslint comments.
func filterSuppressed(issues []tt.Issue, mgr *nolint.Manager) []tt.Issue {
	if mgr == nil {
		return issues
	}
	kept := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.Suppressed(issue.Rule, issue.Start.Line) {
			kept = append(kept, issue)
		}
	}
	return kept
}
