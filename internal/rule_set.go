package internal

import (
	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/lints"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/scope"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the parsed file and returns a slice of Issues.
	Check(filename string, file *jsast.File, scopes *scope.Table) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)

	// SetOption applies a rule-specific boolean toggle. Rules without
	// options ignore unknown keys.
	SetOption(key string, enabled bool)
}

// PreferPresenceQueriesRule enforces getBy* in presence assertions and
// queryBy* in absence assertions, with auto-fix.
type PreferPresenceQueriesRule struct {
	severity tt.Severity
	presence bool
	absence  bool
}

func NewPreferPresenceQueriesRule() LintRule {
	return &PreferPresenceQueriesRule{
		severity: tt.SeverityError,
		presence: true,
		absence:  true,
	}
}

func (r *PreferPresenceQueriesRule) Check(filename string, file *jsast.File, scopes *scope.Table) ([]tt.Issue, error) {
	opts := lints.PresenceQueryOptions{Presence: r.presence, Absence: r.absence}
	return lints.PreferPresenceQueries(filename, file, scopes, opts, r.severity)
}

func (r *PreferPresenceQueriesRule) Name() string { return "prefer-presence-queries" }

func (r *PreferPresenceQueriesRule) Severity() tt.Severity     { return r.severity }
func (r *PreferPresenceQueriesRule) SetSeverity(s tt.Severity) { r.severity = s }

func (r *PreferPresenceQueriesRule) SetOption(key string, enabled bool) {
	switch key {
	case "presence":
		r.presence = enabled
	case "absence":
		r.absence = enabled
	}
}

// NoDebuggingUtilsRule flags leftover debugging helper calls.
type NoDebuggingUtilsRule struct {
	severity tt.Severity
}

func NewNoDebuggingUtilsRule() LintRule {
	return &NoDebuggingUtilsRule{severity: tt.SeverityWarning}
}

func (r *NoDebuggingUtilsRule) Check(filename string, file *jsast.File, scopes *scope.Table) ([]tt.Issue, error) {
	return lints.NoDebuggingUtils(filename, file, scopes, r.severity)
}

func (r *NoDebuggingUtilsRule) Name() string { return "no-debugging-utils" }

func (r *NoDebuggingUtilsRule) Severity() tt.Severity     { return r.severity }
func (r *NoDebuggingUtilsRule) SetSeverity(s tt.Severity) { r.severity = s }
func (r *NoDebuggingUtilsRule) SetOption(string, bool)    {}

// NoAwaitSyncQueriesRule flags await on synchronous queries.
type NoAwaitSyncQueriesRule struct {
	severity tt.Severity
}

func NewNoAwaitSyncQueriesRule() LintRule {
	return &NoAwaitSyncQueriesRule{severity: tt.SeverityError}
}

func (r *NoAwaitSyncQueriesRule) Check(filename string, file *jsast.File, scopes *scope.Table) ([]tt.Issue, error) {
	return lints.NoAwaitSyncQueries(filename, file, scopes, r.severity)
}

func (r *NoAwaitSyncQueriesRule) Name() string { return "no-await-sync-queries" }

func (r *NoAwaitSyncQueriesRule) Severity() tt.Severity     { return r.severity }
func (r *NoAwaitSyncQueriesRule) SetSeverity(s tt.Severity) { r.severity = s }
func (r *NoAwaitSyncQueriesRule) SetOption(string, bool)    {}
