package nolint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
)

func parseComments(t *testing.T, code string) *Manager {
	t.Helper()
	file, err := jsast.ParseSource(context.Background(), "page.test.js", []byte(code))
	require.NoError(t, err)
	t.Cleanup(file.Close)
	return ParseComments(file)
}

func TestDisableNextLine(t *testing.T) {
	mgr := parseComments(t, `
// eslint-disable-next-line testing-library/prefer-presence-queries
expect(queryByText('x')).toBeInTheDocument()
expect(queryByText('y')).toBeInTheDocument()
`)

	assert.True(t, mgr.Suppressed("prefer-presence-queries", 3))
	assert.False(t, mgr.Suppressed("prefer-presence-queries", 4))
	assert.False(t, mgr.Suppressed("no-debugging-utils", 3))
}

func TestDisableLine(t *testing.T) {
	mgr := parseComments(t, `
screen.debug() // eslint-disable-line no-debugging-utils
screen.debug()
`)

	assert.True(t, mgr.Suppressed("no-debugging-utils", 2))
	assert.False(t, mgr.Suppressed("no-debugging-utils", 3))
}

func TestDisableWithoutRulesAppliesToAll(t *testing.T) {
	mgr := parseComments(t, `
// eslint-disable-next-line
expect(queryByText('x')).toBeInTheDocument()
`)

	assert.True(t, mgr.Suppressed("prefer-presence-queries", 3))
	assert.True(t, mgr.Suppressed("no-debugging-utils", 3))
}

func TestDisableEnableBlock(t *testing.T) {
	mgr := parseComments(t, `
/* eslint-disable prefer-presence-queries */
expect(queryByText('a')).toBeInTheDocument()
expect(queryByText('b')).toBeInTheDocument()
/* eslint-enable prefer-presence-queries */
expect(queryByText('c')).toBeInTheDocument()
`)

	assert.True(t, mgr.Suppressed("prefer-presence-queries", 3))
	assert.True(t, mgr.Suppressed("prefer-presence-queries", 4))
	assert.False(t, mgr.Suppressed("prefer-presence-queries", 6))
}

func TestFileLevelDisable(t *testing.T) {
	mgr := parseComments(t, `/* eslint-disable */
expect(queryByText('a')).toBeInTheDocument()
screen.debug()
`)

	assert.True(t, mgr.Suppressed("prefer-presence-queries", 2))
	assert.True(t, mgr.Suppressed("no-debugging-utils", 3))
}

func TestCommaSeparatedRuleList(t *testing.T) {
	mgr := parseComments(t, `
// eslint-disable-next-line prefer-presence-queries, no-await-sync-queries
expect(queryByText('x')).toBeInTheDocument()
`)

	assert.True(t, mgr.Suppressed("prefer-presence-queries", 3))
	assert.True(t, mgr.Suppressed("no-await-sync-queries", 3))
	assert.False(t, mgr.Suppressed("no-debugging-utils", 3))
}

func TestUnrelatedCommentsIgnored(t *testing.T) {
	mgr := parseComments(t, `
// just a note about the next line
expect(queryByText('x')).toBeInTheDocument()
`)

	assert.False(t, mgr.Suppressed("prefer-presence-queries", 3))
}

func TestNilManager(t *testing.T) {
	var mgr *Manager
	assert.False(t, mgr.Suppressed("prefer-presence-queries", 1))
}
