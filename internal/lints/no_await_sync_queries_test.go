package lints

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/fixer"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
	"github.com/guicamillo/eslint-plugin-testing-library/internal/scope"
	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

func runAwaitRule(t *testing.T, code string) ([]tt.Issue, *jsast.File) {
	t.Helper()
	file, err := jsast.ParseSource(context.Background(), "page.test.js", []byte(code))
	require.NoError(t, err)
	t.Cleanup(file.Close)

	scopes := scope.Build(file.Root, file.Src)
	issues, err := NoAwaitSyncQueries(file.Path, file, scopes, tt.SeverityError)
	require.NoError(t, err)
	return issues, file
}

func TestNoAwaitSyncQueries(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected int
	}{
		{
			name:     "await on getBy query",
			code:     `async () => { await getByText('x') }`,
			expected: 1,
		},
		{
			name:     "await on queryBy query",
			code:     `async () => { await screen.queryByRole('button') }`,
			expected: 1,
		},
		{
			name:     "await on findBy query is fine",
			code:     `async () => { await findByText('x') }`,
			expected: 0,
		},
		{
			name:     "plain sync call is fine",
			code:     `getByText('x')`,
			expected: 0,
		},
		{
			name:     "await on unrelated call is fine",
			code:     `async () => { await fetchUser() }`,
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			issues, _ := runAwaitRule(t, tc.code)
			assert.Len(t, issues, tc.expected)
		})
	}
}

func TestNoAwaitSyncQueriesFix(t *testing.T) {
	code := `async () => { await getByText('x') }`
	issues, file := runAwaitRule(t, code)
	require.Len(t, issues, 1)

	fixed, err := fixer.Apply(file.Src, issues[0].Fixes)
	require.NoError(t, err)
	assert.Equal(t, `async () => { getByText('x') }`, string(fixed))
}
