package testinglib

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
)

func TestQueryVariantClassification(t *testing.T) {
	tests := []struct {
		name         string
		synchronized bool
		presence     bool
	}{
		{"getByText", true, true},
		{"getAllByRole", true, true},
		{"queryByText", true, false},
		{"queryAllByLabelText", true, false},
		{"findByText", false, false},
		{"findAllByRole", false, false},
		{"getBy", false, false},
		{"getSomething", false, false},
		{"render", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.synchronized, IsSynchronizedQuery(tt.name))
			assert.Equal(t, tt.presence, IsPresenceQuery(tt.name))
			if tt.synchronized {
				assert.Equal(t, !tt.presence, IsAbsenceQuery(tt.name))
			}
		})
	}
}

func TestVariantTarget(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"getByText", "queryByText"},
		{"queryByText", "getByText"},
		{"getAllByRole", "queryAllByRole"},
		{"queryAllByRole", "getAllByRole"},
		{"render", "render"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VariantTarget(tt.in))
	}
}

func parseAndFindCallee(t *testing.T, code, name string) (*jsast.File, *sitter.Node) {
	t.Helper()
	file, err := jsast.ParseSource(context.Background(), "page.test.js", []byte(code))
	require.NoError(t, err)
	t.Cleanup(file.Close)

	var found *sitter.Node
	jsast.Inspect(file.Root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "call_expression" && jsast.CalleeName(n, file.Src) == name {
			found = jsast.CalleeIdentifier(n)
			return false
		}
		return true
	})
	require.NotNil(t, found, "no call to %s", name)
	return file, found
}

func TestAssertionClassification(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		presence bool
		absence  bool
	}{
		{
			name:     "toBeInTheDocument",
			code:     `expect(getByText('x')).toBeInTheDocument()`,
			presence: true,
		},
		{
			name:     "toBeTruthy",
			code:     `expect(getByText('x')).toBeTruthy()`,
			presence: true,
		},
		{
			name:    "negated presence matcher",
			code:    `expect(queryByText('x')).not.toBeInTheDocument()`,
			absence: true,
		},
		{
			name:    "toBeNull",
			code:    `expect(queryByText('x')).toBeNull()`,
			absence: true,
		},
		{
			name:     "negated absence matcher",
			code:     `expect(getByText('x')).not.toBeNull()`,
			presence: true,
		},
		{
			name:     "double negation",
			code:     `expect(getByText('x')).not.not.toBeNull()`,
			absence:  true,
			presence: false,
		},
		{
			name: "unrelated matcher",
			code: `expect(getByText('x')).toHaveTextContent('x')`,
		},
		{
			name: "no matcher chain",
			code: `expect(getByText('x'))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, callee := parseAndFindCallee(t, tt.code, "expect")
			expectCall := callee.Parent()
			require.NotNil(t, expectCall)
			require.Equal(t, "call_expression", expectCall.Type())

			assert.Equal(t, tt.presence, IsPresenceAssertion(expectCall, file.Src))
			assert.Equal(t, tt.absence, IsAbsenceAssertion(expectCall, file.Src))
		})
	}
}

func TestExpectCall(t *testing.T) {
	file, callee := parseAndFindCallee(t, `expect(queryByText('x')).toBeNull()`, "queryByText")
	call := ExpectCall(callee, file.Src)
	require.NotNil(t, call)
	assert.Equal(t, "expect", jsast.CalleeName(call, file.Src))

	file2, callee2 := parseAndFindCallee(t, `const el = queryByText('x')`, "queryByText")
	assert.Nil(t, ExpectCall(callee2, file2.Src))
}

func TestInsideScopingHelper(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		callee string
		want   bool
	}{
		{
			name:   "member of within result",
			code:   `expect(within(el).queryByText('x')).toBeInTheDocument()`,
			callee: "queryByText",
			want:   true,
		},
		{
			name:   "inside within arguments",
			code:   `within(getByTestId('modal'))`,
			callee: "getByTestId",
			want:   true,
		},
		{
			name:   "plain call",
			code:   `expect(queryByText('x')).toBeNull()`,
			callee: "queryByText",
			want:   false,
		},
		{
			name:   "member of screen",
			code:   `expect(screen.getByText('x')).toBeInTheDocument()`,
			callee: "getByText",
			want:   false,
		},
		{
			name:   "getQueriesForElement alias",
			code:   `expect(getQueriesForElement(el).queryByRole('button')).toBeTruthy()`,
			callee: "queryByRole",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, callee := parseAndFindCallee(t, tt.code, tt.callee)
			assert.Equal(t, tt.want, InsideScopingHelper(callee, file.Src))
		})
	}
}
