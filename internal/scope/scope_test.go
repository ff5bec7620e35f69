package scope

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/jsast"
)

func buildFromSource(t *testing.T, code string) (*jsast.File, *Table) {
	t.Helper()
	file, err := jsast.ParseSource(context.Background(), "page.test.js", []byte(code))
	require.NoError(t, err)
	t.Cleanup(file.Close)
	return file, Build(file.Root, file.Src)
}

// findCallee returns the callee identifier of the first call invoked under
// name.
func findCallee(t *testing.T, file *jsast.File, name string) *sitter.Node {
	t.Helper()
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
	require.NotNil(t, found, "no call to %s in source", name)
	return found
}

func TestResolveDestructuredBinding(t *testing.T) {
	code := `
const { getByText, queryByRole } = render(component)
getByText('hello')
`
	file, table := buildFromSource(t, code)

	def := table.Root().Resolve("getByText", file.Src)
	require.NotNil(t, def)
	assert.Equal(t, "getByText", file.Text(def))
	assert.Equal(t, "shorthand_property_identifier_pattern", def.Type())

	assert.NotNil(t, table.Root().Resolve("queryByRole", file.Src))
	assert.Nil(t, table.Root().Resolve("findByText", file.Src))
}

func TestResolveWalksOuterScopes(t *testing.T) {
	code := `
const { getByText } = render(component)
test('it renders', () => {
  getByText('hello')
})
`
	file, table := buildFromSource(t, code)

	callee := findCallee(t, file, "getByText")
	def := table.Innermost(callee).Resolve("getByText", file.Src)
	require.NotNil(t, def)
	assert.Equal(t, "shorthand_property_identifier_pattern", def.Type())
}

func TestInnerDeclarationShadowsOuter(t *testing.T) {
	code := `
const { getByText } = render(outer)
test('scoped', () => {
  const { getByText } = render(inner)
  getByText('hello')
})
`
	file, table := buildFromSource(t, code)

	callee := findCallee(t, file, "getByText")
	def := table.Innermost(callee).Resolve("getByText", file.Src)
	require.NotNil(t, def)

	// the def must come from the inner render call's pattern
	outer := table.Root().Resolve("getByText", file.Src)
	require.NotNil(t, outer)
	assert.NotEqual(t, outer.StartByte(), def.StartByte())
	assert.Greater(t, def.StartByte(), outer.StartByte())
}

func TestVarHoistsToFunctionScope(t *testing.T) {
	code := `
function run() {
  if (ready) {
    var result = compute()
  }
  result
}
`
	file, table := buildFromSource(t, code)

	callee := findCallee(t, file, "compute")
	sc := table.Innermost(callee)
	def := sc.Resolve("result", file.Src)
	require.NotNil(t, def)

	// the binding lives on the function scope, not the if block
	var blockScope *Scope
	for cur := sc; cur != nil; cur = cur.Outer {
		if _, ok := cur.Bindings["result"]; ok {
			blockScope = cur
			break
		}
	}
	require.NotNil(t, blockScope)
	assert.True(t, blockScope.fn)
}

func TestBindsParametersAndNestedPatterns(t *testing.T) {
	code := `
function handler(event, { target, currentTarget: current }, ...rest) {
  target
}
const [first, { second }] = pairs
`
	file, table := buildFromSource(t, code)

	inner := table.Innermost(findNamedNode(t, file, "identifier", "target"))
	for _, name := range []string{"event", "target", "current", "rest"} {
		assert.NotNil(t, inner.Resolve(name, file.Src), "parameter %s not bound", name)
	}

	root := table.Root()
	assert.NotNil(t, root.Resolve("first", file.Src))
	assert.NotNil(t, root.Resolve("second", file.Src))
}

func TestBindsImports(t *testing.T) {
	code := `
import { render, screen as scr } from '@testing-library/react'
import util from 'util'
render(component)
`
	file, table := buildFromSource(t, code)

	root := table.Root()
	assert.NotNil(t, root.Resolve("render", file.Src))
	assert.NotNil(t, root.Resolve("scr", file.Src))
	assert.NotNil(t, root.Resolve("util", file.Src))
	assert.Nil(t, root.Resolve("screen", file.Src))
}

func TestResolveOnNilScope(t *testing.T) {
	var sc *Scope
	assert.Nil(t, sc.Resolve("anything", nil))
}

func findNamedNode(t *testing.T, file *jsast.File, nodeType, text string) *sitter.Node {
	t.Helper()
	var found *sitter.Node
	jsast.Inspect(file.Root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == nodeType && file.Text(n) == text {
			found = n
			return false
		}
		return true
	})
	require.NotNil(t, found, "no %s node %q in source", nodeType, text)
	return found
}
