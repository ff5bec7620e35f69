// Package jsast parses JavaScript and TypeScript sources with tree-sitter
// and provides the traversal helpers the lint rules are written against.
package jsast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

// File is a parsed source file. Src backs all node text lookups; the tree
// must be released with Close once the file has been linted.
type File struct {
	Path string
	Src  []byte
	Tree *sitter.Tree
	Root *sitter.Node
}

func languageFor(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts":
		return typescript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	default:
		// .js, .jsx, .mjs, .cjs
		return javascript.GetLanguage()
	}
}

// ParseFile reads and parses the file at path.
func ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseSource(ctx, path, src)
}

// ParseSource parses src, selecting the grammar from path's extension.
func ParseSource(ctx context.Context, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	return &File{
		Path: path,
		Src:  src,
		Tree: tree,
		Root: tree.RootNode(),
	}, nil
}

// Close releases the underlying tree-sitter tree.
func (f *File) Close() {
	if f.Tree != nil {
		f.Tree.Close()
	}
}

// Text returns the source text covered by node.
func (f *File) Text(n *sitter.Node) string {
	return n.Content(f.Src)
}

// PositionOf converts a node's start point to a 1-based source position.
func (f *File) PositionOf(n *sitter.Node) types.Position {
	return types.Position{
		Filename: f.Path,
		Offset:   int(n.StartByte()),
		Line:     int(n.StartPoint().Row) + 1,
		Column:   int(n.StartPoint().Column) + 1,
	}
}

// EndPositionOf converts a node's end point to a 1-based source position.
func (f *File) EndPositionOf(n *sitter.Node) types.Position {
	return types.Position{
		Filename: f.Path,
		Offset:   int(n.EndByte()),
		Line:     int(n.EndPoint().Row) + 1,
		Column:   int(n.EndPoint().Column) + 1,
	}
}

// Inspect traverses the named nodes under root in preorder. If fn returns
// false for a node, its children are skipped.
func Inspect(root *sitter.Node, fn func(*sitter.Node) bool) {
	if root == nil {
		return
	}
	if !fn(root) {
		return
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		Inspect(root.NamedChild(i), fn)
	}
}

// SameNode reports whether two nodes denote the same source range. Node
// pointers returned by repeated Parent/Child walks are not comparable, so
// identity is checked by byte range and kind.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// CalleeIdentifier returns the identifier naming the callee of call, or nil.
// For member calls like screen.getByText(...) the property identifier is
// returned.
func CalleeIdentifier(call *sitter.Node) *sitter.Node {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return nil
	}
	switch fn.Type() {
	case "identifier":
		return fn
	case "member_expression":
		return fn.ChildByFieldName("property")
	}
	return nil
}

// CalleeName returns the base name a call is invoked under, or "".
func CalleeName(call *sitter.Node, src []byte) string {
	ident := CalleeIdentifier(call)
	if ident == nil {
		return ""
	}
	return ident.Content(src)
}

// NearestAncestorCall walks the ancestors of node and returns the nearest
// enclosing call expression invoked under one of the given names, or nil.
func NearestAncestorCall(node *sitter.Node, src []byte, names ...string) *sitter.Node {
	for n := node.Parent(); n != nil; n = n.Parent() {
		if n.Type() != "call_expression" {
			continue
		}
		name := CalleeName(n, src)
		for _, want := range names {
			if name == want {
				return n
			}
		}
	}
	return nil
}

// IsMemberProperty reports whether node is the property of a member
// expression (e.g. the getByText in screen.getByText).
func IsMemberProperty(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil || parent.Type() != "member_expression" {
		return false
	}
	return SameNode(parent.ChildByFieldName("property"), node)
}
