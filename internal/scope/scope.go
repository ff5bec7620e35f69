// Package scope builds lexical scope chains for parsed JavaScript and
// TypeScript files. The tree is read-only for rules: they look bindings up,
// they never mutate them.
package scope

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Binding associates a variable name with its declaration-site identifiers.
// A name declared more than once in a scope accumulates multiple defs.
type Binding struct {
	Name string
	Defs []*sitter.Node
}

// Scope is a lexical scope: a variable table plus a link to the enclosing
// scope. fn marks function (and program) scopes, the hoist targets for var
// declarations.
type Scope struct {
	Node     *sitter.Node
	Outer    *Scope
	Bindings map[string]*Binding

	fn bool
}

// Resolve finds the declaration identifier for name, searching this scope
// and then the enclosing ones. The first scope whose table contains the
// binding decides the result: the def whose text equals name exactly is
// returned, and if no def matches the lookup stops with nil rather than
// continuing outward (the binding still shadows outer scopes).
//
// Scope chains are shallow and acyclic, so this is a plain loop over the
// Outer links.
func (s *Scope) Resolve(name string, src []byte) *sitter.Node {
	for cur := s; cur != nil; cur = cur.Outer {
		binding, ok := cur.Bindings[name]
		if !ok {
			continue
		}
		for _, def := range binding.Defs {
			if def.Content(src) == name {
				return def
			}
		}
		return nil
	}
	return nil
}

func (s *Scope) hoistTarget() *Scope {
	for cur := s; cur != nil; cur = cur.Outer {
		if cur.fn || cur.Outer == nil {
			return cur
		}
	}
	return s
}

func (s *Scope) declare(ident *sitter.Node, src []byte) {
	name := ident.Content(src)
	if name == "" {
		return
	}
	binding, ok := s.Bindings[name]
	if !ok {
		binding = &Binding{Name: name}
		s.Bindings[name] = binding
	}
	binding.Defs = append(binding.Defs, ident)
}

type nodeRange struct {
	start, end uint32
}

func rangeOf(n *sitter.Node) nodeRange {
	return nodeRange{n.StartByte(), n.EndByte()}
}

// Table maps scope-owning nodes to their scopes. Keys are byte ranges, not
// node pointers: tree-sitter hands out fresh node values on every walk.
type Table struct {
	root   *Scope
	scopes map[nodeRange]*Scope
}

// Root returns the program scope.
func (t *Table) Root() *Scope {
	return t.root
}

// Innermost returns the innermost scope enclosing node.
func (t *Table) Innermost(node *sitter.Node) *Scope {
	for cur := node; cur != nil; cur = cur.Parent() {
		if sc, ok := t.scopes[rangeOf(cur)]; ok {
			return sc
		}
	}
	return t.root
}

func (t *Table) newScope(node *sitter.Node, outer *Scope, fn bool) *Scope {
	sc := &Scope{
		Node:     node,
		Outer:    outer,
		Bindings: make(map[string]*Binding),
		fn:       fn,
	}
	t.scopes[rangeOf(node)] = sc
	return sc
}

// Build walks the tree rooted at root and constructs the scope table.
// Scopes are created for the program, functions, methods, statement blocks,
// for statements and catch clauses. let/const bind in the current block
// scope; var hoists to the nearest function scope.
func Build(root *sitter.Node, src []byte) *Table {
	t := &Table{scopes: make(map[nodeRange]*Scope)}
	t.root = t.newScope(root, nil, true)

	var walk func(n *sitter.Node, sc *Scope)

	walkChildren := func(n *sitter.Node, sc *Scope) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i), sc)
		}
	}

	walk = func(n *sitter.Node, sc *Scope) {
		switch n.Type() {
		case "function_declaration", "generator_function_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				sc.declare(name, src)
			}
			inner := t.newScope(n, sc, true)
			bindParameters(inner, n, src)
			if body := n.ChildByFieldName("body"); body != nil {
				walk(body, inner)
			}

		case "function_expression", "function", "generator_function", "arrow_function":
			inner := t.newScope(n, sc, true)
			// a function expression's own name is visible inside it only
			if name := n.ChildByFieldName("name"); name != nil {
				inner.declare(name, src)
			}
			bindParameters(inner, n, src)
			if body := n.ChildByFieldName("body"); body != nil {
				walk(body, inner)
			}

		case "method_definition":
			inner := t.newScope(n, sc, true)
			bindParameters(inner, n, src)
			if body := n.ChildByFieldName("body"); body != nil {
				walk(body, inner)
			}

		case "class_declaration":
			if name := n.ChildByFieldName("name"); name != nil {
				sc.declare(name, src)
			}
			walkChildren(n, sc)

		case "statement_block":
			walkChildren(n, t.newScope(n, sc, false))

		case "for_statement", "for_in_statement":
			inner := t.newScope(n, sc, false)
			walkChildren(n, inner)

		case "catch_clause":
			inner := t.newScope(n, sc, false)
			if param := n.ChildByFieldName("parameter"); param != nil {
				declarePattern(inner, param, src)
			}
			if body := n.ChildByFieldName("body"); body != nil {
				walkChildren(body, t.newScope(body, inner, false))
			}

		case "variable_declaration":
			// var: hoist to the nearest function scope
			declareDeclarators(sc.hoistTarget(), sc, n, src, walk)

		case "lexical_declaration":
			// let/const: bind in the current block scope
			declareDeclarators(sc, sc, n, src, walk)

		case "import_statement":
			bindImports(sc, n, src)

		default:
			walkChildren(n, sc)
		}
	}

	walkChildren(root, t.root)
	return t
}

// declareDeclarators registers every declarator of a declaration statement
// into target and keeps walking initializer expressions in the current
// scope (they may contain functions of their own).
func declareDeclarators(target, current *Scope, decl *sitter.Node, src []byte, walk func(*sitter.Node, *Scope)) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		d := decl.NamedChild(i)
		if d.Type() != "variable_declarator" {
			continue
		}
		if name := d.ChildByFieldName("name"); name != nil {
			declarePattern(target, name, src)
		}
		if value := d.ChildByFieldName("value"); value != nil {
			walk(value, current)
		}
	}
}

// bindParameters declares the formal parameters of a function-like node.
func bindParameters(sc *Scope, fn *sitter.Node, src []byte) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// arrow functions with a single bare parameter
		if p := fn.ChildByFieldName("parameter"); p != nil {
			declarePattern(sc, p, src)
		}
		return
	}
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "required_parameter", "optional_parameter":
			// TypeScript wraps the pattern
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				declarePattern(sc, pat, src)
			}
		default:
			declarePattern(sc, p, src)
		}
	}
}

// declarePattern declares every name bound by a (possibly nested)
// destructuring pattern.
func declarePattern(sc *Scope, n *sitter.Node, src []byte) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		sc.declare(n, src)

	case "object_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			entry := n.NamedChild(i)
			switch entry.Type() {
			case "shorthand_property_identifier_pattern":
				sc.declare(entry, src)
			case "pair_pattern":
				if value := entry.ChildByFieldName("value"); value != nil {
					declarePattern(sc, value, src)
				}
			case "object_assignment_pattern":
				if left := entry.ChildByFieldName("left"); left != nil {
					declarePattern(sc, left, src)
				}
			case "rest_pattern":
				if entry.NamedChildCount() > 0 {
					declarePattern(sc, entry.NamedChild(0), src)
				}
			}
		}

	case "array_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			declarePattern(sc, n.NamedChild(i), src)
		}

	case "assignment_pattern":
		if left := n.ChildByFieldName("left"); left != nil {
			declarePattern(sc, left, src)
		}

	case "rest_pattern":
		if n.NamedChildCount() > 0 {
			declarePattern(sc, n.NamedChild(0), src)
		}
	}
}

// bindImports declares names introduced by an import statement.
func bindImports(sc *Scope, imp *sitter.Node, src []byte) {
	for i := 0; i < int(imp.NamedChildCount()); i++ {
		clause := imp.NamedChild(i)
		if clause.Type() != "import_clause" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			c := clause.NamedChild(j)
			switch c.Type() {
			case "identifier":
				sc.declare(c, src)
			case "namespace_import":
				for k := 0; k < int(c.NamedChildCount()); k++ {
					if id := c.NamedChild(k); id.Type() == "identifier" {
						sc.declare(id, src)
					}
				}
			case "named_imports":
				for k := 0; k < int(c.NamedChildCount()); k++ {
					spec := c.NamedChild(k)
					if spec.Type() != "import_specifier" {
						continue
					}
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						sc.declare(alias, src)
					} else if name := spec.ChildByFieldName("name"); name != nil {
						sc.declare(name, src)
					}
				}
			}
		}
	}
}
