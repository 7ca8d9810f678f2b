// Copyright 2026 The Sealcheck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package typegraph

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

// restricted lists contextual keywords that cannot name a type.
var restricted = map[string]bool{
	"sealed":     true,
	"non-sealed": true,
	"permits":    true,
	"record":     true,
	"var":        true,
	"yield":      true,
}

// IsRestricted reports whether name is a restricted identifier that cannot be
// used as a type name.
func IsRestricted(name string) bool {
	return restricted[name]
}

// normalize returns the canonical form of an identifier. Names are compared
// after NFC normalization so that resolved identity does not depend on how
// the input was encoded.
func normalize(name string) string {
	return norm.NFC.String(name)
}

func newGraph(files []*ast.File) *Graph {
	g := &Graph{
		nodes:  []*Node{nil},
		byName: map[string]ID{},
		locals: make([]map[string]ID, len(files)),
		files:  files,
		box:    map[ID]ID{},
		unbox:  map[ID]ID{},
	}
	g.addBuiltins()
	return g
}

func (g *Graph) add(n *Node) *Node {
	n.ID = ID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	if n.Name != "" {
		key := normalize(n.Name)
		if _, ok := g.byName[key]; !ok {
			g.byName[key] = n.ID
		}
	}
	return n
}

type builder struct {
	g     *Graph
	errs  errors.List
	decls map[*ast.TypeDecl]ID
}

// Build creates the type graph for the given compilation units. Problems
// found while building, such as unresolvable supertypes or hierarchy cycles,
// are returned as diagnostics; the graph is usable regardless.
func Build(files []*ast.File) (*Graph, errors.List) {
	b := &builder{
		g:     newGraph(files),
		decls: map[*ast.TypeDecl]ID{},
	}
	for i, f := range files {
		b.declareFile(i, f)
	}
	for _, n := range b.g.Nodes() {
		if n.Decl != nil {
			b.resolveNode(n)
		}
	}
	b.findCycles()
	return b.g, b.errs
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func (b *builder) declareFile(i int, f *ast.File) {
	b.g.locals[i] = map[string]ID{}
	for _, d := range f.Types {
		b.declare(i, f, d, nil, false)
	}
	for _, m := range f.Methods {
		for _, d := range m.Types {
			b.declare(i, f, d, nil, true)
		}
	}
}

func (b *builder) declare(file int, f *ast.File, d *ast.TypeDecl, enc *Node, inMethod bool) {
	g := b.g
	n := &Node{
		Simple:     normalize(d.Name),
		Kind:       kindOf(d.Kind),
		File:       file,
		Module:     f.Module,
		Package:    f.Package,
		TypeParams: d.TypeParams,
		HasPermits: d.HasPermits,
		Decl:       d,
		Pos:        d.Pos,
	}
	if enc != nil {
		n.Enclosing = enc.ID
	}
	for _, m := range d.Modifiers {
		switch m.Name {
		case "sealed":
			n.Flags |= Sealed
		case "non-sealed":
			n.Flags |= NonSealed
		case "final":
			n.Flags |= Final
		case "abstract":
			n.Flags |= Abstract
		case "static":
			n.Flags |= Static
		}
	}
	if d.HasAnnotation("FunctionalInterface") {
		n.Flags |= FunctionalInterface
	}
	local := d.Local || inMethod
	switch {
	case d.Anonymous:
		n.Flags |= Anonymous | Final
	case local:
		n.Flags |= Local
	}
	for _, c := range d.Constants {
		n.Constants = append(n.Constants, normalize(c.Name))
	}

	if IsRestricted(d.Name) {
		b.errs.AddNewf(d.Pos, "'%s' is not a valid type name", d.Name)
	}

	switch {
	case d.Anonymous:
		g.add(n)
		n.Name = fmt.Sprintf("<anonymous %s#%d>", qualify(f.Package, f.Name), n.ID)
	case local:
		// Local classes are visible by simple name throughout the unit's
		// methods; give them a name that cannot clash with member types.
		if _, ok := g.locals[file][n.Simple]; ok {
			b.errs.AddNewf(d.Pos, "Duplicate nested type %s", d.Name)
		}
		g.add(n)
		n.Name = fmt.Sprintf("%s$%d%s", qualify(f.Package, f.Name), n.ID, n.Simple)
		g.locals[file][n.Simple] = n.ID
	default:
		if enc != nil {
			n.Name = enc.Name + "." + n.Simple
		} else {
			n.Name = qualify(f.Package, n.Simple)
		}
		if _, ok := g.byName[normalize(n.Name)]; ok {
			b.errs.AddNewf(d.Pos, "The type %s is already defined", n.DisplayName())
		}
		// A duplicate still gets a node so that its own checks run; the
		// first declaration stays indexed.
		g.add(n)
	}
	b.decls[d] = n.ID
	if enc != nil {
		enc.Members = append(enc.Members, n.ID)
	}
	for _, m := range d.Members {
		b.declare(file, f, m, n, false)
	}
}

// scope returns the resolution scope for the body of n.
func (g *Graph) scope(n *Node) Scope {
	sc := Scope{File: n.File, Enclosing: n.ID}
	for e := n; e != nil; e = g.Node(e.Enclosing) {
		sc.TypeParams = append(sc.TypeParams, e.TypeParams...)
	}
	return sc
}

// ScopeOf returns the scope in which names used in the declaration of id
// resolve.
func (g *Graph) ScopeOf(id ID) Scope {
	n := g.Node(id)
	if n == nil {
		return Scope{}
	}
	return g.scope(n)
}

func (b *builder) resolveNode(n *Node) {
	g := b.g
	d := n.Decl
	sc := g.scope(n)
	// The supertypes of a member type are resolved in the scope of its
	// enclosing type, but a type may name its own members there too.
	resolve := func(t *ast.TypeExpr) (Ref, bool) {
		r, err := g.Resolve(sc, t)
		if err != nil {
			b.errs.Add(err)
			return Ref{}, false
		}
		return r, true
	}

	var superclass *ast.TypeExpr
	var interfaces []*ast.TypeExpr
	switch n.Kind {
	case Interface, Annotation:
		interfaces = d.Supertypes()
	default:
		superclass = d.Extends
		interfaces = d.Implements
	}

	if superclass != nil {
		if r, ok := resolve(superclass); ok {
			b.checkSuperclass(n, r, superclass)
			n.Supers = append(n.Supers, r)
			n.SuperExprs = append(n.SuperExprs, superclass)
		}
	} else {
		switch n.Kind {
		case Class:
			n.Supers = append(n.Supers, Ref{ID: g.object})
			n.SuperExprs = append(n.SuperExprs, nil)
		case Record:
			n.Supers = append(n.Supers, Ref{ID: g.record})
			n.SuperExprs = append(n.SuperExprs, nil)
		case Enum:
			n.Supers = append(n.Supers, Ref{ID: g.enum, Args: []Ref{{ID: n.ID}}})
			n.SuperExprs = append(n.SuperExprs, nil)
		}
	}
	for _, t := range interfaces {
		r, ok := resolve(t)
		if !ok {
			continue
		}
		if s := g.Node(r.ID); s != nil && s.Kind != Interface && s.Kind != Annotation {
			if n.Decl.Anonymous {
				// new C() {} names a class.
				n.Supers = append(n.Supers, r)
				n.SuperExprs = append(n.SuperExprs, t)
				continue
			}
			b.errs.AddNewf(t.Pos, "The type %s cannot be a superinterface of %s; a superinterface must be an interface",
				s.DisplayName(), n.DisplayName())
			continue
		}
		n.Supers = append(n.Supers, r)
		n.SuperExprs = append(n.SuperExprs, t)
	}

	for _, t := range d.Permits {
		r, err := g.Resolve(sc, t)
		if err != nil {
			// Reported by the sealed hierarchy validator, which owns the
			// permits clause.
			r = Ref{}
		}
		n.Permits = append(n.Permits, r.ID)
		n.PermitExprs = append(n.PermitExprs, t)
	}

	for _, c := range d.Components {
		r, ok := resolve(c.Type)
		if !ok {
			continue
		}
		n.Components = append(n.Components, Component{
			Name: normalize(c.Name),
			Type: r,
			Pos:  c.Pos,
		})
	}
}

func (b *builder) checkSuperclass(n *Node, r Ref, t *ast.TypeExpr) {
	s := b.g.Node(r.ID)
	if s == nil {
		return
	}
	switch {
	case s.Kind == Interface || s.Kind == Annotation:
		if n.Decl.Anonymous {
			return
		}
		b.errs.AddNewf(t.Pos, "The type %s cannot be the superclass of %s; a superclass must be a class",
			s.DisplayName(), n.DisplayName())
	case s.Kind == Record || s.Kind == Enum || s.Kind == Primitive:
		b.errs.AddNewf(t.Pos, "The type %s cannot subclass the final class %s", n.DisplayName(), s.DisplayName())
	case s.Is(Final):
		b.errs.AddNewf(t.Pos, "The type %s cannot subclass the final class %s", n.DisplayName(), s.DisplayName())
	}
}
