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

// Package typegraph builds the nominal type graph of a program: one node per
// declared type, with its modifiers, declared supertypes and permits clause.
//
// Nodes live in an arena and refer to each other by ID. The graph is
// immutable once Build returns, and all queries are read-only, so a Graph may
// be shared between goroutines.
package typegraph

import (
	"strings"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// ID identifies a node in a Graph. The zero ID is not a valid node.
type ID int32

// NoID is the invalid ID.
const NoID ID = 0

// Kind is the kind of a type node.
type Kind int8

const (
	Class Kind = iota
	Interface
	Record
	Enum
	Annotation
	Primitive
)

func (k Kind) String() string {
	switch k {
	case Class:
		return "class"
	case Interface:
		return "interface"
	case Record:
		return "record"
	case Enum:
		return "enum"
	case Annotation:
		return "annotation"
	case Primitive:
		return "primitive"
	}
	return "unknown"
}

func kindOf(k ast.TypeKind) Kind {
	switch k {
	case ast.Interface:
		return Interface
	case ast.Record:
		return Record
	case ast.Enum:
		return Enum
	case ast.Annotation:
		return Annotation
	}
	return Class
}

// Flags records modifiers and derived properties of a node.
type Flags uint16

const (
	Sealed Flags = 1 << iota
	NonSealed
	Final
	Abstract
	Static
	Local
	Anonymous
	FunctionalInterface
	Builtin

	// Inconsistent marks nodes whose supertype hierarchy contains a cycle,
	// directly or through a supertype. Analyses stop at such nodes.
	Inconsistent
)

// Node is a declared or built-in type.
type Node struct {
	ID        ID
	Name      string // qualified name
	Simple    string // simple name
	Kind      Kind
	Flags     Flags
	Enclosing ID
	File      int // index of the compilation unit, -1 for built-ins
	Module    string
	Package   string

	TypeParams []string

	// Supers holds the resolved direct supertypes in declaration order. For
	// classes, a declared superclass comes first. Implicit supertypes
	// (Object, Record, Enum) are included but have no entry in SuperExprs.
	Supers     []Ref
	SuperExprs []*ast.TypeExpr

	// Permits holds the resolved entries of an explicit permits clause in
	// source order, NoID for entries that did not resolve. PermitExprs are
	// parallel.
	HasPermits  bool
	Permits     []ID
	PermitExprs []*ast.TypeExpr

	Components []Component
	Constants  []string

	// Members holds the member types in declaration order.
	Members []ID

	Decl *ast.TypeDecl
	Pos  token.Pos
}

// DisplayName returns the name of n relative to its package, the form used
// in diagnostics.
func (n *Node) DisplayName() string {
	if n.Is(Local) {
		return n.Simple
	}
	if n.Package == "" || n.Kind == Primitive {
		return n.Name
	}
	return strings.TrimPrefix(n.Name, n.Package+".")
}

// Is reports whether all of f are set on n.
func (n *Node) Is(f Flags) bool { return n.Flags&f == f }

// IsReference reports whether n is a reference type.
func (n *Node) IsReference() bool { return n.Kind != Primitive }

// IsAbstract reports whether n cannot be instantiated directly.
func (n *Node) IsAbstract() bool {
	return n.Kind == Interface || n.Kind == Annotation || n.Is(Abstract)
}

// IsEffectivelyFinal reports whether n can have no subtypes other than those
// it explicitly declares: final classes, records and enums.
func (n *Node) IsEffectivelyFinal() bool {
	return n.Is(Final) || n.Kind == Record || n.Kind == Enum || n.Kind == Primitive
}

// A Component is a record component.
type Component struct {
	Name string
	Type Ref
	Pos  token.Pos
}

// Ref is a use of a type: a node with type arguments, a type variable, or a
// wildcard.
type Ref struct {
	ID       ID
	Var      string // type variable name if ID == NoID and !Wildcard
	Wildcard bool
	Args     []Ref // type arguments; for a bounded wildcard, its upper bound
	Dims     int
}

// IsValid reports whether r refers to anything.
func (r Ref) IsValid() bool { return r.ID != NoID || r.Var != "" || r.Wildcard }

// IsVar reports whether r is a type variable.
func (r Ref) IsVar() bool { return r.ID == NoID && r.Var != "" }

// IsConcrete reports whether r is a class type without type variables or
// wildcards anywhere.
func (r Ref) IsConcrete() bool {
	if r.ID == NoID {
		return false
	}
	for _, a := range r.Args {
		if !a.IsConcrete() {
			return false
		}
	}
	return true
}

// Subst maps type variable names to their instantiation.
type Subst map[string]Ref

// Apply returns r with type variables replaced according to s. Unknown
// variables are left in place.
func (s Subst) Apply(r Ref) Ref {
	if len(s) == 0 {
		return r
	}
	if r.IsVar() {
		if x, ok := s[r.Var]; ok {
			x.Dims += r.Dims
			return x
		}
		return r
	}
	if len(r.Args) == 0 {
		return r
	}
	args := make([]Ref, len(r.Args))
	for i, a := range r.Args {
		args[i] = s.Apply(a)
	}
	r.Args = args
	return r
}

// Graph is an arena of type nodes.
type Graph struct {
	nodes  []*Node // nodes[0] is unused
	byName map[string]ID
	locals []map[string]ID // per file: local classes by simple name
	files  []*ast.File

	object ID
	record ID
	enum   ID
	str    ID
	box    map[ID]ID
	unbox  map[ID]ID
}

// Node returns the node for id, or nil.
func (g *Graph) Node(id ID) *Node {
	if id <= 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Nodes returns all nodes in ID order, built-ins first.
func (g *Graph) Nodes() []*Node {
	return g.nodes[1:]
}

// Files returns the compilation units the graph was built from.
func (g *Graph) Files() []*ast.File { return g.files }

// Lookup returns the node with the given qualified name.
func (g *Graph) Lookup(name string) ID {
	return g.byName[normalize(name)]
}

// Object returns the ID of java.lang.Object.
func (g *Graph) Object() ID { return g.object }

// StringType returns the ID of java.lang.String.
func (g *Graph) StringType() ID { return g.str }

// Box returns the wrapper class of a primitive type, or id itself.
func (g *Graph) Box(id ID) ID {
	if b, ok := g.box[id]; ok {
		return b
	}
	return id
}

// Unbox returns the primitive type of a wrapper class, or NoID.
func (g *Graph) Unbox(id ID) ID {
	return g.unbox[id]
}

// Declares reports whether sub lists sup among its declared direct
// supertypes. Implicit supertypes do not count.
func (g *Graph) Declares(sub, sup ID) bool {
	n := g.Node(sub)
	if n == nil {
		return false
	}
	for i, s := range n.Supers {
		if s.ID == sup && i < len(n.SuperExprs) && n.SuperExprs[i] != nil {
			return true
		}
	}
	return false
}

// DirectSubtypes returns the nodes that declare id as a direct supertype, in
// ID order.
func (g *Graph) DirectSubtypes(id ID) []ID {
	var a []ID
	for _, n := range g.Nodes() {
		if g.Declares(n.ID, id) {
			a = append(a, n.ID)
		}
	}
	return a
}

// RefString formats r the way it is written in source, using display names.
func (g *Graph) RefString(r Ref) string {
	var b strings.Builder
	g.writeRef(&b, r)
	return b.String()
}

func (g *Graph) writeRef(b *strings.Builder, r Ref) {
	switch {
	case r.Wildcard:
		b.WriteByte('?')
		if len(r.Args) > 0 {
			b.WriteString(" extends ")
			g.writeRef(b, r.Args[0])
		}
		return
	case r.IsVar():
		b.WriteString(r.Var)
	case g.Node(r.ID) != nil:
		b.WriteString(g.Node(r.ID).DisplayName())
		if len(r.Args) > 0 {
			b.WriteByte('<')
			for i, a := range r.Args {
				if i > 0 {
					b.WriteByte(',')
				}
				g.writeRef(b, a)
			}
			b.WriteByte('>')
		}
	default:
		b.WriteString("<invalid>")
	}
	for i := 0; i < r.Dims; i++ {
		b.WriteString("[]")
	}
}
