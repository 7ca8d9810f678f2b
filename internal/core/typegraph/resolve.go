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
	"slices"
	"strings"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

// Scope is the context in which a type name is resolved.
type Scope struct {
	File       int // index of the compilation unit, or -1
	Enclosing  ID  // innermost enclosing type, or NoID at top level
	TypeParams []string
}

// FileScope returns the top-level scope of the i'th compilation unit.
func FileScope(i int) Scope {
	return Scope{File: i}
}

// Resolve resolves a type expression in sc. The returned error is a
// diagnostic positioned at t.
func (g *Graph) Resolve(sc Scope, t *ast.TypeExpr) (Ref, errors.Error) {
	if t == nil {
		return Ref{}, nil
	}
	if t.Wildcard {
		r := Ref{Wildcard: true}
		for _, a := range t.Args {
			b, err := g.Resolve(sc, a)
			if err != nil {
				return Ref{}, err
			}
			r.Args = append(r.Args, b)
		}
		return r, nil
	}
	name := normalize(t.Name)
	var r Ref
	switch {
	case !strings.Contains(name, ".") && slices.Contains(sc.TypeParams, name):
		r = Ref{Var: name}
	case IsPrimitiveName(name):
		r = Ref{ID: g.byName[name]}
	default:
		id := g.lookup(sc, name)
		if id == NoID {
			if IsRestricted(name) {
				return Ref{}, errors.Newf(t.Pos, "'%s' is not a valid type name", t.Name)
			}
			return Ref{}, errors.Newf(t.Pos, "%s cannot be resolved to a type", t.Name)
		}
		r = Ref{ID: id}
	}
	r.Dims = t.Dims
	for _, a := range t.Args {
		ar, err := g.Resolve(sc, a)
		if err != nil {
			return Ref{}, err
		}
		r.Args = append(r.Args, ar)
	}
	return r, nil
}

// lookup finds the type with the given simple or qualified name, searching
// member types of the enclosing types, local classes of the unit, the unit's
// package, java.lang, and finally fully qualified names.
func (g *Graph) lookup(sc Scope, name string) ID {
	segs := strings.Split(name, ".")
	if id := g.lookupFirst(sc, segs[0]); id != NoID {
		if id = g.members(id, segs[1:]); id != NoID {
			return id
		}
	}
	for k := len(segs); k > 0; k-- {
		if id, ok := g.byName[strings.Join(segs[:k], ".")]; ok {
			if id = g.members(id, segs[k:]); id != NoID {
				return id
			}
		}
	}
	return NoID
}

func (g *Graph) lookupFirst(sc Scope, simple string) ID {
	for e := g.Node(sc.Enclosing); e != nil; e = g.Node(e.Enclosing) {
		if id := g.member(e.ID, simple); id != NoID {
			return id
		}
		if e.Simple == simple && !e.Is(Anonymous) {
			return e.ID
		}
	}
	if sc.File >= 0 && sc.File < len(g.locals) {
		if id, ok := g.locals[sc.File][simple]; ok {
			return id
		}
	}
	pkg := ""
	if sc.File >= 0 && sc.File < len(g.files) {
		pkg = g.files[sc.File].Package
	}
	if id, ok := g.byName[qualify(pkg, simple)]; ok {
		return id
	}
	if id, ok := g.byName[langPackage+"."+simple]; ok {
		return id
	}
	return NoID
}

// member returns the member type of id with the given simple name, searching
// supertypes as member types are inherited.
func (g *Graph) member(id ID, simple string) ID {
	seen := map[ID]bool{}
	var find func(id ID) ID
	find = func(id ID) ID {
		n := g.Node(id)
		if n == nil || seen[id] {
			return NoID
		}
		seen[id] = true
		for _, m := range n.Members {
			if g.nodes[m].Simple == simple {
				return m
			}
		}
		for _, s := range n.Supers {
			if m := find(s.ID); m != NoID {
				return m
			}
		}
		return NoID
	}
	return find(id)
}

func (g *Graph) members(id ID, path []string) ID {
	for _, p := range path {
		if id = g.member(id, p); id == NoID {
			return NoID
		}
	}
	return id
}
