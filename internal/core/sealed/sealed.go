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

// Package sealed validates sealed type hierarchies and computes, for each
// sealed type, the set of its permitted direct subtypes.
package sealed

import (
	"slices"

	"go.uber.org/zap"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

type Config struct {
	// Logger receives the computed permitted sets at debug level. A nil
	// Logger discards them.
	Logger *zap.Logger
}

// Hierarchy holds the permitted subtypes of every sealed type in a graph.
type Hierarchy struct {
	g         *typegraph.Graph
	permitted map[typegraph.ID][]typegraph.ID
}

// Graph returns the type graph h was computed from.
func (h *Hierarchy) Graph() *typegraph.Graph { return h.g }

// IsSealed reports whether id is a consistent sealed type with at least one
// permitted subtype. Only such types can be split into their subtypes when
// checking exhaustiveness.
func (h *Hierarchy) IsSealed(id typegraph.ID) bool {
	return len(h.permitted[id]) > 0
}

// Permitted returns the resolved permitted subtypes of id in declaration
// order, or nil if id is not sealed. The result must not be modified.
func (h *Hierarchy) Permitted(id typegraph.ID) []typegraph.ID {
	return h.permitted[id]
}

// Validate computes the permitted subtypes of all sealed types in g and
// checks the rules that govern sealed declarations and their subtypes.
// Types on a hierarchy cycle are skipped; the cycle itself is reported when
// the graph is built.
func Validate(g *typegraph.Graph, cfg *Config) (*Hierarchy, errors.List) {
	if cfg == nil {
		cfg = &Config{}
	}
	v := validator{
		Config: *cfg,
		g:      g,
		h: &Hierarchy{
			g:         g,
			permitted: map[typegraph.ID][]typegraph.ID{},
		},
	}
	if v.Logger == nil {
		v.Logger = zap.NewNop()
	}
	for _, n := range g.Nodes() {
		if n.Is(typegraph.Builtin) {
			continue
		}
		v.checkModifiers(n)
		if n.Is(typegraph.Inconsistent) {
			continue
		}
		if n.Is(typegraph.Sealed) {
			v.resolvePermits(n)
		}
	}
	for _, n := range g.Nodes() {
		if n.Is(typegraph.Builtin) || n.Is(typegraph.Inconsistent) {
			continue
		}
		v.checkSubtype(n)
	}
	return v.h, v.errs
}

type validator struct {
	Config
	g    *typegraph.Graph
	h    *Hierarchy
	errs errors.List
}

func kindName(n *typegraph.Node) string {
	if n.Kind == typegraph.Interface || n.Kind == typegraph.Annotation {
		return "interface"
	}
	return "class"
}

// checkModifiers checks the modifiers of a single declaration, independent
// of the rest of the hierarchy.
func (v *validator) checkModifiers(n *typegraph.Node) {
	d := n.Decl
	var excl []ast.Modifier
	for _, m := range d.Modifiers {
		switch m.Name {
		case "sealed", "non-sealed", "final":
			excl = append(excl, m)
		}
	}
	if len(excl) > 1 {
		v.errs.AddNewf(excl[1].Pos, "The type %s may have only one modifier out of sealed, non-sealed, and final", n.DisplayName())
	}

	for _, m := range d.Modifiers {
		if m.Name != "sealed" && m.Name != "non-sealed" {
			continue
		}
		switch n.Kind {
		case typegraph.Record:
			v.errs.AddNewf(m.Pos, "Illegal modifier for the record %s; only final and static are permitted", n.DisplayName())
		case typegraph.Enum:
			v.errs.AddNewf(m.Pos, "Illegal modifier for the enum %s; only static is permitted", n.DisplayName())
		}
	}

	if d.HasPermits && !n.Is(typegraph.Sealed) {
		v.errs.AddNewf(n.Pos, "A type declaration %s that has a permits clause should have a sealed modifier", n.DisplayName())
	}
	if n.Is(typegraph.Sealed) && n.Is(typegraph.FunctionalInterface) {
		v.errs.AddNewf(n.Pos, "Invalid '@FunctionalInterface' annotation; %s is not a functional interface", n.DisplayName())
	}
}

// resolvePermits computes the permitted set of the sealed type n.
func (v *validator) resolvePermits(n *typegraph.Node) {
	var p []typegraph.ID
	if n.HasPermits {
		p = v.explicitPermits(n)
	} else {
		p = v.inferPermits(n)
		if len(p) == 0 {
			v.errs.AddNewf(n.Pos, "Sealed type %s lacks a permits clause and no type from the same compilation unit declares %s as its direct supertype",
				n.DisplayName(), n.DisplayName())
		}
	}
	if len(p) > 0 {
		v.h.permitted[n.ID] = p
	}
	if ce := v.Logger.Check(zap.DebugLevel, "permitted subtypes"); ce != nil {
		names := make([]string, len(p))
		for i, id := range p {
			names[i] = v.g.Node(id).DisplayName()
		}
		ce.Write(zap.String("type", n.DisplayName()), zap.Bool("explicit", n.HasPermits), zap.Strings("permits", names))
	}
}

func (v *validator) explicitPermits(n *typegraph.Node) []typegraph.ID {
	var p, seen []typegraph.ID
	for i, id := range n.Permits {
		t := n.PermitExprs[i]
		if id == typegraph.NoID {
			if _, err := v.g.Resolve(v.g.ScopeOf(n.ID), t); err != nil {
				v.errs.Add(err)
			}
			continue
		}
		y := v.g.Node(id)
		if slices.Contains(seen, id) {
			v.errs.AddNewf(t.Pos, "Duplicate permitted type %s", y.DisplayName())
			continue
		}
		seen = append(seen, id)

		if y.Is(typegraph.Inconsistent) {
			continue
		}
		// A permitted type that does not name n as a direct supertype is
		// reported but kept out of P(n).
		declares := v.g.Declares(id, n.ID)
		if !declares {
			if kindName(n) == "interface" {
				v.errs.AddNewf(t.Pos, "Permitted type %s does not declare %s as direct super interface", y.DisplayName(), n.DisplayName())
			} else {
				v.errs.AddNewf(t.Pos, "Permitted type %s does not declare %s as a direct supertype", y.DisplayName(), n.DisplayName())
			}
		}
		v.checkLocality(n, y, t)
		if declares {
			p = append(p, id)
		}
	}
	return p
}

// checkLocality reports a permitted subtype y that lives outside the module,
// or for the unnamed module the package, of the sealed type n.
func (v *validator) checkLocality(n, y *typegraph.Node, t *ast.TypeExpr) {
	if n.File == y.File {
		return
	}
	switch {
	case n.Module != "":
		if y.Module != n.Module {
			v.errs.AddNewf(t.Pos, "Permitted type %s in a named module %s should be declared in the same module %s of declaring type %s",
				y.DisplayName(), n.Module, n.Module, n.DisplayName())
		}
	case y.Package != n.Package:
		v.errs.AddNewf(t.Pos, "Permitted type %s in an unnamed module should be declared in the same package %s of declaring type %s",
			y.DisplayName(), packageName(n.Package), n.DisplayName())
	}
}

func packageName(p string) string {
	if p == "" {
		return "<default>"
	}
	return p
}

// inferPermits returns the types of n's compilation unit that declare n as
// a direct supertype. For a nested n only types declared inside n's
// enclosing type count. Local and anonymous classes are never permitted.
func (v *validator) inferPermits(n *typegraph.Node) []typegraph.ID {
	var p []typegraph.ID
	for _, id := range v.g.DirectSubtypes(n.ID) {
		s := v.g.Node(id)
		if s.File != n.File || s.Is(typegraph.Local) || s.Is(typegraph.Anonymous) {
			continue
		}
		if n.Enclosing != typegraph.NoID && !v.within(s, n.Enclosing) {
			continue
		}
		p = append(p, id)
	}
	return p
}

// within reports whether s is declared, at any depth, inside the type enc.
func (v *validator) within(s *typegraph.Node, enc typegraph.ID) bool {
	for e := v.g.Node(s.Enclosing); e != nil; e = v.g.Node(e.Enclosing) {
		if e.ID == enc {
			return true
		}
	}
	return false
}

// checkSubtype checks n against each sealed type it declares as a direct
// supertype.
func (v *validator) checkSubtype(n *typegraph.Node) {
	if n.Is(typegraph.NonSealed) && !v.hasSealedSuper(n) {
		if kindName(n) == "interface" {
			v.errs.AddNewf(n.Pos, "An interface %s declared as non-sealed should have a sealed direct superinterface", n.DisplayName())
		} else {
			v.errs.AddNewf(n.Pos, "A class %s declared as non-sealed should have either a sealed direct superclass or a sealed direct superinterface", n.DisplayName())
		}
	}

	reportedModifier := false
	for i, r := range n.Supers {
		if i >= len(n.SuperExprs) || n.SuperExprs[i] == nil {
			continue
		}
		s := v.g.Node(r.ID)
		if s == nil || !s.Is(typegraph.Sealed) || s.Is(typegraph.Inconsistent) {
			continue
		}
		t := n.SuperExprs[i]
		switch {
		case n.Is(typegraph.Anonymous):
			v.errs.AddNewf(t.Pos, "An anonymous class cannot subclass a sealed type %s", s.DisplayName())
			continue
		case n.Is(typegraph.Local):
			v.errs.AddNewf(n.Pos, "A local class %s cannot have a sealed direct superclass or a sealed direct superinterface", n.DisplayName())
			continue
		}

		if !slices.Contains(v.h.permitted[s.ID], n.ID) && !v.unresolvedPermit(s) {
			switch {
			case kindName(s) == "class":
				v.errs.AddNewf(t.Pos, "The class %s cannot extend the class %s as it is not a permitted subtype of %s",
					n.DisplayName(), s.DisplayName(), s.DisplayName())
			case kindName(n) == "interface":
				v.errs.AddNewf(t.Pos, "The type %s that extends a sealed interface %s should be a permitted subtype of %s",
					n.DisplayName(), s.DisplayName(), s.DisplayName())
			default:
				v.errs.AddNewf(t.Pos, "The type %s that implements a sealed interface %s should be a permitted subtype of %s",
					n.DisplayName(), s.DisplayName(), s.DisplayName())
			}
		}

		if !reportedModifier && !n.IsEffectivelyFinal() && !n.Is(typegraph.Sealed) && !n.Is(typegraph.NonSealed) {
			reportedModifier = true
			v.errs.AddNewf(n.Pos, "The %s %s with a sealed direct supertype %s should be declared either final, sealed, or non-sealed",
				kindName(n), n.DisplayName(), s.DisplayName())
		}
	}
}

// unresolvedPermit reports whether an entry of the permits clause of s
// failed to resolve. Membership of other types cannot be decided then, and
// the unresolved entry is reported instead.
func (v *validator) unresolvedPermit(s *typegraph.Node) bool {
	return slices.Contains(s.Permits, typegraph.NoID)
}

func (v *validator) hasSealedSuper(n *typegraph.Node) bool {
	for i, r := range n.Supers {
		if i >= len(n.SuperExprs) || n.SuperExprs[i] == nil {
			continue
		}
		if s := v.g.Node(r.ID); s != nil && s.Is(typegraph.Sealed) {
			return true
		}
	}
	return false
}
