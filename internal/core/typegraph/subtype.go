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

// Erasure returns the node a reference erases to: the referenced class, or
// Object for type variables and wildcards.
func (g *Graph) Erasure(r Ref) ID {
	switch {
	case r.ID != NoID:
		return r.ID
	case r.Wildcard && len(r.Args) > 0:
		return g.Erasure(r.Args[0])
	}
	return g.object
}

// IsSubtype reports whether sub is a subtype of sup after erasure. The
// relation is reflexive, and every reference type is a subtype of Object.
// Cycles in the hierarchy do not cause it to loop.
func (g *Graph) IsSubtype(sub, sup ID) bool {
	if sub == sup {
		return true
	}
	s := g.Node(sub)
	if s == nil || g.Node(sup) == nil {
		return false
	}
	if sup == g.object {
		return s.IsReference()
	}
	seen := map[ID]bool{sub: true}
	stack := []ID{sub}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, r := range g.nodes[id].Supers {
			if r.ID == sup {
				return true
			}
			if r.ID != NoID && !seen[r.ID] {
				seen[r.ID] = true
				stack = append(stack, r.ID)
			}
		}
	}
	return false
}

// IsRefSubtype reports whether a is a subtype of b after erasure, taking
// array dimensions into account.
func (g *Graph) IsRefSubtype(a, b Ref) bool {
	ea, eb := g.Erasure(a), g.Erasure(b)
	switch {
	case a.Dims == b.Dims:
		if a.Dims > 0 && g.Node(ea).Kind == Primitive {
			return ea == eb
		}
		return g.IsSubtype(ea, eb)
	case a.Dims > b.Dims:
		// T[] <: Object
		return b.Dims == 0 && eb == g.object
	}
	return false
}

// AsSuper views r as an instance of its supertype sup, substituting type
// arguments along the way. It reports false if sup is not a supertype of r.
//
// For example, given
//
//	class B<T> implements I<List<T>>
//
// AsSuper(B<String>, I) is I<List<String>>.
func (g *Graph) AsSuper(r Ref, sup ID) (Ref, bool) {
	return g.asSuper(r, sup, map[ID]bool{})
}

func (g *Graph) asSuper(r Ref, sup ID, seen map[ID]bool) (Ref, bool) {
	if r.ID == NoID {
		if sup == g.object {
			return Ref{ID: g.object}, true
		}
		return Ref{}, false
	}
	if r.ID == sup {
		return r, true
	}
	n := g.Node(r.ID)
	if n == nil || seen[r.ID] {
		return Ref{}, false
	}
	seen[r.ID] = true
	s := g.substFor(n, r)
	for _, p := range n.Supers {
		if x, ok := g.asSuper(s.Apply(p), sup, seen); ok {
			return x, true
		}
	}
	if sup == g.object && n.IsReference() {
		return Ref{ID: g.object}, true
	}
	return Ref{}, false
}

// substFor maps the type parameters of n to the arguments of r. A raw
// reference leaves the parameters unbound.
func (g *Graph) substFor(n *Node, r Ref) Subst {
	if len(r.Args) != len(n.TypeParams) || len(r.Args) == 0 {
		return nil
	}
	s := make(Subst, len(r.Args))
	for i, p := range n.TypeParams {
		s[p] = r.Args[i]
	}
	return s
}

// Compatible reports whether the values of a and b may overlap, that is,
// whether the two parameterizations are not provably distinct. Type
// variables and wildcards are compatible with anything.
func (g *Graph) Compatible(a, b Ref) bool {
	if !a.IsValid() || !b.IsValid() || a.ID == NoID || b.ID == NoID {
		return true
	}
	if a.ID == b.ID {
		return g.argsCompatible(a.Args, b.Args)
	}
	if g.IsSubtype(a.ID, b.ID) {
		if x, ok := g.AsSuper(a, b.ID); ok {
			return g.argsCompatible(x.Args, b.Args)
		}
		return true
	}
	if g.IsSubtype(b.ID, a.ID) {
		if x, ok := g.AsSuper(b, a.ID); ok {
			return g.argsCompatible(a.Args, x.Args)
		}
		return true
	}
	return true
}

func (g *Graph) argsCompatible(a, b []Ref) bool {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		// Raw types are compatible with any parameterization.
		return true
	}
	for i := range a {
		if !g.argCompatible(a[i], b[i]) {
			return false
		}
	}
	return true
}

// argCompatible compares type arguments, which must be equal (invariance)
// unless one of them is not concrete.
func (g *Graph) argCompatible(a, b Ref) bool {
	if a.ID == NoID || b.ID == NoID {
		return true
	}
	return a.ID == b.ID && a.Dims == b.Dims && g.argsCompatible(a.Args, b.Args)
}

// Instantiate returns the parameterization of sub that is a subtype of sup,
// inferring sub's type arguments from those of sup. It reports false if no
// parameterization of sub can be a subtype of sup, which is how permitted
// subtypes of a generic sealed type are excluded from consideration.
//
// For example, given
//
//	sealed interface I<T> permits A, B
//	final class A implements I<String>
//	final class B<T> implements I<T>
//
// Instantiate(A, I<Integer>) reports false and Instantiate(B, I<Integer>)
// returns B<Integer>.
func (g *Graph) Instantiate(sub ID, sup Ref) (Ref, bool) {
	n := g.Node(sub)
	if n == nil {
		return Ref{}, false
	}
	sup.ID = g.Erasure(sup)
	if !g.IsSubtype(sub, sup.ID) {
		return Ref{}, false
	}
	generic := Ref{ID: sub}
	for _, p := range n.TypeParams {
		generic.Args = append(generic.Args, Ref{Var: p})
	}
	view, ok := g.AsSuper(generic, sup.ID)
	if !ok {
		return Ref{}, false
	}
	bind := Subst{}
	if !g.unify(view.Args, sup.Args, bind) {
		return Ref{}, false
	}
	for i, a := range generic.Args {
		if x, ok := bind[a.Var]; ok {
			generic.Args[i] = x
		} else {
			generic.Args[i] = Ref{Wildcard: true}
		}
	}
	if len(generic.Args) == 0 {
		generic.Args = nil
	}
	return generic, true
}

// unify matches the declared arguments decl, which may mention type variables
// of the subtype, against the actual arguments act.
func (g *Graph) unify(decl, act []Ref, bind Subst) bool {
	if len(decl) == 0 || len(act) == 0 || len(decl) != len(act) {
		return true
	}
	for i, d := range decl {
		a := act[i]
		switch {
		case d.IsVar():
			if prev, ok := bind[d.Var]; ok {
				if !g.argCompatible(prev, a) {
					return false
				}
				continue
			}
			if a.ID != NoID {
				bind[d.Var] = a
			}
		case d.ID == NoID || a.ID == NoID:
		case d.ID != a.ID || d.Dims != a.Dims:
			return false
		default:
			if !g.unify(d.Args, a.Args, bind) {
				return false
			}
		}
	}
	return true
}

// Castable reports whether a value of static type from may be an instance of
// to, in which case a pattern of type to is applicable to it. Unrelated
// classes, and final classes that do not implement an interface, are not
// castable.
func (g *Graph) Castable(from, to Ref) bool {
	if g.IsRefSubtype(from, to) || g.IsRefSubtype(to, from) {
		return true
	}
	if from.Dims != to.Dims {
		return false
	}
	a, b := g.Node(g.Erasure(from)), g.Node(g.Erasure(to))
	if a == nil || b == nil || a.Kind == Primitive || b.Kind == Primitive {
		return false
	}
	ai := a.Kind == Interface || a.Kind == Annotation
	bi := b.Kind == Interface || b.Kind == Annotation
	switch {
	case ai && bi:
		return true
	case ai:
		return !b.IsEffectivelyFinal() && !g.sealedExcludes(b.ID, a.ID)
	case bi:
		return !a.IsEffectivelyFinal() && !g.sealedExcludes(a.ID, b.ID)
	}
	return false
}

// sealedExcludes reports whether class c is sealed and none of its permitted
// subclasses can implement interface i.
func (g *Graph) sealedExcludes(c, i ID) bool {
	return g.sealedExcludesSeen(c, i, map[ID]bool{})
}

// sealedExcludesSeen is sealedExcludes for a permits graph that may contain
// cycles. A class already on the path excludes nothing further.
func (g *Graph) sealedExcludesSeen(c, i ID, seen map[ID]bool) bool {
	n := g.Node(c)
	if n == nil || !n.Is(Sealed) || len(n.Permits) == 0 {
		return false
	}
	if seen[c] {
		return true
	}
	seen[c] = true
	for _, p := range n.Permits {
		pn := g.Node(p)
		if pn == nil {
			return false
		}
		if g.IsSubtype(p, i) || !pn.IsEffectivelyFinal() && !g.sealedExcludesSeen(p, i, seen) {
			return false
		}
	}
	return true
}

// ComponentTypes returns the component types of the record type r, with the
// type arguments of r substituted. It returns nil if r is not a record.
func (g *Graph) ComponentTypes(r Ref) []Ref {
	n := g.Node(r.ID)
	if n == nil || n.Kind != Record {
		return nil
	}
	s := g.substFor(n, r)
	a := make([]Ref, len(n.Components))
	for i, c := range n.Components {
		a[i] = s.Apply(c.Type)
	}
	return a
}
