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

package typegraph_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
)

const generic = `
types:
- {name: I, kind: interface, params: [T], modifiers: [sealed], permits: [A, B, C]}
- {name: A, modifiers: [final], implements: ["I<String>"]}
- {name: B, modifiers: [final], params: [T], implements: ["I<T>"]}
- {name: C, modifiers: [final], params: [X, Y], implements: ["I<Y>"]}
- {name: J, kind: interface}
- {name: Open}
- {name: Closed, modifiers: [final]}
`

func TestInstantiate(t *testing.T) {
	g, msgs := build(t, generic)
	qt.Assert(t, qt.HasLen(msgs, 0))
	i, a, b, c := g.Lookup("I"), g.Lookup("A"), g.Lookup("B"), g.Lookup("C")
	str := typegraph.Ref{ID: g.StringType()}
	integer := typegraph.Ref{ID: g.Lookup("java.lang.Integer")}

	iInt := typegraph.Ref{ID: i, Args: []typegraph.Ref{integer}}
	_, ok := g.Instantiate(a, iInt)
	qt.Assert(t, qt.IsFalse(ok))

	r, ok := g.Instantiate(b, iInt)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(r, typegraph.Ref{ID: b, Args: []typegraph.Ref{integer}}))

	r, ok = g.Instantiate(c, iInt)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(r, typegraph.Ref{ID: c, Args: []typegraph.Ref{{Wildcard: true}, integer}}))

	iStr := typegraph.Ref{ID: i, Args: []typegraph.Ref{str}}
	_, ok = g.Instantiate(a, iStr)
	qt.Assert(t, qt.IsTrue(ok))

	// A raw or wildcard-parameterized selector admits every subtype.
	_, ok = g.Instantiate(a, typegraph.Ref{ID: i})
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = g.Instantiate(a, typegraph.Ref{ID: i, Args: []typegraph.Ref{{Wildcard: true}}})
	qt.Assert(t, qt.IsTrue(ok))

	_, ok = g.Instantiate(g.Lookup("J"), iStr)
	qt.Assert(t, qt.IsFalse(ok))
}

func TestAsSuper(t *testing.T) {
	g, _ := build(t, generic)
	b := g.Lookup("B")
	integer := typegraph.Ref{ID: g.Lookup("java.lang.Integer")}
	r, ok := g.AsSuper(typegraph.Ref{ID: b, Args: []typegraph.Ref{integer}}, g.Lookup("I"))
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.DeepEquals(r.Args, []typegraph.Ref{integer}))

	_, ok = g.AsSuper(typegraph.Ref{ID: b}, g.Lookup("J"))
	qt.Assert(t, qt.IsFalse(ok))
}

func TestCompatible(t *testing.T) {
	g, _ := build(t, generic)
	i, a := g.Lookup("I"), g.Lookup("A")
	str := typegraph.Ref{ID: g.StringType()}
	integer := typegraph.Ref{ID: g.Lookup("java.lang.Integer")}

	ref := func(id typegraph.ID, args ...typegraph.Ref) typegraph.Ref {
		return typegraph.Ref{ID: id, Args: args}
	}
	qt.Assert(t, qt.IsTrue(g.Compatible(ref(i, str), ref(i, str))))
	qt.Assert(t, qt.IsFalse(g.Compatible(ref(i, str), ref(i, integer))))
	qt.Assert(t, qt.IsTrue(g.Compatible(ref(i, str), ref(i))))
	qt.Assert(t, qt.IsTrue(g.Compatible(ref(i, str), ref(i, typegraph.Ref{Var: "T"}))))
	qt.Assert(t, qt.IsTrue(g.Compatible(ref(a), ref(i, str))))
	qt.Assert(t, qt.IsFalse(g.Compatible(ref(a), ref(i, integer))))
}

func TestCastable(t *testing.T) {
	g, _ := build(t, generic)
	ref := func(name string) typegraph.Ref { return typegraph.Ref{ID: g.Lookup(name)} }

	tests := []struct {
		from, to string
		want     bool
	}{
		{"Open", "J", true},
		{"J", "Open", true},
		{"Closed", "J", false},
		{"J", "Closed", false},
		{"Open", "Closed", false},
		{"java.lang.Object", "Closed", true},
		{"Closed", "java.lang.Object", true},
		{"I", "A", true},
		{"I", "J", true},
		{"java.lang.String", "java.lang.Integer", false},
		{"java.lang.Number", "java.lang.Integer", true},
	}
	for _, tc := range tests {
		qt.Check(t, qt.Equals(g.Castable(ref(tc.from), ref(tc.to)), tc.want), qt.Commentf("%s -> %s", tc.from, tc.to))
	}
}

func TestCastableCyclicPermits(t *testing.T) {
	g, _ := build(t, `
types:
- {name: J, kind: interface}
- {name: S, modifiers: [sealed], permits: [S]}
- {name: A, modifiers: [sealed], permits: [B]}
- {name: B, modifiers: [sealed], extends: A, permits: [A]}
- {name: C, modifiers: [sealed], permits: [C, D]}
- {name: D, modifiers: [non-sealed], extends: C}
`)
	ref := func(name string) typegraph.Ref { return typegraph.Ref{ID: lookup(t, g, name)} }

	qt.Check(t, qt.IsFalse(g.Castable(ref("J"), ref("S"))))
	qt.Check(t, qt.IsFalse(g.Castable(ref("S"), ref("J"))))
	qt.Check(t, qt.IsFalse(g.Castable(ref("J"), ref("A"))))
	qt.Check(t, qt.IsTrue(g.Castable(ref("J"), ref("C"))))
}
