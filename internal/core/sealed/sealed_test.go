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

package sealed_test

import (
	"testing"

	"github.com/go-quicktest/qt"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/sealed"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/load"
)

func validate(t *testing.T, src string, cfg *sealed.Config) (*sealed.Hierarchy, []string) {
	t.Helper()
	files, err := load.Bytes("test.yaml", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	g, errs := typegraph.Build(files)
	qt.Assert(t, qt.HasLen(errs, 0), qt.Commentf("%v", errs))
	h, errs := sealed.Validate(g, cfg)
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return h, msgs
}

func names(h *sealed.Hierarchy, id typegraph.ID) []string {
	var a []string
	for _, p := range h.Permitted(id) {
		a = append(a, h.Graph().Node(p).DisplayName())
	}
	return a
}

func TestPermitted(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		sealed string
		want   []string
	}{{
		name: "Explicit",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [B, A]}
- {name: A, modifiers: [final], implements: [I]}
- {name: B, modifiers: [non-sealed], implements: [I]}
- {name: C, extends: B}
`,
		sealed: "I",
		want:   []string{"B", "A"},
	}, {
		name: "Inferred",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed]}
- {name: A, modifiers: [final], implements: [I]}
- {name: R, kind: record, implements: [I]}
- {name: E, kind: enum, implements: [I], constants: [X]}
`,
		sealed: "I",
		want:   []string{"A", "R", "E"},
	}, {
		name: "InferredNested",
		src: `
package: p
types:
- name: Shape
  kind: interface
  modifiers: [sealed]
  members:
  - {name: Circle, kind: record, implements: [Shape]}
  - {name: Square, kind: record, implements: [Shape]}
`,
		sealed: "p.Shape",
		want:   []string{"Shape.Circle", "Shape.Square"},
	}, {
		name: "SealedSubtree",
		src: `
types:
- {name: S, modifiers: [sealed, abstract], permits: [T, U]}
- {name: T, modifiers: [sealed], extends: S, permits: [V]}
- {name: U, modifiers: [final], extends: S}
- {name: V, modifiers: [final], extends: T}
`,
		sealed: "T",
		want:   []string{"V"},
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, msgs := validate(t, tc.src, nil)
			qt.Assert(t, qt.HasLen(msgs, 0), qt.Commentf("%q", msgs))
			id := h.Graph().Lookup(tc.sealed)
			qt.Assert(t, qt.IsTrue(h.IsSealed(id)))
			qt.Assert(t, qt.DeepEquals(names(h, id), tc.want))

			// Every permitted subtype declares the sealed type as a direct
			// supertype.
			for _, p := range h.Permitted(id) {
				qt.Assert(t, qt.IsTrue(h.Graph().Declares(p, id)))
			}
		})
	}
}

func TestPermittedOmitsNonDeclaring(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		sealed string
		want   []string
		msgs   []string
	}{{
		name: "PermittedNotSubclass",
		src: `
types:
- {name: S, modifiers: [sealed], permits: [A, B]}
- {name: A, modifiers: [final]}
- {name: B, modifiers: [final], extends: S}
`,
		sealed: "S",
		want:   []string{"B"},
		msgs:   []string{"Permitted type A does not declare S as a direct supertype"},
	}, {
		name: "SelfPermit",
		src: `
types:
- {name: A, modifiers: [sealed], permits: [A]}
`,
		sealed: "A",
		msgs:   []string{"Permitted type A does not declare A as a direct supertype"},
	}, {
		name: "MutualPermits",
		src: `
types:
- {name: A, modifiers: [sealed], permits: [B]}
- {name: B, modifiers: [sealed], extends: A, permits: [A]}
`,
		sealed: "B",
		msgs:   []string{"Permitted type A does not declare B as a direct supertype"},
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, msgs := validate(t, tc.src, nil)
			qt.Assert(t, qt.DeepEquals(msgs, tc.msgs))
			id := h.Graph().Lookup(tc.sealed)
			qt.Assert(t, qt.DeepEquals(names(h, id), tc.want))
			qt.Assert(t, qt.Equals(h.IsSealed(id), len(tc.want) > 0))
			for _, p := range h.Permitted(id) {
				qt.Assert(t, qt.IsTrue(h.Graph().Declares(p, id)))
			}
		})
	}
}

func TestInferredNestedStaysInEnclosingType(t *testing.T) {
	h, msgs := validate(t, `
types:
- name: Outer
  members:
  - {name: Shape, kind: interface, modifiers: [sealed]}
  - {name: Circle, kind: record, implements: [Shape]}
- {name: Square, kind: record, implements: [Outer.Shape]}
`, nil)
	qt.Assert(t, qt.DeepEquals(msgs, []string{
		"The type Square that implements a sealed interface Outer.Shape should be a permitted subtype of Outer.Shape",
	}))
	id := h.Graph().Lookup("Outer.Shape")
	qt.Assert(t, qt.DeepEquals(names(h, id), []string{"Outer.Circle"}))
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{{
		name: "NoSubtypes",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed]}
`,
		want: []string{
			"Sealed type I lacks a permits clause and no type from the same compilation unit declares I as its direct supertype",
		},
	}, {
		name: "DuplicatePermits",
		src: `
package: p
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A, p.A]}
- {name: A, modifiers: [final], implements: [I]}
`,
		want: []string{"Duplicate permitted type A"},
	}, {
		name: "UnresolvedPermits",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [Missing]}
- {name: A, modifiers: [final], implements: [I]}
`,
		want: []string{"Missing cannot be resolved to a type"},
	}, {
		name: "PermittedNotSubinterface",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A]}
- {name: A, modifiers: [final]}
`,
		want: []string{"Permitted type A does not declare I as direct super interface"},
	}, {
		name: "PermittedNotSubclass",
		src: `
types:
- {name: S, modifiers: [sealed], permits: [A]}
- {name: A, modifiers: [final]}
`,
		want: []string{"Permitted type A does not declare S as a direct supertype"},
	}, {
		name: "MissingModifier",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A, J]}
- {name: A, implements: [I]}
- {name: J, kind: interface, implements: [I]}
`,
		want: []string{
			"The class A with a sealed direct supertype I should be declared either final, sealed, or non-sealed",
			"The interface J with a sealed direct supertype I should be declared either final, sealed, or non-sealed",
		},
	}, {
		name: "NotPermittedClass",
		src: `
types:
- {name: S, modifiers: [sealed], permits: [A]}
- {name: A, modifiers: [final], extends: S}
- {name: B, modifiers: [final], extends: S}
`,
		want: []string{"The class B cannot extend the class S as it is not a permitted subtype of S"},
	}, {
		name: "NotPermittedInterface",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A]}
- {name: A, modifiers: [final], implements: [I]}
- {name: B, modifiers: [final], implements: [I]}
- {name: J, kind: interface, modifiers: [non-sealed], implements: [I]}
`,
		want: []string{
			"The type B that implements a sealed interface I should be a permitted subtype of I",
			"The type J that extends a sealed interface I should be a permitted subtype of I",
		},
	}, {
		name: "ExclusiveModifiers",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A]}
- {name: A, modifiers: [final, non-sealed], implements: [I]}
`,
		want: []string{"The type A may have only one modifier out of sealed, non-sealed, and final"},
	}, {
		name: "PermitsWithoutSealed",
		src: `
types:
- {name: A, permits: [B]}
- {name: B, modifiers: [final], extends: A}
`,
		want: []string{"A type declaration A that has a permits clause should have a sealed modifier"},
	}, {
		name: "NonSealedWithoutSealedSuper",
		src: `
types:
- {name: A, modifiers: [non-sealed]}
`,
		want: []string{"A class A declared as non-sealed should have either a sealed direct superclass or a sealed direct superinterface"},
	}, {
		name: "SealedRecord",
		src: `
types:
- {name: R, kind: record, modifiers: [sealed]}
`,
		want: []string{
			"Illegal modifier for the record R; only final and static are permitted",
			"Sealed type R lacks a permits clause and no type from the same compilation unit declares R as its direct supertype",
		},
	}, {
		name: "SealedFunctionalInterface",
		src: `
types:
- {name: F, kind: interface, modifiers: [sealed], annotations: [FunctionalInterface], permits: [A]}
- {name: A, modifiers: [final], implements: [F]}
`,
		want: []string{"Invalid '@FunctionalInterface' annotation; F is not a functional interface"},
	}, {
		name: "OtherPackage",
		src: `
package: p
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [q.A]}
---
package: q
types:
- {name: A, modifiers: [final], implements: [p.I]}
`,
		want: []string{"Permitted type A in an unnamed module should be declared in the same package p of declaring type I"},
	}, {
		name: "OtherModule",
		src: `
module: m1
package: p
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [q.A]}
---
module: m2
package: q
types:
- {name: A, modifiers: [final], implements: [p.I]}
`,
		want: []string{"Permitted type A in a named module m1 should be declared in the same module m1 of declaring type I"},
	}, {
		name: "SameModule",
		src: `
module: m1
package: p
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [q.A]}
---
module: m1
package: q
types:
- {name: A, modifiers: [final], implements: [p.I]}
`,
	}, {
		name: "AnonymousAndLocal",
		src: `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A]}
- {name: A, modifiers: [final], implements: [I]}
methods:
- name: m
  types:
  - {anonymous: true, implements: [I]}
  - {name: L, modifiers: [final], implements: [I]}
`,
		want: []string{
			"An anonymous class cannot subclass a sealed type I",
			"A local class L cannot have a sealed direct superclass or a sealed direct superinterface",
		},
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, msgs := validate(t, tc.src, nil)
			qt.Assert(t, qt.DeepEquals(msgs, tc.want))
		})
	}
}

func TestLogPermitted(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	validate(t, `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A]}
- {name: A, kind: record, implements: [I]}
`, &sealed.Config{Logger: zap.New(core)})

	entries := logs.FilterMessage("permitted subtypes").All()
	qt.Assert(t, qt.HasLen(entries, 1))
	qt.Assert(t, qt.DeepEquals(entries[0].ContextMap()["permits"], any([]interface{}{"A"})))
}
