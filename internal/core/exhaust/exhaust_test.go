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

package exhaust_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/exhaust"
	"github.com/groovy/groovy-eclipse-sub013/internal/sctest"
)

const types = `
types:
- {name: I, kind: interface, modifiers: [sealed], permits: [A, B]}
- {name: A, modifiers: [final], implements: [I]}
- {name: B, kind: interface, modifiers: [sealed], implements: [I], permits: [B1, B2]}
- {name: B1, kind: record, implements: [B]}
- {name: B2, kind: record, implements: [B]}
- {name: R, kind: record, components: ["A a", "B b"]}
- {name: Color, kind: enum, constants: [RED, GREEN]}
- {name: G, kind: interface, params: [T], modifiers: [sealed], permits: [GS, GB]}
- {name: GS, modifiers: [final], implements: ["G<String>"]}
- {name: GB, modifiers: [final], params: [T], implements: ["G<T>"]}
- {name: S, modifiers: [sealed], permits: [T1]}
- {name: T1, modifiers: [final], extends: S}
`

type switchCase struct {
	desc  string
	sel   string
	expr  bool
	cases []string

	exhaustive bool
	missing    []string
	want       []string // diagnostics
}

func unit(sel string, expr bool, cases ...string) string {
	var b strings.Builder
	b.WriteString(types)
	fmt.Fprintf(&b, "methods:\n- name: m\n  switches:\n  - selector: %q\n    expression: %v\n    arrow: true\n    cases:\n", sel, expr)
	for _, c := range cases {
		b.WriteString("    - " + c + "\n")
	}
	return b.String()
}

const (
	stmtMsg    = "An enhanced switch statement should be exhaustive; a default label expected"
	defaultMsg = "A switch expression should have a default case"
	enumMsg    = "A switch expression should cover all possible values"
)

func TestExhaustive(t *testing.T) {
	testCases := []switchCase{{
		desc:       "all permitted subtypes",
		sel:        "I",
		expr:       true,
		cases:      []string{`{labels: [A a]}`, `{labels: [B b]}`},
		exhaustive: true,
	}, {
		desc:    "missing permitted subtype",
		sel:     "I",
		expr:    true,
		cases:   []string{`{labels: [A a]}`},
		missing: []string{"B1", "B2"},
		want:    []string{defaultMsg},
	}, {
		desc:    "statement",
		sel:     "I",
		cases:   []string{`{labels: [A a]}`},
		missing: []string{"B1", "B2"},
		want:    []string{stmtMsg},
	}, {
		desc:       "nested sealed leaves",
		sel:        "I",
		expr:       true,
		cases:      []string{`{labels: [A a]}`, `{labels: [B1 b]}`, `{labels: [B2 b]}`},
		exhaustive: true,
	}, {
		desc:       "default",
		sel:        "I",
		expr:       true,
		cases:      []string{`{labels: [A a]}`, `default`},
		exhaustive: true,
	}, {
		desc:       "null and default",
		sel:        "I",
		expr:       true,
		cases:      []string{`{labels: [null, default]}`},
		exhaustive: true,
	}, {
		desc:    "null adds nothing",
		sel:     "I",
		expr:    true,
		cases:   []string{`{labels: [null]}`, `{labels: [A a]}`},
		missing: []string{"B1", "B2"},
		want:    []string{defaultMsg},
	}, {
		desc:    "guarded labels add nothing",
		sel:     "I",
		expr:    true,
		cases:   []string{`{labels: [A a], guard: {text: "true", const: true}}`, `{labels: [B b]}`},
		missing: []string{"A"},
		want:    []string{defaultMsg},
	}, {
		desc:       "trailing unconditional pattern",
		sel:        "I",
		expr:       true,
		cases:      []string{`{labels: [A a], guard: "a != null"}`, `{labels: [I i]}`},
		exhaustive: true,
	}, {
		desc:    "record component not covered",
		sel:     "R",
		expr:    true,
		cases:   []string{`{labels: [{record: R, sub: [A a, B1 b]}]}`},
		missing: []string{"R"},
		want:    []string{defaultMsg},
	}, {
		desc:       "record components covered",
		sel:        "R",
		expr:       true,
		cases:      []string{`{labels: [{record: R, sub: [A a, B1 b]}]}`, `{labels: [{record: R, sub: [var a, B2 b]}]}`},
		exhaustive: true,
	}, {
		desc:       "record components by sealed split",
		sel:        "I",
		expr:       true,
		cases:      []string{`{labels: [A a]}`, `{labels: [{record: B1}]}`, `{labels: [{record: B2}]}`},
		exhaustive: true,
	}, {
		desc:    "enum constant missing",
		sel:     "Color",
		expr:    true,
		cases:   []string{`{labels: [{enum: RED}]}`},
		missing: []string{"Color.GREEN"},
		want:    []string{enumMsg},
	}, {
		desc:       "enum constants",
		sel:        "Color",
		expr:       true,
		cases:      []string{`{labels: [{enum: RED}, {enum: GREEN}]}`},
		exhaustive: true,
	}, {
		desc:       "enum type pattern",
		sel:        "Color",
		expr:       true,
		cases:      []string{`{labels: [{enum: RED}]}`, `{labels: [Color c]}`},
		exhaustive: true,
	}, {
		desc:       "enum statement without default",
		sel:        "Color",
		cases:      []string{`{labels: [{enum: RED}]}`},
		missing:    []string{"Color.GREEN"},
		exhaustive: false,
	}, {
		desc:       "generic instantiation excludes subtype",
		sel:        "G<Integer>",
		expr:       true,
		cases:      []string{`{labels: [GB g]}`},
		exhaustive: true,
	}, {
		desc:    "generic instantiation admits subtype",
		sel:     "G<String>",
		expr:    true,
		cases:   []string{`{labels: [GB g]}`},
		missing: []string{"GS"},
		want:    []string{defaultMsg},
	}, {
		desc:    "sealed concrete class",
		sel:     "S",
		expr:    true,
		cases:   []string{`{labels: [T1 t]}`},
		missing: []string{"S"},
		want:    []string{defaultMsg},
	}, {
		desc:    "int expression",
		sel:     "int",
		expr:    true,
		cases:   []string{`{labels: [{int: "1"}]}`},
		missing: []string{"Integer"},
		want:    []string{defaultMsg},
	}, {
		desc:    "int statement",
		sel:     "int",
		cases:   []string{`{labels: [{int: "1"}]}`},
		missing: []string{"Integer"},
	}, {
		desc:    "object statement",
		sel:     "Object",
		cases:   []string{`{labels: [{record: B1}]}`},
		missing: []string{"Object"},
		want:    []string{stmtMsg},
	}}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			e := sctest.Load(t, unit(tc.sel, tc.expr, tc.cases...))
			qt.Assert(t, qt.HasLen(e.Errs, 0), qt.Commentf("%v", e.Errs))
			s := e.Switch(t)

			qt.Check(t, qt.Equals(exhaust.IsExhaustive(e.Hierarchy, s), tc.exhaustive))
			if diff := cmp.Diff(tc.missing, exhaust.Missing(e.Hierarchy, s)); diff != "" {
				t.Errorf("missing: %s", diff)
			}
			got := sctest.Messages(exhaust.Check(e.Hierarchy, s, nil))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("diagnostics: %s", diff)
			}
		})
	}
}

func TestMonotonic(t *testing.T) {
	base := []string{`{labels: [A a]}`, `{labels: [B1 b], guard: "b != null"}`}
	e := sctest.Load(t, unit("I", true, base...))
	qt.Assert(t, qt.IsFalse(exhaust.IsExhaustive(e.Hierarchy, e.Switch(t))))

	e = sctest.Load(t, unit("I", true, append(base, `{labels: [I i]}`)...))
	qt.Assert(t, qt.IsTrue(exhaust.IsExhaustive(e.Hierarchy, e.Switch(t))))
}

func TestIncompleteEnum(t *testing.T) {
	e := sctest.Load(t, unit("Color", false, `{labels: [{enum: RED}]}`))
	s := e.Switch(t)
	errs := exhaust.Check(e.Hierarchy, s, &exhaust.Config{IncompleteEnum: true})
	qt.Assert(t, qt.DeepEquals(sctest.Messages(errs), []string{
		"The enum constant GREEN needs a corresponding case label in this enum switch on Color",
	}))
	qt.Assert(t, qt.IsFalse(errs.HasErrors()))
}

func TestRequiresExhaustive(t *testing.T) {
	testCases := []struct {
		sel   string
		label string
		want  bool
	}{
		{"int", `{labels: [{int: "1"}]}`, false},
		{"Integer", `{labels: [{int: "1"}]}`, false},
		{"String", `{labels: [{string: '"a"'}]}`, false},
		{"Color", `{labels: [{enum: RED}]}`, false},
		{"Object", `default`, true},
		{"String", `{labels: [null]}`, true},
		{"I", `{labels: [A a]}`, true},
	}
	for _, tc := range testCases {
		t.Run(tc.sel, func(t *testing.T) {
			e := sctest.Load(t, unit(tc.sel, false, tc.label))
			qt.Assert(t, qt.Equals(exhaust.RequiresExhaustive(e.Graph, e.Switch(t)), tc.want))
		})
	}
}
