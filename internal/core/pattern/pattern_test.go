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

package pattern_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/load"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		lit  string
		want string
		long bool
		err  string
	}{
		{lit: "42", want: "42"},
		{lit: "-7", want: "-7"},
		{lit: "1_000_000", want: "1000000"},
		{lit: "0x1F", want: "31"},
		{lit: "0b101", want: "5"},
		{lit: "017", want: "15"},
		{lit: "0", want: "0"},
		{lit: "0xFFFFFFFF", want: "-1"},
		{lit: "0x7FFFFFFF", want: "2147483647"},
		{lit: "10L", want: "10", long: true},
		{lit: "0xFFFFFFFFL", want: "4294967295", long: true},
		{lit: "2147483648", want: "2147483648"},
		{lit: "12a", err: `invalid integer literal "12a"`},
		{lit: "", err: `invalid integer literal ""`},
	}
	for _, tc := range tests {
		t.Run(tc.lit, func(t *testing.T) {
			d, long, err := pattern.ParseInt(tc.lit)
			if tc.err != "" {
				qt.Assert(t, qt.ErrorMatches(err, tc.err))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(d.Text('f'), tc.want))
			qt.Assert(t, qt.Equals(long, tc.long))
		})
	}
}

func TestParseChar(t *testing.T) {
	tests := []struct {
		lit  string
		want string
	}{
		{`'a'`, "97"},
		{`a`, "97"},
		{`'\n'`, "10"},
		{`'\''`, "39"},
		{`'A'`, "65"},
		{`'\101'`, "65"},
		{`'é'`, "233"},
	}
	for _, tc := range tests {
		t.Run(tc.lit, func(t *testing.T) {
			d, err := pattern.ParseChar(tc.lit)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(d.Text('f'), tc.want))
		})
	}
	_, err := pattern.ParseChar(`'ab'`)
	qt.Assert(t, qt.ErrorMatches(err, `invalid character literal .*`))
}

func TestRanges(t *testing.T) {
	d, _, _ := pattern.ParseInt("128")
	qt.Assert(t, qt.IsFalse(pattern.Ranges["byte"].Contains(d)))
	qt.Assert(t, qt.IsTrue(pattern.Ranges["short"].Contains(d)))
	d, _, _ = pattern.ParseInt("-1")
	qt.Assert(t, qt.IsFalse(pattern.Ranges["char"].Contains(d)))
	qt.Assert(t, qt.IsTrue(pattern.Ranges["int"].Contains(d)))
}

const shapes = `
package: p
types:
- {name: Pair, kind: record, params: [A, B], components: ["A first", "B second"]}
- {name: Color, kind: enum, constants: [RED, GREEN]}
methods:
- name: m
  switches:
  - selector: Pair<String,Integer>
    cases:
    - labels: [{record: Pair, sub: [var x, Integer y]}]
    - labels: [null, default]
  - selector: Color
    cases:
    - labels: [{enum: RED}, {enum: Color.GREEN}]
    - labels: [{int: "0x10"}, {char: "'x'"}, {string: '"s"'}]
    - default
`

func TestResolve(t *testing.T) {
	files, err := load.Bytes("test.yaml", []byte(shapes))
	qt.Assert(t, qt.IsNil(err))
	g, errs := typegraph.Build(files)
	qt.Assert(t, qt.HasLen(errs, 0))
	m := files[0].Methods[0]

	s, errs := pattern.Resolve(g, typegraph.FileScope(0), m, m.Switches[0])
	qt.Assert(t, qt.HasLen(errs, 0))
	qt.Assert(t, qt.Equals(g.RefString(s.Selector), "Pair<String,Integer>"))
	qt.Assert(t, qt.IsTrue(s.IsEnhanced()))
	qt.Assert(t, qt.IsTrue(s.HasDefault()))
	qt.Assert(t, qt.HasLen(s.Labels, 2))

	rec := s.Labels[0].Elems[0].(*pattern.Record)
	qt.Assert(t, qt.Equals(g.RefString(rec.T), "Pair<String,Integer>"))
	x := rec.Sub[0].(*pattern.Type)
	qt.Assert(t, qt.IsTrue(x.Var))
	qt.Assert(t, qt.Equals(x.T.ID, g.StringType()))
	qt.Assert(t, qt.IsTrue(pattern.Named(rec)))
	var names []string
	for _, b := range pattern.Bindings(rec) {
		names = append(names, b.Name)
	}
	qt.Assert(t, qt.DeepEquals(names, []string{"x", "y"}))

	qt.Assert(t, qt.IsTrue(s.Labels[1].HasNull()))
	qt.Assert(t, qt.IsTrue(s.Labels[1].HasDefault()))
	qt.Assert(t, qt.IsFalse(s.Labels[1].HasPattern()))

	s, errs = pattern.Resolve(g, typegraph.FileScope(0), m, m.Switches[1])
	qt.Assert(t, qt.HasLen(errs, 0))
	qt.Assert(t, qt.IsFalse(s.IsEnhanced()))
	color := g.Lookup("p.Color")
	red := s.Labels[0].Elems[0].(*pattern.Constant)
	green := s.Labels[0].Elems[1].(*pattern.Constant)
	qt.Assert(t, qt.Equals(red.Enum, color))
	qt.Assert(t, qt.Equals(green.Enum, color))
	qt.Assert(t, qt.Equals(green.Str, "GREEN"))

	consts := s.Labels[1].Elems
	qt.Assert(t, qt.Equals(consts[0].(*pattern.Constant).Key(), "n:16"))
	qt.Assert(t, qt.Equals(consts[1].(*pattern.Constant).Key(), "n:120"))
	qt.Assert(t, qt.Equals(consts[2].(*pattern.Constant).Key(), "s:s"))

	_, ok := s.Labels[2].Elems[0].(*pattern.Default)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestResolveUnknownType(t *testing.T) {
	files, err := load.Bytes("test.yaml", []byte(`
methods:
- name: m
  switches:
  - selector: Object
    cases:
    - labels: [Missing m]
`))
	qt.Assert(t, qt.IsNil(err))
	g, _ := typegraph.Build(files)
	m := files[0].Methods[0]
	s, errs := pattern.Resolve(g, typegraph.FileScope(0), m, m.Switches[0])
	qt.Assert(t, qt.HasLen(errs, 1))
	qt.Assert(t, qt.Equals(errs[0].Error(), "Missing cannot be resolved to a type"))
	qt.Assert(t, qt.IsFalse(s.Labels[0].Elems[0].(*pattern.Type).T.IsValid()))
}
