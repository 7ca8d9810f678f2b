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

package load_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
	"github.com/groovy/groovy-eclipse-sub013/java/load"
	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

const unit = `module: app
package: shapes
types:
- name: Shape
  kind: interface
  modifiers: [sealed]
  permits: [Circle, "shapes.Square"]
- {name: Circle, kind: record, implements: [Shape], components: ["double r", {name: c, type: "List<? extends T>[]", pos: "40:2"}]}
- name: Leaf
  kind: class
  modifiers: [final]
  permits: []
methods:
- name: m
  locals: [x, {name: y, final: true, assigned: ["3:4"]}]
  switches:
  - selector: Shape
    expression: true
    arrow: true
    cases:
    - labels: [null, default]
    - labels: [{record: Circle, sub: ["var r"], bind: c}]
      guard: {text: "r > 0", refs: [r], const: false}
      body: [yield, "local z"]
    - labels: [{int: "0x1F"}, {enum: RED}, "var _"]
    - default
`

func TestBytes(t *testing.T) {
	files, err := load.Bytes("in.yaml", []byte(unit))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(files, 1))
	f := files[0]
	qt.Check(t, qt.Equals(f.Name, "in.yaml"))
	qt.Check(t, qt.Equals(f.Module, "app"))
	qt.Check(t, qt.Equals(f.Package, "shapes"))
	qt.Assert(t, qt.HasLen(f.Types, 3))

	shape := f.Types[0]
	qt.Check(t, qt.Equals(shape.Kind, ast.Interface))
	qt.Check(t, qt.IsTrue(shape.HasModifier("sealed")))
	qt.Check(t, qt.Equals(shape.Modifiers[0].Pos.String(), "in.yaml:6:15"))
	qt.Check(t, qt.IsTrue(shape.HasPermits))
	qt.Check(t, qt.DeepEquals(typeNames(shape.Permits), []string{"Circle", "shapes.Square"}))
	qt.Check(t, qt.Equals(shape.Permits[1].Pos.String(), "in.yaml:7:21"))
	qt.Check(t, qt.Equals(shape.Pos.String(), "in.yaml:4:3"))

	circle := f.Types[1]
	qt.Check(t, qt.Equals(circle.Kind, ast.Record))
	qt.Check(t, qt.DeepEquals(typeNames(circle.Implements), []string{"Shape"}))
	qt.Assert(t, qt.HasLen(circle.Components, 2))
	qt.Check(t, qt.Equals(circle.Components[0].Name, "r"))
	qt.Check(t, qt.Equals(circle.Components[0].Type.String(), "double"))
	qt.Check(t, qt.Equals(circle.Components[1].Type.String(), "List<?<T>>[]"))
	qt.Check(t, qt.Equals(circle.Components[1].Pos.String(), "in.yaml:40:2"))

	// An empty permits clause is not the same as none.
	leaf := f.Types[2]
	qt.Check(t, qt.IsTrue(leaf.HasPermits))
	qt.Check(t, qt.HasLen(leaf.Permits, 0))
	qt.Check(t, qt.IsFalse(circle.HasPermits))

	qt.Assert(t, qt.HasLen(f.Methods, 1))
	m := f.Methods[0]
	qt.Assert(t, qt.HasLen(m.Locals, 2))
	qt.Check(t, qt.IsTrue(m.Locals[0].HasInitializer))
	qt.Check(t, qt.IsTrue(m.Locals[1].Final))
	qt.Check(t, qt.Equals(m.Locals[1].Assigned[0].String(), "in.yaml:3:4"))

	qt.Assert(t, qt.HasLen(m.Switches, 1))
	sw := m.Switches[0]
	qt.Check(t, qt.Equals(sw.Selector.String(), "Shape"))
	qt.Check(t, qt.IsTrue(sw.Expression))
	qt.Check(t, qt.IsTrue(sw.Arrow))
	qt.Check(t, qt.Equals(sw.Pos.String(), "in.yaml:17:5"))
	qt.Assert(t, qt.HasLen(sw.Cases, 4))

	c := sw.Cases[0]
	qt.Check(t, qt.DeepEquals(labelKinds(c.Labels), []ast.LabelKind{ast.NullLabel, ast.DefaultLabel}))
	qt.Check(t, qt.Equals(c.Labels[1].Pos.String(), "in.yaml:21:22"))

	c = sw.Cases[1]
	rec := c.Labels[0]
	qt.Check(t, qt.Equals(rec.Kind, ast.RecordPattern))
	qt.Check(t, qt.Equals(rec.Type.String(), "Circle"))
	qt.Check(t, qt.Equals(rec.Binding, "c"))
	qt.Assert(t, qt.HasLen(rec.Sub, 1))
	qt.Check(t, qt.IsTrue(rec.Sub[0].Var))
	qt.Check(t, qt.Equals(rec.Sub[0].Binding, "r"))
	qt.Check(t, qt.Equals(c.Guard.Text, "r > 0"))
	qt.Check(t, qt.Equals(c.Guard.Constant, "false"))
	qt.Check(t, qt.Equals(c.Guard.Refs[0].Pos.String(), "in.yaml:23:37"))
	qt.Assert(t, qt.HasLen(c.Body, 2))
	qt.Check(t, qt.Equals(c.Body[0].Kind, ast.YieldStmt))
	qt.Check(t, qt.Equals(c.Body[1].Kind, ast.LocalStmt))
	qt.Check(t, qt.Equals(c.Body[1].Name, "z"))

	c = sw.Cases[2]
	qt.Check(t, qt.DeepEquals(labelKinds(c.Labels), []ast.LabelKind{ast.ConstLabel, ast.ConstLabel, ast.TypePattern}))
	qt.Check(t, qt.Equals(c.Labels[0].Const, ast.IntConst))
	qt.Check(t, qt.Equals(c.Labels[0].Value, "0x1F"))
	qt.Check(t, qt.Equals(c.Labels[1].Const, ast.EnumConst))
	qt.Check(t, qt.Equals(c.Labels[2].Binding, "_"))

	qt.Check(t, qt.IsTrue(sw.Cases[3].Default))
	qt.Check(t, qt.HasLen(sw.Cases[3].Labels, 0))
}

func TestBytesDocuments(t *testing.T) {
	src := "package: a\n---\nfile: B.java\npackage: b\n---\npackage: c\n"
	files, err := load.Bytes("units.yaml", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	var names []string
	for _, f := range files {
		names = append(names, f.Name+"="+f.Package)
	}
	qt.Check(t, qt.DeepEquals(names, []string{"units.yaml=a", "B.java=b", "units.yaml#2=c"}))
	qt.Check(t, qt.Equals(files[1].Pos.Filename(), "B.java"))
}

func TestBytesErrors(t *testing.T) {
	testCases := []struct {
		desc string
		in   string
		out  []string
	}{{
		desc: "unknown field",
		in:   "packge: x\n",
		out:  []string{`in.yaml:1:1: field "packge" not allowed`},
	}, {
		desc: "duplicate field",
		in:   "package: x\npackage: y\n",
		out:  []string{`in.yaml:2:1: duplicate field "package"`},
	}, {
		desc: "unknown kind",
		in:   "types: [{name: A, kind: klass}]\n",
		out:  []string{`in.yaml:1:25: unknown type kind "klass"`},
	}, {
		desc: "missing name",
		in:   "types: [{kind: class}]\n",
		out:  []string{`in.yaml:1:9: type declaration without a name`},
	}, {
		desc: "no selector",
		in:   "methods: [{name: m, switches: [{cases: []}]}]\n",
		out:  []string{`in.yaml:1:32: switch without a selector type`},
	}, {
		desc: "two label kinds",
		in:   "methods: [{name: m, switches: [{selector: Object, cases: [{labels: [{null: true, default: true}]}]}]}]\n",
		out:  []string{`in.yaml:1:69: label has more than one kind`},
	}, {
		desc: "bad type pattern",
		in:   "methods: [{name: m, switches: [{selector: Object, cases: [{labels: [\"List<String s\"]}]}]}]\n",
		out:  []string{`in.yaml:1:69: invalid type "List<String": expected ',' or '>'`},
	}, {
		desc: "bad statement",
		in:   "methods: [{name: m, switches: [{selector: Object, cases: [{body: [jump]}]}]}]\n",
		out:  []string{`in.yaml:1:67: unknown statement kind "jump"`},
	}, {
		desc: "bad position",
		in:   "package: x\npos: \"a:b\"\n",
		out:  []string{`in.yaml:2:6: invalid line in position "a:b"`},
	}, {
		desc: "not a mapping",
		in:   "types: [Shape]\n",
		out:  []string{`in.yaml:1:9: expected a mapping, found scalar`},
	}, {
		desc: "errors are collected",
		in:   "types: [{name: A, kind: klass}, {name: B, kind: gadget}]\n",
		out: []string{
			`in.yaml:1:25: unknown type kind "klass"`,
			`in.yaml:1:49: unknown type kind "gadget"`,
		},
	}}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := load.Bytes("in.yaml", []byte(tc.in))
			qt.Assert(t, qt.IsNotNil(err))
			got := strings.Split(strings.TrimSpace(errors.Details(err, nil)), "\n")
			if diff := cmp.Diff(tc.out, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestBytesSyntaxError(t *testing.T) {
	_, err := load.Bytes("in.yaml", []byte("types: [\n"))
	qt.Check(t, qt.ErrorMatches(err, `in.yaml:.*`))
}

func TestParseTypeExpr(t *testing.T) {
	testCases := []struct {
		in  string
		out string
		err string
	}{
		{in: "Shape", out: "Shape"},
		{in: "p.Outer.Inner", out: "p.Outer.Inner"},
		{in: "Map<String, List<Integer>>", out: "Map<String,List<Integer>>"},
		{in: "int[][]", out: "int[][]"},
		{in: "Box<?>", out: "Box<?>"},
		{in: "Box<? super T>", out: "Box<?>"},
		{in: "Circle(double r)", err: `invalid type "Circle\(double r\)": unexpected "\(double r\)"`},
		{in: "", err: `invalid type "": missing type name`},
		{in: "a..b", err: `invalid type "a..b": malformed name "a..b"`},
		{in: "int[", err: `invalid type "int\[": expected '\]'`},
	}
	pos := token.NewFile("t.yaml").Pos(2, 3)
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			te, err := load.ParseTypeExpr(tc.in, pos)
			if tc.err != "" {
				qt.Assert(t, qt.ErrorMatches(err, tc.err))
				return
			}
			qt.Assert(t, qt.IsNil(err))
			qt.Check(t, qt.Equals(te.String(), tc.out))
			qt.Check(t, qt.Equals(te.Pos, pos))
		})
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(good, []byte("package: a\n"), 0o644)))
	bad := filepath.Join(dir, "bad.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(bad, []byte("packge: a\n"), 0o644)))

	files, err := load.Files(nil, good)
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.HasLen(files, 1))

	files, err = load.Files(strings.NewReader("package: s\n"), "-")
	qt.Assert(t, qt.IsNil(err))
	qt.Check(t, qt.Equals(files[0].Package, "s"))

	_, err = load.Files(nil, good, bad, filepath.Join(dir, "missing.yaml"))
	errs := errors.Errors(err)
	qt.Assert(t, qt.HasLen(errs, 2))
	qt.Check(t, qt.Equals(errs[0].Position().String(), bad+":1:1"))

	_, err = load.Files(nil, "-")
	qt.Check(t, qt.ErrorMatches(err, `load: no standard input available`))
}

func typeNames(a []*ast.TypeExpr) []string {
	var s []string
	for _, t := range a {
		s = append(s, t.String())
	}
	return s
}

func labelKinds(a []*ast.Label) []ast.LabelKind {
	var k []ast.LabelKind
	for _, l := range a {
		k = append(k, l.Kind)
	}
	return k
}
