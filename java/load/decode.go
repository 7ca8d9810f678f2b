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

package load

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// decoder walks yaml.v3 nodes to build resolved compilation units.
//
// Every node that is not given an explicit "pos" takes the position of its
// YAML node, so diagnostics point back into the input document.
type decoder struct {
	file *token.File
	errs errors.List
}

func (d *decoder) pos(yn *yaml.Node) token.Pos {
	return d.file.Pos(yn.Line, yn.Column)
}

func (d *decoder) posErrorf(yn *yaml.Node, format string, args ...interface{}) {
	d.errs.AddNewf(d.pos(yn), format, args...)
}

// unit decodes one YAML document into a compilation unit.
func (d *decoder) unit(doc *yaml.Node, name string) *ast.File {
	yn := doc
	if yn.Kind == yaml.DocumentNode {
		if len(yn.Content) == 0 {
			return nil
		}
		yn = yn.Content[0]
	}
	m := d.mapping(yn, "file", "module", "package", "types", "methods", "pos")
	if m == nil {
		return nil
	}
	f := &ast.File{Name: name}
	if n := m["file"]; n != nil {
		f.Name = d.str(n)
		d.file = token.NewFile(f.Name)
	}
	f.Pos = d.position(m, yn)
	f.Module = d.str(m["module"])
	f.Package = d.str(m["package"])
	for _, n := range d.seq(m["types"]) {
		if t := d.typeDecl(n); t != nil {
			f.Types = append(f.Types, t)
		}
	}
	for _, n := range d.seq(m["methods"]) {
		if meth := d.method(n); meth != nil {
			f.Methods = append(f.Methods, meth)
		}
	}
	return f
}

// mapping returns the key/value pairs of a mapping node, reporting unknown and
// duplicate keys.
func (d *decoder) mapping(yn *yaml.Node, allowed ...string) map[string]*yaml.Node {
	if yn.Kind != yaml.MappingNode {
		d.posErrorf(yn, "expected a mapping, found %s", kindString(yn))
		return nil
	}
	m := make(map[string]*yaml.Node, len(yn.Content)/2)
	for i := 0; i+1 < len(yn.Content); i += 2 {
		k, v := yn.Content[i], yn.Content[i+1]
		key := k.Value
		known := false
		for _, a := range allowed {
			if a == key {
				known = true
				break
			}
		}
		switch {
		case !known:
			d.posErrorf(k, "field %s not allowed", strconv.Quote(key))
		case m[key] != nil:
			d.posErrorf(k, "duplicate field %s", strconv.Quote(key))
		default:
			m[key] = v
		}
	}
	return m
}

func kindString(yn *yaml.Node) string {
	switch yn.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "document"
}

func (d *decoder) seq(yn *yaml.Node) []*yaml.Node {
	switch {
	case yn == nil:
		return nil
	case yn.Kind == yaml.AliasNode:
		return d.seq(yn.Alias)
	case yn.Kind == yaml.SequenceNode:
		return yn.Content
	case yn.Kind == yaml.ScalarNode && yn.Tag == "!!null":
		return nil
	}
	// A single value is a one-element list.
	return []*yaml.Node{yn}
}

func (d *decoder) str(yn *yaml.Node) string {
	if yn == nil {
		return ""
	}
	if yn.Kind != yaml.ScalarNode {
		d.posErrorf(yn, "expected a scalar, found %s", kindString(yn))
		return ""
	}
	return yn.Value
}

func (d *decoder) boolean(yn *yaml.Node) bool {
	if yn == nil {
		return false
	}
	var b bool
	if err := yn.Decode(&b); err != nil {
		d.posErrorf(yn, "expected a boolean, found %q", yn.Value)
	}
	return b
}

// position returns the explicit "pos" of a mapping, or the position of the
// mapping itself.
func (d *decoder) position(m map[string]*yaml.Node, yn *yaml.Node) token.Pos {
	n := m["pos"]
	if n == nil {
		return d.pos(yn)
	}
	p, err := d.file.ParsePos(d.str(n))
	if err != nil {
		d.posErrorf(n, "%v", err)
		return d.pos(yn)
	}
	return p
}

func (d *decoder) typeExpr(yn *yaml.Node) *ast.TypeExpr {
	if yn == nil {
		return nil
	}
	var s string
	pos := d.pos(yn)
	switch yn.Kind {
	case yaml.ScalarNode:
		s = yn.Value
	case yaml.MappingNode:
		m := d.mapping(yn, "type", "pos")
		s = d.str(m["type"])
		pos = d.position(m, yn)
	default:
		d.posErrorf(yn, "expected a type, found %s", kindString(yn))
		return nil
	}
	t, err := ParseTypeExpr(s, pos)
	if err != nil {
		d.posErrorf(yn, "%v", err)
		return nil
	}
	return t
}

func (d *decoder) typeExprs(yn *yaml.Node) []*ast.TypeExpr {
	var a []*ast.TypeExpr
	for _, n := range d.seq(yn) {
		if t := d.typeExpr(n); t != nil {
			a = append(a, t)
		}
	}
	return a
}

func (d *decoder) typeDecl(yn *yaml.Node) *ast.TypeDecl {
	m := d.mapping(yn,
		"name", "kind", "modifiers", "annotations", "params",
		"extends", "implements", "permits", "components", "constants",
		"members", "local", "anonymous", "pos")
	if m == nil {
		return nil
	}
	t := &ast.TypeDecl{
		Name: d.str(m["name"]),
		Pos:  d.position(m, yn),
	}
	if n := m["kind"]; n != nil {
		k, ok := ast.ParseTypeKind(d.str(n))
		if !ok {
			d.posErrorf(n, "unknown type kind %q", n.Value)
		}
		t.Kind = k
	}
	for _, n := range d.seq(m["modifiers"]) {
		t.Modifiers = append(t.Modifiers, d.modifier(n))
	}
	for _, n := range d.seq(m["annotations"]) {
		t.Annotations = append(t.Annotations, d.str(n))
	}
	for _, n := range d.seq(m["params"]) {
		t.TypeParams = append(t.TypeParams, d.str(n))
	}
	t.Extends = d.typeExpr(m["extends"])
	t.Implements = d.typeExprs(m["implements"])
	if n := m["permits"]; n != nil {
		t.HasPermits = true
		t.Permits = d.typeExprs(n)
	}
	for _, n := range d.seq(m["components"]) {
		if c := d.component(n); c != nil {
			t.Components = append(t.Components, c)
		}
	}
	for _, n := range d.seq(m["constants"]) {
		t.Constants = append(t.Constants, &ast.Constant{Name: d.str(n), Pos: d.pos(n)})
	}
	for _, n := range d.seq(m["members"]) {
		if mt := d.typeDecl(n); mt != nil {
			t.Members = append(t.Members, mt)
		}
	}
	t.Local = d.boolean(m["local"])
	t.Anonymous = d.boolean(m["anonymous"])
	if t.Name == "" && !t.Anonymous {
		d.posErrorf(yn, "type declaration without a name")
	}
	return t
}

func (d *decoder) modifier(yn *yaml.Node) ast.Modifier {
	if yn.Kind == yaml.MappingNode {
		m := d.mapping(yn, "name", "pos")
		return ast.Modifier{Name: d.str(m["name"]), Pos: d.position(m, yn)}
	}
	return ast.Modifier{Name: d.str(yn), Pos: d.pos(yn)}
}

// component decodes either "Type name" or {name, type, pos}.
func (d *decoder) component(yn *yaml.Node) *ast.Component {
	if yn.Kind == yaml.ScalarNode {
		s := strings.TrimSpace(yn.Value)
		i := strings.LastIndexByte(s, ' ')
		if i < 0 {
			d.posErrorf(yn, "record component %q must be of the form \"Type name\"", s)
			return nil
		}
		t, err := ParseTypeExpr(s[:i], d.pos(yn))
		if err != nil {
			d.posErrorf(yn, "%v", err)
			return nil
		}
		return &ast.Component{Name: s[i+1:], Type: t, Pos: d.pos(yn)}
	}
	m := d.mapping(yn, "name", "type", "pos")
	if m == nil {
		return nil
	}
	return &ast.Component{
		Name: d.str(m["name"]),
		Type: d.typeExpr(m["type"]),
		Pos:  d.position(m, yn),
	}
}

func (d *decoder) method(yn *yaml.Node) *ast.Method {
	m := d.mapping(yn, "name", "locals", "switches", "types", "pos")
	if m == nil {
		return nil
	}
	meth := &ast.Method{
		Name: d.str(m["name"]),
		Pos:  d.position(m, yn),
	}
	for _, n := range d.seq(m["locals"]) {
		if l := d.local(n); l != nil {
			meth.Locals = append(meth.Locals, l)
		}
	}
	for _, n := range d.seq(m["types"]) {
		if t := d.typeDecl(n); t != nil {
			meth.Types = append(meth.Types, t)
		}
	}
	for _, n := range d.seq(m["switches"]) {
		if s := d.switchStmt(n); s != nil {
			meth.Switches = append(meth.Switches, s)
		}
	}
	return meth
}

func (d *decoder) local(yn *yaml.Node) *ast.Local {
	if yn.Kind == yaml.ScalarNode {
		return &ast.Local{Name: yn.Value, HasInitializer: true, Pos: d.pos(yn)}
	}
	m := d.mapping(yn, "name", "final", "init", "assigned", "pos")
	if m == nil {
		return nil
	}
	l := &ast.Local{
		Name:           d.str(m["name"]),
		Final:          d.boolean(m["final"]),
		HasInitializer: true,
		Pos:            d.position(m, yn),
	}
	if n := m["init"]; n != nil {
		l.HasInitializer = d.boolean(n)
	}
	for _, n := range d.seq(m["assigned"]) {
		p, err := d.file.ParsePos(d.str(n))
		if err != nil {
			d.posErrorf(n, "%v", err)
			p = d.pos(n)
		}
		l.Assigned = append(l.Assigned, p)
	}
	return l
}

func (d *decoder) switchStmt(yn *yaml.Node) *ast.Switch {
	m := d.mapping(yn, "selector", "expression", "arrow", "cases", "pos")
	if m == nil {
		return nil
	}
	s := &ast.Switch{
		Selector:   d.typeExpr(m["selector"]),
		Expression: d.boolean(m["expression"]),
		Arrow:      d.boolean(m["arrow"]),
		Pos:        d.position(m, yn),
	}
	if s.Selector == nil {
		d.posErrorf(yn, "switch without a selector type")
		return nil
	}
	for _, n := range d.seq(m["cases"]) {
		if c := d.caseClause(n); c != nil {
			s.Cases = append(s.Cases, c)
		}
	}
	return s
}

func (d *decoder) caseClause(yn *yaml.Node) *ast.Case {
	if yn.Kind == yaml.ScalarNode && yn.Value == "default" {
		return &ast.Case{Default: true, Pos: d.pos(yn)}
	}
	m := d.mapping(yn, "default", "labels", "guard", "body", "pos")
	if m == nil {
		return nil
	}
	c := &ast.Case{
		Default: d.boolean(m["default"]),
		Pos:     d.position(m, yn),
	}
	for _, n := range d.seq(m["labels"]) {
		if l := d.label(n); l != nil {
			c.Labels = append(c.Labels, l)
		}
	}
	if c.Default && len(c.Labels) > 0 {
		d.posErrorf(yn, "a bare default cannot have labels")
	}
	if n := m["guard"]; n != nil {
		c.Guard = d.guard(n)
	}
	for _, n := range d.seq(m["body"]) {
		if st := d.stmt(n); st != nil {
			c.Body = append(c.Body, st)
		}
	}
	return c
}

func (d *decoder) guard(yn *yaml.Node) *ast.Guard {
	if yn.Kind == yaml.ScalarNode {
		return &ast.Guard{Text: yn.Value, Pos: d.pos(yn)}
	}
	m := d.mapping(yn, "text", "refs", "const", "pos")
	if m == nil {
		return nil
	}
	g := &ast.Guard{
		Text: d.str(m["text"]),
		Pos:  d.position(m, yn),
	}
	if n := m["const"]; n != nil {
		if d.boolean(n) {
			g.Constant = "true"
		} else {
			g.Constant = "false"
		}
	}
	for _, n := range d.seq(m["refs"]) {
		if n.Kind == yaml.MappingNode {
			rm := d.mapping(n, "name", "pos")
			g.Refs = append(g.Refs, &ast.Ref{Name: d.str(rm["name"]), Pos: d.position(rm, n)})
			continue
		}
		g.Refs = append(g.Refs, &ast.Ref{Name: d.str(n), Pos: d.pos(n)})
	}
	return g
}

func (d *decoder) stmt(yn *yaml.Node) *ast.Stmt {
	if yn.Kind == yaml.ScalarNode {
		// "break", "yield", ... or "local x".
		kind, name, _ := strings.Cut(strings.TrimSpace(yn.Value), " ")
		k, ok := ast.ParseStmtKind(kind)
		if !ok {
			d.posErrorf(yn, "unknown statement kind %q", kind)
			return nil
		}
		return &ast.Stmt{Kind: k, Name: strings.TrimSpace(name), Pos: d.pos(yn)}
	}
	m := d.mapping(yn, "kind", "name", "pos")
	if m == nil {
		return nil
	}
	k, ok := ast.ParseStmtKind(d.str(m["kind"]))
	if !ok {
		d.posErrorf(yn, "unknown statement kind %q", d.str(m["kind"]))
		return nil
	}
	return &ast.Stmt{Kind: k, Name: d.str(m["name"]), Pos: d.position(m, yn)}
}

// label decodes a case label element. Scalars are shorthands:
//
//	null          the null label
//	default       the default label
//	var x         a var pattern
//	T x           a type pattern
//	T             a type pattern without a binding
//
// Constants and record patterns use the mapping form.
func (d *decoder) label(yn *yaml.Node) *ast.Label {
	pos := d.pos(yn)
	if yn.Kind == yaml.ScalarNode {
		s := strings.TrimSpace(yn.Value)
		switch s {
		case "null":
			return &ast.Label{Kind: ast.NullLabel, Pos: pos}
		case "default":
			return &ast.Label{Kind: ast.DefaultLabel, Pos: pos}
		}
		return d.typePattern(yn, s, pos)
	}
	m := d.mapping(yn,
		"null", "default", "int", "char", "string", "enum", "bool",
		"type", "var", "record", "bind", "sub", "pos")
	if m == nil {
		return nil
	}
	pos = d.position(m, yn)
	var l *ast.Label
	set := func(x *ast.Label) {
		if l != nil {
			d.posErrorf(yn, "label has more than one kind")
		}
		l = x
	}
	if n := m["null"]; n != nil && d.boolean(n) {
		set(&ast.Label{Kind: ast.NullLabel, Pos: pos})
	}
	if n := m["default"]; n != nil && d.boolean(n) {
		set(&ast.Label{Kind: ast.DefaultLabel, Pos: pos})
	}
	consts := []struct {
		key  string
		kind ast.ConstKind
	}{
		{"int", ast.IntConst},
		{"char", ast.CharConst},
		{"string", ast.StringConst},
		{"enum", ast.EnumConst},
		{"bool", ast.BoolConst},
	}
	for _, c := range consts {
		if n := m[c.key]; n != nil {
			set(&ast.Label{Kind: ast.ConstLabel, Const: c.kind, Value: d.str(n), Pos: pos})
		}
	}
	if n := m["type"]; n != nil {
		set(&ast.Label{Kind: ast.TypePattern, Type: d.typeExpr(n), Binding: d.str(m["bind"]), Pos: pos})
	}
	if n := m["var"]; n != nil {
		set(&ast.Label{Kind: ast.TypePattern, Var: true, Binding: d.str(n), Pos: pos})
	}
	if n := m["record"]; n != nil {
		r := &ast.Label{Kind: ast.RecordPattern, Type: d.typeExpr(n), Binding: d.str(m["bind"]), Pos: pos}
		for _, sn := range d.seq(m["sub"]) {
			if s := d.label(sn); s != nil {
				r.Sub = append(r.Sub, s)
			}
		}
		set(r)
	} else if m["sub"] != nil {
		d.posErrorf(m["sub"], "sub-patterns require a record pattern")
	}
	if l == nil {
		d.posErrorf(yn, "empty case label")
	}
	return l
}

func (d *decoder) typePattern(yn *yaml.Node, s string, pos token.Pos) *ast.Label {
	typ, bind := s, ""
	if i := strings.LastIndexByte(s, ' '); i >= 0 && !strings.ContainsAny(s[i:], "<>,[]") {
		typ, bind = strings.TrimSpace(s[:i]), s[i+1:]
	}
	if typ == "var" {
		return &ast.Label{Kind: ast.TypePattern, Var: true, Binding: bind, Pos: pos}
	}
	t, err := ParseTypeExpr(typ, pos)
	if err != nil {
		d.posErrorf(yn, "%v", err)
		return nil
	}
	return &ast.Label{Kind: ast.TypePattern, Type: t, Binding: bind, Pos: pos}
}

// Bytes decodes the compilation units in data. Each YAML document is a unit;
// units without a "file" field are named after name.
func Bytes(name string, data []byte) ([]*ast.File, error) {
	var files []*ast.File
	var errs errors.List
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for i := 0; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}
		if err != nil {
			// yaml.v3 syntax errors are opaque strings of the form
			// "yaml: line 3: some issue".
			e := err.Error()
			if s, ok := strings.CutPrefix(e, "yaml: line "); ok {
				e = name + ":" + s
			} else if s, ok := strings.CutPrefix(e, "yaml:"); ok {
				e = name + ":" + s
			}
			return nil, fmt.Errorf("%s", e)
		}
		unitName := name
		if i > 0 {
			unitName = fmt.Sprintf("%s#%d", name, i)
		}
		d := &decoder{file: token.NewFile(unitName)}
		if f := d.unit(&doc, unitName); f != nil {
			files = append(files, f)
		}
		errs.Add(d.errs)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return files, nil
}
