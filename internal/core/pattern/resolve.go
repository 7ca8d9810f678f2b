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

package pattern

import (
	"strings"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

// Resolve converts a switch construct of method m into its resolved form.
// Names that do not resolve are reported, and the affected patterns get an
// invalid type, which matches and dominates nothing.
func Resolve(g *typegraph.Graph, sc typegraph.Scope, m *ast.Method, sw *ast.Switch) (*Switch, errors.List) {
	r := resolver{g: g, sc: sc}
	s := &Switch{
		Expression: sw.Expression,
		Arrow:      sw.Arrow,
		Method:     m,
		Node:       sw,
		Pos:        sw.Pos,
	}
	s.Selector = r.typ(sw.Selector)
	for i, c := range sw.Cases {
		l := &Label{
			Index: i,
			Guard: c.Guard,
			Body:  c.Body,
			Case:  c,
			Pos:   c.Pos,
		}
		for _, e := range c.Labels {
			l.Elems = append(l.Elems, r.label(e, s.Selector))
		}
		if c.Default {
			l.Elems = append(l.Elems, &Default{At: c.Pos})
		}
		s.Labels = append(s.Labels, l)
	}
	return s, r.errs
}

type resolver struct {
	g    *typegraph.Graph
	sc   typegraph.Scope
	errs errors.List
}

func (r *resolver) typ(t *ast.TypeExpr) typegraph.Ref {
	if t == nil {
		return typegraph.Ref{}
	}
	ref, err := r.g.Resolve(r.sc, t)
	if err != nil {
		r.errs.Add(err)
		return typegraph.Ref{}
	}
	return ref
}

// label resolves a label element matched against values of type expected.
func (r *resolver) label(l *ast.Label, expected typegraph.Ref) Pattern {
	switch l.Kind {
	case ast.NullLabel:
		return &Null{At: l.Pos}
	case ast.DefaultLabel:
		return &Default{At: l.Pos}
	case ast.ConstLabel:
		return r.constant(l, expected)
	case ast.TypePattern:
		if l.Var {
			return &Type{T: expected, Var: true, Binding: l.Binding, At: l.Pos}
		}
		return &Type{T: r.typ(l.Type), Binding: l.Binding, At: l.Pos}
	}

	p := &Record{T: r.typ(l.Type), Binding: l.Binding, At: l.Pos}
	if n := r.g.Node(p.T.ID); n != nil && len(p.T.Args) == 0 && len(n.TypeParams) > 0 && expected.IsValid() {
		// Infer the type arguments of a raw record pattern from the type it
		// is matched against.
		if inst, ok := r.g.Instantiate(p.T.ID, expected); ok {
			inst.Dims = p.T.Dims
			p.T = inst
		}
	}
	comps := r.g.ComponentTypes(p.T)
	for i, s := range l.Sub {
		var ct typegraph.Ref
		if i < len(comps) && len(comps) == len(l.Sub) {
			ct = comps[i]
		}
		p.Sub = append(p.Sub, r.label(s, ct))
	}
	return p
}

func (r *resolver) constant(l *ast.Label, expected typegraph.Ref) Pattern {
	c := &Constant{Kind: l.Const, Text: l.Value, At: l.Pos}
	var err error
	switch l.Const {
	case ast.IntConst:
		c.Value, c.Long, err = ParseInt(l.Value)
	case ast.CharConst:
		c.Value, err = ParseChar(l.Value)
	case ast.StringConst:
		c.Str = ParseString(l.Value)
	case ast.BoolConst:
		switch strings.TrimSpace(l.Value) {
		case "true", "false":
			c.Str = strings.TrimSpace(l.Value)
		default:
			r.errs.AddNewf(l.Pos, "Invalid boolean constant %s", l.Value)
		}
	case ast.EnumConst:
		name := strings.TrimSpace(l.Value)
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			t := &ast.TypeExpr{Name: name[:i], Pos: l.Pos}
			c.Enum = r.typ(t).ID
			name = name[i+1:]
		} else if n := r.g.Node(expected.ID); n != nil && n.Kind == typegraph.Enum {
			c.Enum = n.ID
		}
		c.Str = name
	}
	if err != nil {
		r.errs.AddNewf(l.Pos, "%v", err)
	}
	return c
}
