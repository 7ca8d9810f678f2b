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

package validate

import (
	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
)

// patterns checks that every pattern is applicable to the type it is
// matched against, and that no switch has both an unconditional pattern and
// a default.
func (v *validator) patterns() {
	if !v.s.Selector.IsValid() || v.primitive() != nil {
		return
	}
	sel := v.boxed()
	var unconditional, dflt *pattern.Label
	for _, l := range v.s.Labels {
		for _, e := range l.Elems {
			switch e := e.(type) {
			case *pattern.Type:
				if !e.Var {
					v.pattern(e, sel)
				}
				if !l.Guarded() && e.T.IsValid() && (e.Var || v.g.IsRefSubtype(sel, e.T)) && unconditional == nil {
					unconditional = l
				}
			case *pattern.Record:
				v.pattern(e, sel)
			case *pattern.Default:
				if dflt == nil {
					dflt = l
				}
			}
		}
	}
	if unconditional != nil && dflt != nil {
		later := unconditional
		if dflt.Index > later.Index {
			later = dflt
		}
		v.errs.AddNewf(later.Pos, "Switch case cannot have both unconditional pattern and default label")
	}
}

// pattern checks p against values of type t.
func (v *validator) pattern(p pattern.Pattern, t typegraph.Ref) {
	switch p := p.(type) {
	case *pattern.Type:
		if !p.Var {
			v.castable(p, p.T, t)
		}
	case *pattern.Record:
		if !p.T.IsValid() {
			return
		}
		n := v.g.Node(p.T.ID)
		if n.Kind != typegraph.Record || p.T.Dims > 0 {
			v.errs.AddNewf(p.At, "Only record types are permitted in a record pattern")
			return
		}
		if !v.castable(p, p.T, t) {
			return
		}
		comps := v.g.ComponentTypes(p.T)
		if len(comps) != len(p.Sub) || len(n.Decl.Components) != len(p.Sub) {
			v.errs.AddNewf(p.At, "Record pattern should match the signature of the record declaration")
			return
		}
		for i, s := range p.Sub {
			v.pattern(s, comps[i])
		}
	}
}

// castable reports whether a value of type from may match a pattern of type
// to, reporting the problem if not. Type variables are not checked.
func (v *validator) castable(p pattern.Pattern, to, from typegraph.Ref) bool {
	if !to.IsValid() || !from.IsValid() || to.ID == typegraph.NoID || from.ID == typegraph.NoID {
		return true
	}
	if !v.g.Castable(from, to) {
		v.errs.AddNewf(p.Pos(), "Type mismatch: cannot convert from %s to %s", v.g.RefString(from), v.g.RefString(to))
		return false
	}
	if len(to.Args) > 0 && !v.g.Compatible(to, from) {
		v.errs.AddNewf(p.Pos(), "Type %s cannot be safely cast to %s", v.g.RefString(from), v.g.RefString(to))
		return false
	}
	return true
}
