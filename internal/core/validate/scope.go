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
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
)

// fallThrough checks that control never flows into or out of a pattern
// label in a switch with statement groups. Falling out of a pattern label
// into a plain default is allowed.
func (v *validator) fallThrough() {
	if v.s.Arrow {
		return
	}
	labels := v.s.Labels
	for i := 0; i+1 < len(labels); i++ {
		cur, next := labels[i], labels[i+1]
		if !ast.CompletesNormally(cur.Body) {
			continue
		}
		switch {
		case cur.HasPattern() && !isPlainDefault(next):
			v.errs.AddNewf(cur.Pos, "Illegal fall-through from a case label pattern")
		case next.HasPattern():
			v.errs.AddNewf(next.Pos, "Illegal fall-through to a pattern")
		}
	}
}

func isPlainDefault(l *pattern.Label) bool {
	return len(l.Elems) == 1 && isDefault(l.Elems[0])
}

// scopes reports pattern variables that clash with another pattern
// variable of the same label, with a local of the enclosing method, or
// with a local declared in the label's body.
func (v *validator) scopes() {
	locals := map[string]bool{}
	if m := v.s.Method; m != nil {
		for _, l := range m.Locals {
			locals[l.Name] = true
		}
	}
	for _, l := range v.s.Labels {
		declared := map[string]bool{}
		for _, e := range l.Elems {
			for _, b := range pattern.Bindings(e) {
				if declared[b.Name] || locals[b.Name] {
					v.errs.AddNewf(b.Pos, "Duplicate local variable %s", b.Name)
				}
				declared[b.Name] = true
			}
		}
		for _, st := range l.Body {
			if st.Kind != ast.LocalStmt || st.Name == "" {
				continue
			}
			if declared[st.Name] {
				v.errs.AddNewf(st.Pos, "Duplicate local variable %s", st.Name)
			}
			declared[st.Name] = true
		}
	}
}

// guards checks the names a guard refers to and constant guards.
func (v *validator) guards() {
	locals := map[string]*ast.Local{}
	if m := v.s.Method; m != nil {
		for _, l := range m.Locals {
			locals[l.Name] = l
		}
	}
	// Pattern variables of every label, to detect references to a variable
	// that is not in scope.
	others := map[string]bool{}
	for _, l := range v.s.Labels {
		for _, e := range l.Elems {
			for _, b := range pattern.Bindings(e) {
				others[b.Name] = true
			}
		}
	}

	for _, l := range v.s.Labels {
		g := l.Guard
		if g == nil {
			continue
		}
		if g.Constant == "false" {
			v.errs.AddNewf(g.Pos, "A case label guard cannot have a constant expression with value 'false'")
		}
		own := map[string]bool{}
		for _, e := range l.Elems {
			for _, b := range pattern.Bindings(e) {
				own[b.Name] = true
			}
		}
		for _, r := range g.Refs {
			switch local := locals[r.Name]; {
			case own[r.Name]:
			case local != nil:
				if !local.EffectivelyFinal() {
					v.errs.AddNewf(r.Pos, "Local variable %s referenced from a guard must be final or effectively final", r.Name)
				}
			case others[r.Name]:
				v.errs.AddNewf(r.Pos, "%s cannot be resolved to a variable", r.Name)
			}
		}
	}
}
