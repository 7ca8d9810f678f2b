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
	"slices"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
)

// constants checks that each constant label is assignable to the selector
// type and that no constant, or null, occurs twice.
func (v *validator) constants() {
	if !v.s.Selector.IsValid() {
		return
	}
	seen := map[string]bool{}
	nulls := 0
	for _, l := range v.s.Labels {
		for _, e := range l.Elems {
			switch e := e.(type) {
			case *pattern.Null:
				if nulls++; nulls > 1 {
					v.errs.AddNewf(e.Pos(), "Duplicate case")
				}
			case *pattern.Constant:
				if !v.constant(e) {
					continue
				}
				key := e.Key()
				if seen[key] {
					v.errs.AddNewf(e.Pos(), "Duplicate case")
				}
				seen[key] = true
			}
		}
	}
}

// constant checks a single constant label, reporting whether it is valid.
func (v *validator) constant(c *pattern.Constant) bool {
	sel := v.s.Selector
	selName := v.g.RefString(sel)
	n := v.g.Node(sel.ID)
	if sel.Dims > 0 || n == nil {
		v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from %s to %s", constTypeName(c), selName)
		return false
	}

	// Match wrapper selectors by their primitive type.
	prim := n
	if u := v.g.Unbox(n.ID); u != typegraph.NoID {
		prim = v.g.Node(u)
	}

	switch c.Kind {
	case ast.EnumConst:
		switch {
		case n.Kind != typegraph.Enum:
			v.errs.AddNewf(c.Pos(), "%s cannot be resolved to a variable", c.Str)
			return false
		case c.Enum != n.ID:
			v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from %s to %s", v.g.RefString(typegraph.Ref{ID: c.Enum}), selName)
			return false
		case !slices.Contains(n.Constants, c.Str):
			v.errs.AddNewf(c.Pos(), "%s cannot be resolved or is not a field", c.Str)
			return false
		}
		return true

	case ast.StringConst:
		if n.ID != v.g.StringType() {
			v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from String to %s", selName)
			return false
		}
		return true

	case ast.BoolConst:
		if prim.Name != "boolean" {
			v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from boolean to %s", selName)
			return false
		}
		return c.Str != ""
	}

	// Integral constants.
	if c.Value == nil {
		return false
	}
	r, ok := pattern.Ranges[prim.Name]
	if !ok || c.Long {
		v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from %s to %s", constTypeName(c), selName)
		return false
	}
	if !r.Contains(c.Value) {
		v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from %s to %s", constTypeName(c), selName)
		return false
	}
	if prim != n && prim.Name != constTypeName(c) {
		// Constants are not narrowed to a wrapper of another type.
		v.errs.AddNewf(c.Pos(), "Type mismatch: cannot convert from %s to %s", constTypeName(c), selName)
		return false
	}
	return true
}

func constTypeName(c *pattern.Constant) string {
	switch c.Kind {
	case ast.IntConst:
		if c.Long {
			return "long"
		}
		return "int"
	case ast.CharConst:
		return "char"
	case ast.StringConst:
		return "String"
	case ast.BoolConst:
		return "boolean"
	}
	return c.Text
}
