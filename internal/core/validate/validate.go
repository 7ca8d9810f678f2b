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

// Package validate checks that the labels of a switch are well formed.
package validate

import (
	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// Config holds the language options that affect label checks.
type Config struct {
	// UnnamedPatterns allows "_" as a pattern variable in labels with more
	// than one element.
	UnnamedPatterns bool
}

// Switch reports the ill-formed labels of s. Dominance and exhaustiveness
// are checked elsewhere.
func Switch(g *typegraph.Graph, s *pattern.Switch, cfg *Config) errors.List {
	if cfg == nil {
		cfg = &Config{}
	}
	v := validator{Config: *cfg, g: g, s: s}
	v.selector()
	v.labels()
	v.constants()
	v.patterns()
	v.fallThrough()
	v.scopes()
	v.guards()
	return v.errs
}

type validator struct {
	Config
	g    *typegraph.Graph
	s    *pattern.Switch
	errs errors.List
}

// primitive returns the primitive type of the selector, or nil.
func (v *validator) primitive() *typegraph.Node {
	t := v.s.Selector
	if t.Dims > 0 {
		return nil
	}
	if n := v.g.Node(t.ID); n != nil && n.Kind == typegraph.Primitive {
		return n
	}
	return nil
}

// boxed returns the selector type with a primitive replaced by its wrapper.
func (v *validator) boxed() typegraph.Ref {
	t := v.s.Selector
	if t.Dims == 0 && t.ID != typegraph.NoID {
		t.ID = v.g.Box(t.ID)
	}
	return t
}

func (v *validator) selector() {
	p := v.primitive()
	if p == nil {
		return
	}
	switch p.Name {
	case "long", "float", "double", "boolean":
		v.errs.AddNewf(v.selectorPos(), "Cannot switch on a value of type %s. Only convertible int values, strings or enum variables are permitted", p.Name)
		return
	}
	for _, l := range v.s.Labels {
		for _, e := range l.Elems {
			if pattern.IsPattern(e) {
				v.errs.AddNewf(e.Pos(), "Pattern matching on a value of primitive type %s is not allowed; the selector must be of a reference type", p.Name)
				return
			}
		}
	}
}

func (v *validator) selectorPos() token.Pos {
	if t := v.s.Node.Selector; t != nil && t.Pos.IsValid() {
		return t.Pos
	}
	return v.s.Pos
}

// labels checks the placement of null and default, and the combination of
// patterns with other elements.
func (v *validator) labels() {
	seenDefault := false
	for _, l := range v.s.Labels {
		elems := l.Elems
		bare := len(elems) == 1 && len(l.Case.Labels) == 0
		nullDefault := len(elems) == 2 && isNull(elems[0]) && isDefault(elems[1])
		for i, e := range elems {
			switch e.(type) {
			case *pattern.Null:
				if len(elems) > 1 && !(i == 0 && nullDefault) {
					v.errs.AddNewf(e.Pos(), "A null case label has to be either the only expression in a case label or the first expression followed only by a default")
				}
			case *pattern.Default:
				if !bare && !(i == 1 && nullDefault) {
					v.errs.AddNewf(e.Pos(), "A 'default' can occur after 'case' only as a second case label expression and that too only if 'null' precedes in 'case null, default'")
				}
				if seenDefault {
					v.errs.AddNewf(e.Pos(), "The default case is already defined")
				}
				seenDefault = true
			}
		}

		if l.HasPattern() {
			for _, e := range elems {
				if !pattern.IsPattern(e) {
					v.errs.AddNewf(l.Pos, "Cannot mix pattern with other case labels")
					break
				}
			}
		} else if l.Guard != nil {
			v.errs.AddNewf(l.Guard.Pos, "A guard can only be used with a pattern case label")
		}

		for _, e := range elems {
			if t, ok := e.(*pattern.Type); ok && t.Var {
				v.errs.AddNewf(e.Pos(), "'var' is not allowed here")
			}
			if len(elems) > 1 && pattern.IsPattern(e) && v.named(e) {
				v.errs.AddNewf(e.Pos(), "Named pattern variables are not allowed here")
			}
		}
	}
}

// named reports whether p declares a pattern variable that is not allowed
// in a label with several elements. Unnamed variables "_" are allowed when
// the language level supports them.
func (v *validator) named(p pattern.Pattern) bool {
	if pattern.Named(p) {
		return true
	}
	if v.UnnamedPatterns {
		return false
	}
	var unnamed func(p pattern.Pattern) bool
	unnamed = func(p pattern.Pattern) bool {
		switch p := p.(type) {
		case *pattern.Type:
			return p.Binding == "_"
		case *pattern.Record:
			if p.Binding == "_" {
				return true
			}
			for _, s := range p.Sub {
				if unnamed(s) {
					return true
				}
			}
		}
		return false
	}
	return unnamed(p)
}

func isNull(p pattern.Pattern) bool {
	_, ok := p.(*pattern.Null)
	return ok
}

func isDefault(p pattern.Pattern) bool {
	_, ok := p.(*pattern.Default)
	return ok
}
