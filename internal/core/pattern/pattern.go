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

// Package pattern defines the resolved form of switch constructs: each case
// label element is one of a closed set of pattern kinds, with all type names
// resolved against a type graph.
package pattern

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// A Pattern is one element of a case label. The implementations are Type,
// Record, Constant, Null and Default; no others exist.
type Pattern interface {
	Pos() token.Pos
	pattern()
}

// Type is a type pattern "T x", or "var x" inside a record pattern.
type Type struct {
	T       typegraph.Ref // the declared type; for var, the inferred type
	Var     bool
	Binding string // "" or "_" if unnamed
	At      token.Pos
}

// Record is a record pattern "R(p1, ..., pn)".
type Record struct {
	// T is the record type. Its type arguments are inferred from the
	// matched type if the pattern names a raw generic record.
	T       typegraph.Ref
	Sub     []Pattern
	Binding string
	At      token.Pos
}

// Constant is a constant case label.
type Constant struct {
	Kind ast.ConstKind
	Text string // literal text as written

	// Value holds the numeric value of int and char constants.
	Value *apd.Decimal
	Long  bool // an int literal with an L suffix

	// Str holds the value of string constants and the constant name of enum
	// constants.
	Str string

	// Enum is the enum type of an enum constant. For an unqualified name it
	// is the selector type.
	Enum typegraph.ID

	At token.Pos
}

// Null is the "null" case label.
type Null struct{ At token.Pos }

// Default is the "default" case label, either bare or following null.
type Default struct{ At token.Pos }

func (p *Type) Pos() token.Pos     { return p.At }
func (p *Record) Pos() token.Pos   { return p.At }
func (p *Constant) Pos() token.Pos { return p.At }
func (p *Null) Pos() token.Pos     { return p.At }
func (p *Default) Pos() token.Pos  { return p.At }

func (*Type) pattern()     {}
func (*Record) pattern()   {}
func (*Constant) pattern() {}
func (*Null) pattern()     {}
func (*Default) pattern()  {}

// IsPattern reports whether p is a type or record pattern.
func IsPattern(p Pattern) bool {
	switch p.(type) {
	case *Type, *Record:
		return true
	}
	return false
}

// Named reports whether p declares a pattern variable, either itself or in
// one of its sub-patterns.
func Named(p Pattern) bool {
	switch p := p.(type) {
	case *Type:
		return p.Binding != "" && p.Binding != "_"
	case *Record:
		if p.Binding != "" && p.Binding != "_" {
			return true
		}
		for _, s := range p.Sub {
			if Named(s) {
				return true
			}
		}
	}
	return false
}

// Bindings returns the pattern variables declared by p in source order.
func Bindings(p Pattern) []*Binding {
	var a []*Binding
	var walk func(p Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case *Type:
			if p.Binding != "" && p.Binding != "_" {
				a = append(a, &Binding{Name: p.Binding, Pos: p.At})
			}
		case *Record:
			for _, s := range p.Sub {
				walk(s)
			}
			if p.Binding != "" && p.Binding != "_" {
				a = append(a, &Binding{Name: p.Binding, Pos: p.At})
			}
		}
	}
	walk(p)
	return a
}

// A Binding is a pattern variable.
type Binding struct {
	Name string
	Pos  token.Pos
}

// A Label is a case clause: its label elements, guard and body.
type Label struct {
	Index int // position of the case in the switch

	// Elems holds the label elements in source order. A bare "default" has
	// a single Default element.
	Elems []Pattern
	Guard *ast.Guard
	Body  []*ast.Stmt

	Case *ast.Case
	Pos  token.Pos
}

// Guarded reports whether l has a guard. A guard that is the constant true
// still counts: such a label neither dominates nor covers.
func (l *Label) Guarded() bool { return l.Guard != nil }

// HasPattern reports whether an element of l is a type or record pattern.
func (l *Label) HasPattern() bool {
	for _, e := range l.Elems {
		if IsPattern(e) {
			return true
		}
	}
	return false
}

// HasDefault reports whether l contains a default element.
func (l *Label) HasDefault() bool {
	for _, e := range l.Elems {
		if _, ok := e.(*Default); ok {
			return true
		}
	}
	return false
}

// HasNull reports whether l contains the null label.
func (l *Label) HasNull() bool {
	for _, e := range l.Elems {
		if _, ok := e.(*Null); ok {
			return true
		}
	}
	return false
}

// A Switch is a switch construct with resolved labels.
type Switch struct {
	// Selector is the static type of the selector expression. It is invalid
	// if the type did not resolve.
	Selector   typegraph.Ref
	Expression bool
	Arrow      bool
	Labels     []*Label

	// Method is the enclosing method, which provides the locals a guard
	// may refer to.
	Method *ast.Method
	Node   *ast.Switch
	Pos    token.Pos
}

// IsEnhanced reports whether s uses patterns or null labels, which makes
// it subject to exhaustiveness and dominance checks.
func (s *Switch) IsEnhanced() bool {
	for _, l := range s.Labels {
		if l.HasPattern() || l.HasNull() {
			return true
		}
	}
	return false
}

// HasDefault reports whether any label of s contains a default element.
func (s *Switch) HasDefault() bool {
	for _, l := range s.Labels {
		if l.HasDefault() {
			return true
		}
	}
	return false
}
