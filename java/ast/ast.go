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

// Package ast declares the resolved syntax trees the checker consumes.
//
// Trees are produced by an external parser and binder. They carry only what
// the sealed-hierarchy and switch analyses need: type declarations with their
// modifiers and supertypes, and methods with their switch constructs.
package ast

import (
	"strings"

	"github.com/groovy/groovy-eclipse-sub013/java/token"
)

// A File is a compilation unit.
type File struct {
	Name    string
	Module  string // empty for the unnamed module
	Package string // empty for the default package
	Types   []*TypeDecl
	Methods []*Method

	Pos token.Pos
}

// TypeKind is the kind of a type declaration.
type TypeKind int8

const (
	Class TypeKind = iota
	Interface
	Record
	Enum
	Annotation
)

var kindNames = [...]string{
	Class:      "class",
	Interface:  "interface",
	Record:     "record",
	Enum:       "enum",
	Annotation: "annotation",
}

func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseTypeKind returns the kind named s.
func ParseTypeKind(s string) (TypeKind, bool) {
	for i, n := range kindNames {
		if n == s {
			return TypeKind(i), true
		}
	}
	return 0, false
}

// A Modifier is a declaration modifier as written in source.
type Modifier struct {
	Name string // "sealed", "non-sealed", "final", "abstract", "static", ...
	Pos  token.Pos
}

// A TypeDecl is a class, interface, record, enum or annotation declaration.
type TypeDecl struct {
	Name        string
	Kind        TypeKind
	Modifiers   []Modifier
	Annotations []string
	TypeParams  []string

	Extends    *TypeExpr   // superclass of a class
	Implements []*TypeExpr // superinterfaces; the extends list of an interface

	// HasPermits distinguishes an absent permits clause from an empty one.
	HasPermits bool
	Permits    []*TypeExpr

	Components []*Component // record components
	Constants  []*Constant  // enum constants
	Members    []*TypeDecl  // member types

	Local     bool // declared in a method body
	Anonymous bool // an anonymous class body

	Pos token.Pos
}

// HasModifier reports whether d carries the named modifier.
func (d *TypeDecl) HasModifier(name string) bool {
	for _, m := range d.Modifiers {
		if m.Name == name {
			return true
		}
	}
	return false
}

// HasAnnotation reports whether d carries the annotation with the given simple
// or qualified name.
func (d *TypeDecl) HasAnnotation(name string) bool {
	for _, a := range d.Annotations {
		a = strings.TrimPrefix(a, "@")
		if a == name || strings.HasSuffix(a, "."+name) {
			return true
		}
	}
	return false
}

// Supertypes returns the declared direct supertypes in source order.
func (d *TypeDecl) Supertypes() []*TypeExpr {
	var a []*TypeExpr
	if d.Extends != nil {
		a = append(a, d.Extends)
	}
	return append(a, d.Implements...)
}

// A Component is a record component.
type Component struct {
	Name string
	Type *TypeExpr
	Pos  token.Pos
}

// A Constant is an enum constant.
type Constant struct {
	Name string
	Pos  token.Pos
}

// A TypeExpr is a reference to a type as written in source.
type TypeExpr struct {
	Name     string // simple or qualified name; "?" for a wildcard
	Args     []*TypeExpr
	Dims     int // array dimensions
	Wildcard bool

	Pos token.Pos
}

func (t *TypeExpr) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	for i := 0; i < t.Dims; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

// A Method groups the switches of one method body together with the locals
// that are in scope for them.
type Method struct {
	Name     string
	Locals   []*Local
	Switches []*Switch
	Types    []*TypeDecl // local and anonymous classes

	Pos token.Pos
}

// A Local is a local variable or parameter of the enclosing method.
type Local struct {
	Name  string
	Final bool

	// Assigned lists the positions of assignments after the declaration.
	// A local with an initializer and no assignments, or without an
	// initializer and exactly one assignment, is effectively final.
	Assigned       []token.Pos
	HasInitializer bool

	Pos token.Pos
}

// EffectivelyFinal reports whether l is final or effectively final.
func (l *Local) EffectivelyFinal() bool {
	switch {
	case l.Final:
		return true
	case l.HasInitializer:
		return len(l.Assigned) == 0
	default:
		return len(l.Assigned) <= 1
	}
}

// A Switch is a switch statement or expression.
type Switch struct {
	Selector   *TypeExpr
	Expression bool // switch expression, as opposed to statement
	Arrow      bool // rule form "case L ->" as opposed to "case L:"
	Cases      []*Case

	Pos token.Pos
}

// A Case is a switch label together with its body. A bare "default:" has
// Default set and no Labels.
type Case struct {
	Default bool
	Labels  []*Label
	Guard   *Guard
	Body    []*Stmt

	Pos token.Pos
}

// LabelKind discriminates the elements of a case label.
type LabelKind int8

const (
	NullLabel LabelKind = iota
	DefaultLabel
	ConstLabel
	TypePattern
	RecordPattern
)

// ConstKind is the kind of a constant case label.
type ConstKind int8

const (
	IntConst ConstKind = iota
	CharConst
	StringConst
	EnumConst
	BoolConst
)

// A Label is one comma-separated element of a case label.
type Label struct {
	Kind LabelKind

	// ConstLabel
	Const ConstKind
	Value string // literal text; for enum constants the (qualified) name

	// TypePattern and RecordPattern
	Type    *TypeExpr // nil for "var"
	Var     bool      // "var x"
	Binding string    // "" or "_" when unnamed
	Sub     []*Label  // record sub-patterns

	Pos token.Pos
}

// IsPattern reports whether l is a type or record pattern.
func (l *Label) IsPattern() bool {
	return l.Kind == TypePattern || l.Kind == RecordPattern
}

// A Guard is the "when" clause of a case label.
type Guard struct {
	Text string
	Refs []*Ref

	// Constant holds the value of a constant guard expression: "true",
	// "false", or "" if the guard is not a constant expression.
	Constant string

	Pos token.Pos
}

// A Ref is a simple name referenced from a guard.
type Ref struct {
	Name string
	Pos  token.Pos
}

// StmtKind is the kind of a statement in a case body.
type StmtKind int8

const (
	ExprStmt StmtKind = iota
	BreakStmt
	YieldStmt
	ReturnStmt
	ThrowStmt
	ContinueStmt
	LocalStmt
)

var stmtNames = [...]string{
	ExprStmt:     "expr",
	BreakStmt:    "break",
	YieldStmt:    "yield",
	ReturnStmt:   "return",
	ThrowStmt:    "throw",
	ContinueStmt: "continue",
	LocalStmt:    "local",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtNames) {
		return stmtNames[k]
	}
	return "unknown"
}

// ParseStmtKind returns the statement kind named s.
func ParseStmtKind(s string) (StmtKind, bool) {
	for i, n := range stmtNames {
		if n == s {
			return StmtKind(i), true
		}
	}
	return 0, false
}

// A Stmt is a statement in a case body, reduced to its control-flow effect.
type Stmt struct {
	Kind StmtKind
	Name string // declared name for LocalStmt

	Pos token.Pos
}

// CompletesNormally reports whether control can flow past the last statement
// of body. An empty body completes normally.
func CompletesNormally(body []*Stmt) bool {
	if len(body) == 0 {
		return true
	}
	switch body[len(body)-1].Kind {
	case BreakStmt, YieldStmt, ReturnStmt, ThrowStmt, ContinueStmt:
		return false
	}
	return true
}

// Walk calls f for each type declaration in file, including member, local
// and anonymous types, in source order. The enclosing chain is passed
// outermost first.
func Walk(file *File, f func(d *TypeDecl, enclosing []*TypeDecl)) {
	var walk func(d *TypeDecl, enc []*TypeDecl)
	walk = func(d *TypeDecl, enc []*TypeDecl) {
		f(d, enc)
		enc = append(enc[:len(enc):len(enc)], d)
		for _, m := range d.Members {
			walk(m, enc)
		}
	}
	for _, d := range file.Types {
		walk(d, nil)
	}
	for _, m := range file.Methods {
		for _, d := range m.Types {
			walk(d, nil)
		}
	}
}
