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

// Package subsume decides whether a case label dominates a later one: every
// value the later label matches is already matched by the earlier label,
// which makes the later one unreachable.
package subsume

import (
	"go.uber.org/zap"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

// Profile configures the dominance checks.
type Profile struct {
	// AfterDefault reports a pattern label that follows a default label as
	// dominated.
	AfterDefault bool

	// Logger receives dominance decisions at debug level.
	Logger *zap.Logger
}

// Dominance is the profile of the current language level.
var Dominance = Profile{AfterDefault: true}

const dominatedMsg = "This case label is dominated by one of the preceding case labels"

// Check reports every label element of s that is dominated by an element of
// a preceding label.
func (p *Profile) Check(g *typegraph.Graph, s *pattern.Switch) errors.List {
	x := subsumer{Profile: *p, g: g}
	if x.Logger == nil {
		x.Logger = zap.NewNop()
	}
	x.check(s)
	return x.errs
}

// Dominates reports whether the earlier label a dominates the later label b,
// that is, whether some element of a dominates some element of b. A label
// never dominates itself, and a guarded label dominates nothing.
func (p *Profile) Dominates(g *typegraph.Graph, a, b *pattern.Label) bool {
	x := subsumer{Profile: *p, g: g}
	for _, e := range b.Elems {
		if x.label(a, e) {
			return true
		}
	}
	return false
}

type subsumer struct {
	Profile
	g    *typegraph.Graph
	errs errors.List
}

func (s *subsumer) check(sw *pattern.Switch) {
	seenDefault := false
	for j, l := range sw.Labels {
		for _, e := range l.Elems {
			switch e.(type) {
			case *pattern.Null, *pattern.Default:
				continue
			}
			if seenDefault && s.AfterDefault && pattern.IsPattern(e) {
				s.errs.AddNewf(e.Pos(), dominatedMsg)
				continue
			}
			for _, prev := range sw.Labels[:j] {
				if s.label(prev, e) {
					s.Logger.Debug("dominated",
						zap.Int("label", j),
						zap.Int("by", prev.Index),
						zap.Stringer("pos", e.Pos()))
					s.errs.AddNewf(e.Pos(), dominatedMsg)
					break
				}
			}
		}
		if l.HasDefault() {
			seenDefault = true
		}
	}
}

// label reports whether some element of a dominates e.
func (s *subsumer) label(a *pattern.Label, e pattern.Pattern) bool {
	if a.Guarded() {
		return false
	}
	for _, x := range a.Elems {
		if x != e && s.pattern(x, e) {
			return true
		}
	}
	return false
}

// pattern reports whether the pattern x dominates the pattern y, ignoring
// guards.
func (s *subsumer) pattern(x, y pattern.Pattern) bool {
	switch x := x.(type) {
	case *pattern.Type:
		if !x.T.IsValid() {
			return false
		}
		switch y := y.(type) {
		case *pattern.Type:
			return y.T.IsValid() && s.g.IsRefSubtype(y.T, x.T)
		case *pattern.Record:
			return y.T.IsValid() && s.g.IsRefSubtype(y.T, x.T)
		case *pattern.Constant:
			t := s.constantType(y)
			return t.IsValid() && s.g.IsRefSubtype(t, x.T)
		}

	case *pattern.Record:
		y, ok := y.(*pattern.Record)
		if !ok || !x.T.IsValid() || !y.T.IsValid() {
			return false
		}
		if s.g.Erasure(x.T) != s.g.Erasure(y.T) || len(x.Sub) != len(y.Sub) {
			return false
		}
		if !s.g.Compatible(x.T, y.T) {
			// The patterns match distinct parameterizations, which is
			// reported as an unsafe cast.
			return false
		}
		for i := range x.Sub {
			if !s.pattern(x.Sub[i], y.Sub[i]) {
				return false
			}
		}
		return true
	}
	// Constants, null and default dominate nothing by subsumption.
	return false
}

// constantType returns the boxed type of a constant label.
func (s *subsumer) constantType(c *pattern.Constant) typegraph.Ref {
	name := ""
	switch c.Kind {
	case ast.IntConst:
		name = "java.lang.Integer"
		if c.Long {
			name = "java.lang.Long"
		}
	case ast.CharConst:
		name = "java.lang.Character"
	case ast.StringConst:
		name = "java.lang.String"
	case ast.BoolConst:
		name = "java.lang.Boolean"
	case ast.EnumConst:
		return typegraph.Ref{ID: c.Enum}
	}
	return typegraph.Ref{ID: s.g.Lookup(name)}
}
