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

// Package exhaust decides whether the labels of a switch cover every value
// of its selector type.
//
// Coverage is computed over a pattern matrix: each unguarded label element
// is a row, and each column is a value position to be matched, starting
// with the selector. A column is covered if a row is total on its type, or
// if its type can be split into cases that are each covered: the permitted
// subtypes of a sealed type, the constants of an enum, or the components of
// a record.
package exhaust

import (
	"slices"

	"github.com/mpvl/unique"
	"go.uber.org/zap"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/sealed"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

type Config struct {
	// IncompleteEnum warns about enum switch statements that neither have
	// a default nor list every constant. Such statements need not be
	// exhaustive.
	IncompleteEnum bool

	Logger *zap.Logger
}

// IsExhaustive reports whether the labels of s cover every value of its
// selector type. Guards are never assumed to hold, and null labels add
// nothing. A switch whose selector type did not resolve counts as
// exhaustive, as there is nothing to check it against.
func IsExhaustive(h *sealed.Hierarchy, s *pattern.Switch) bool {
	c := checker{h: h, g: h.Graph(), log: zap.NewNop()}
	return c.exhaustive(s)
}

// Missing returns the display names of the values not covered by s: leaf
// types, enum constants, or record types whose components are not fully
// covered. It returns nil if s is exhaustive.
func Missing(h *sealed.Hierarchy, s *pattern.Switch) []string {
	c := checker{h: h, g: h.Graph(), log: zap.NewNop()}
	if c.exhaustive(s) {
		return nil
	}
	a := c.missing(c.column(s.Selector), rows(s), 0)
	unique.Strings(&a)
	return a
}

// RequiresExhaustive reports whether s must be exhaustive: switch
// expressions, and switch statements that use patterns, null labels or a
// selector type other than the legacy integral, String and enum types.
func RequiresExhaustive(g *typegraph.Graph, s *pattern.Switch) bool {
	if s.Expression || s.IsEnhanced() {
		return true
	}
	return s.Selector.IsValid() && !IsLegacySelector(g, s.Selector)
}

// IsLegacySelector reports whether t may be switched on without patterns.
func IsLegacySelector(g *typegraph.Graph, t typegraph.Ref) bool {
	if t.Dims > 0 || t.ID == typegraph.NoID {
		return false
	}
	n := g.Node(t.ID)
	if n.Kind == typegraph.Enum || t.ID == g.StringType() {
		return true
	}
	if u := g.Unbox(t.ID); u != typegraph.NoID {
		n = g.Node(u)
	}
	switch n.Name {
	case "char", "byte", "short", "int":
		return true
	}
	return false
}

// Check reports a switch that must be exhaustive but is not. With
// cfg.IncompleteEnum, it also warns about each constant missing from an
// enum switch statement without a default.
func Check(h *sealed.Hierarchy, s *pattern.Switch, cfg *Config) errors.List {
	if cfg == nil {
		cfg = &Config{}
	}
	c := checker{h: h, g: h.Graph(), log: cfg.Logger}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	var errs errors.List
	if RequiresExhaustive(c.g, s) {
		if c.exhaustive(s) {
			return nil
		}
		n := c.g.Node(s.Selector.ID)
		switch {
		case !s.Expression:
			errs.AddNewf(s.Pos, "An enhanced switch statement should be exhaustive; a default label expected")
		case n != nil && n.Kind == typegraph.Enum && s.Selector.Dims == 0:
			errs.AddNewf(s.Pos, "A switch expression should cover all possible values")
		default:
			errs.AddNewf(s.Pos, "A switch expression should have a default case")
		}
		return errs
	}
	if cfg.IncompleteEnum && !s.HasDefault() {
		n := c.g.Node(s.Selector.ID)
		if n == nil || n.Kind != typegraph.Enum || s.Selector.Dims > 0 {
			return nil
		}
		labeled := map[string]bool{}
		for _, l := range s.Labels {
			for _, e := range l.Elems {
				if k, ok := e.(*pattern.Constant); ok && k.Enum == n.ID {
					labeled[k.Str] = true
				}
			}
		}
		for _, k := range n.Constants {
			if !labeled[k] {
				errs.AddWarnf(s.Pos, "The enum constant %s needs a corresponding case label in this enum switch on %s", k, n.DisplayName())
			}
		}
	}
	return errs
}

type checker struct {
	h   *sealed.Hierarchy
	g   *typegraph.Graph
	log *zap.Logger
}

func (c *checker) exhaustive(s *pattern.Switch) bool {
	if s.HasDefault() || !s.Selector.IsValid() {
		return true
	}
	ok := c.covers([]typegraph.Ref{c.column(s.Selector)}, rows(s))
	c.log.Debug("exhaustiveness",
		zap.String("selector", c.g.RefString(s.Selector)),
		zap.Bool("exhaustive", ok))
	return ok
}

// column returns the type of the values in a column. Primitive selectors
// are matched as their wrapper type.
func (c *checker) column(t typegraph.Ref) typegraph.Ref {
	if t.Dims == 0 && t.ID != typegraph.NoID {
		t.ID = c.g.Box(t.ID)
	}
	return t
}

// A row is a vector of patterns, one per column. A nil entry matches any
// value in its column.
type row []pattern.Pattern

// rows returns the rows contributed by s. Guarded labels contribute
// nothing, and neither do null labels or constants other than enum
// constants.
func rows(s *pattern.Switch) []row {
	var a []row
	for _, l := range s.Labels {
		if l.Guarded() {
			continue
		}
		for _, e := range l.Elems {
			switch e := e.(type) {
			case *pattern.Type, *pattern.Record:
				a = append(a, row{e})
			case *pattern.Constant:
				if e.Enum != typegraph.NoID && e.Str != "" {
					a = append(a, row{e})
				}
			}
		}
	}
	return a
}

// total reports whether p matches every non-null value of type t.
func (c *checker) total(p pattern.Pattern, t typegraph.Ref) bool {
	switch p := p.(type) {
	case nil:
		return true
	case *pattern.Type:
		if !p.T.IsValid() {
			return false
		}
		if p.Var {
			return true
		}
		return c.g.IsRefSubtype(t, p.T)
	}
	return false
}

// covers reports whether rows cover every combination of values of types.
func (c *checker) covers(types []typegraph.Ref, rows []row) bool {
	if len(types) == 0 {
		return len(rows) > 0
	}
	t, rest := types[0], types[1:]

	var tails []row
	for _, r := range rows {
		if c.total(r[0], t) {
			tails = append(tails, r[1:])
		}
	}
	if len(tails) > 0 && c.covers(rest, tails) {
		return true
	}

	n := c.g.Node(t.ID)
	if n == nil || t.Dims > 0 || n.Is(typegraph.Inconsistent) {
		return false
	}
	switch {
	case n.Kind == typegraph.Record && c.hasRecordPattern(rows, n.ID):
		return c.coversRecord(t, rest, rows)
	case n.Kind == typegraph.Enum:
		return c.coversEnum(t, n, rest, rows)
	case c.h.IsSealed(n.ID) && n.IsAbstract():
		for _, sub := range c.split(t) {
			if !c.covers(append([]typegraph.Ref{sub}, rest...), c.relevant(rows, sub)) {
				c.log.Debug("uncovered subtype", zap.String("type", c.g.RefString(sub)))
				return false
			}
		}
		return true
	}
	return false
}

// split returns the permitted subtypes of the sealed type t that can be
// instances of t, parameterized accordingly.
func (c *checker) split(t typegraph.Ref) []typegraph.Ref {
	var a []typegraph.Ref
	for _, id := range c.h.Permitted(t.ID) {
		inst, ok := c.g.Instantiate(id, t)
		if !ok {
			continue
		}
		a = append(a, inst)
	}
	return a
}

// relevant returns the rows whose first pattern may match a value of type t.
func (c *checker) relevant(rows []row, t typegraph.Ref) []row {
	var a []row
	for _, r := range rows {
		switch p := r[0].(type) {
		case nil:
			a = append(a, r)
		case *pattern.Type:
			if p.T.IsValid() && (p.Var || c.g.IsRefSubtype(t, p.T) || c.g.IsRefSubtype(p.T, t)) {
				a = append(a, r)
			}
		case *pattern.Record:
			if p.T.IsValid() && c.g.IsRefSubtype(p.T, t) && c.g.Compatible(p.T, t) {
				a = append(a, r)
			}
		case *pattern.Constant:
			if p.Enum == t.ID {
				a = append(a, r)
			}
		}
	}
	return a
}

func (c *checker) hasRecordPattern(rows []row, id typegraph.ID) bool {
	for _, r := range rows {
		if p, ok := r[0].(*pattern.Record); ok && c.g.Erasure(p.T) == id {
			return true
		}
	}
	return false
}

// coversRecord expands a record column into its components.
func (c *checker) coversRecord(t typegraph.Ref, rest []typegraph.Ref, rows []row) bool {
	comps := c.g.ComponentTypes(t)
	var expanded []row
	for _, r := range rows {
		switch p := r[0].(type) {
		case *pattern.Record:
			if c.g.Erasure(p.T) != t.ID || len(p.Sub) != len(comps) || !c.g.Compatible(p.T, t) {
				continue
			}
			e := make(row, 0, len(comps)+len(r)-1)
			e = append(e, p.Sub...)
			expanded = append(expanded, append(e, r[1:]...))
		default:
			if c.total(p, t) {
				e := make(row, len(comps), len(comps)+len(r)-1)
				expanded = append(expanded, append(e, r[1:]...))
			}
		}
	}
	types := make([]typegraph.Ref, 0, len(comps)+len(rest))
	for _, ct := range comps {
		types = append(types, c.column(ct))
	}
	return c.covers(append(types, rest...), expanded)
}

// coversEnum splits an enum column into its constants.
func (c *checker) coversEnum(t typegraph.Ref, n *typegraph.Node, rest []typegraph.Ref, rows []row) bool {
	if len(n.Constants) == 0 {
		return false
	}
	for _, k := range n.Constants {
		var tails []row
		for _, r := range rows {
			p, ok := r[0].(*pattern.Constant)
			if ok && p.Enum == n.ID && p.Str == k || c.total(r[0], t) {
				tails = append(tails, r[1:])
			}
		}
		if len(tails) == 0 || !c.covers(rest, tails) {
			return false
		}
	}
	return true
}

// missing describes values of types[0] that rows do not cover. Only the
// first column is split; deeper gaps are reported as the type containing
// them.
func (c *checker) missing(t typegraph.Ref, rows []row, depth int) []string {
	if c.covers([]typegraph.Ref{t}, rows) {
		return nil
	}
	n := c.g.Node(t.ID)
	if n == nil || t.Dims > 0 || n.Is(typegraph.Inconsistent) || depth > 32 {
		return []string{c.g.RefString(t)}
	}
	switch {
	case n.Kind == typegraph.Enum && len(n.Constants) > 0:
		var a []string
		for _, k := range n.Constants {
			covered := slices.ContainsFunc(rows, func(r row) bool {
				p, ok := r[0].(*pattern.Constant)
				return ok && p.Enum == n.ID && p.Str == k
			})
			if !covered {
				a = append(a, n.DisplayName()+"."+k)
			}
		}
		return a
	case c.h.IsSealed(n.ID) && n.IsAbstract():
		var a []string
		for _, sub := range c.split(t) {
			a = append(a, c.missing(sub, c.relevant(rows, sub), depth+1)...)
		}
		return a
	}
	return []string{c.g.RefString(t)}
}
