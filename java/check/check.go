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

// Package check runs the sealed hierarchy and switch analyses over a set of
// compilation units.
//
// The analyses run in a fixed order: the type graph is built, sealed
// hierarchies are validated, and then every switch is resolved and checked
// for well-formedness, dominance and exhaustiveness. No analysis stops at the
// first problem; all diagnostics are collected in one list.
package check

import (
	"go.uber.org/zap"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/exhaust"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/sealed"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/subsume"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/validate"
	"github.com/groovy/groovy-eclipse-sub013/internal/langlevel"
	"github.com/groovy/groovy-eclipse-sub013/internal/logging"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

// Config configures a check.
type Config struct {
	// Level selects the language features in effect. A nil Level selects
	// the latest release without preview features.
	Level *langlevel.Level

	// Logger receives progress at info level and analysis decisions at
	// debug level. A nil Logger discards them.
	Logger *zap.Logger

	// IncompleteEnum warns about enum switch statements that neither have a
	// default nor list every constant.
	IncompleteEnum bool

	// Strict reports warnings as errors.
	Strict bool

	// SortDiags sorts the diagnostics by position and removes duplicates.
	// Otherwise they are reported in the order the analyses found them.
	SortDiags bool
}

// A Result holds the outcome of a check.
type Result struct {
	Graph     *typegraph.Graph
	Hierarchy *sealed.Hierarchy
	Switches  []*Switch

	// Errs holds the diagnostics of all analyses.
	Errs errors.List
}

// A Switch is a checked switch.
type Switch struct {
	File   string
	Method string
	*pattern.Switch

	// Exhaustive reports whether the labels cover the selector type.
	Exhaustive bool

	// Missing lists the uncovered leaves, if any.
	Missing []string
}

// Files checks the given compilation units as one program.
func Files(cfg *Config, files ...*ast.File) *Result {
	if cfg == nil {
		cfg = &Config{SortDiags: true}
	}
	c := &checker{cfg: cfg, log: logging.OrNop(cfg.Logger)}
	if c.level = cfg.Level; c.level == nil {
		c.level, _ = langlevel.New("", false)
	}
	return c.run(files)
}

type checker struct {
	cfg   *Config
	level *langlevel.Level
	log   *zap.Logger
	errs  errors.List
}

func (c *checker) run(files []*ast.File) *Result {
	c.log.Info("checking", zap.Int("units", len(files)), zap.Stringer("release", c.level))

	g, errs := typegraph.Build(files)
	c.errs.Add(errs)
	for _, f := range files {
		c.sealedFeature(f)
	}

	h, errs := sealed.Validate(g, &sealed.Config{Logger: c.log})
	c.errs.Add(errs)

	r := &Result{Graph: g, Hierarchy: h}
	profile := &subsume.Profile{
		AfterDefault: c.level.AtLeast("21"),
		Logger:       c.log,
	}
	vcfg := &validate.Config{
		UnnamedPatterns: c.level.Features().UnnamedPatterns,
	}
	ecfg := &exhaust.Config{
		IncompleteEnum: c.cfg.IncompleteEnum,
		Logger:         c.log,
	}
	for i, f := range files {
		n := len(c.errs)
		for _, m := range f.Methods {
			for _, sw := range m.Switches {
				s, errs := pattern.Resolve(g, typegraph.FileScope(i), m, sw)
				c.errs.Add(errs)
				c.switchFeatures(s)
				c.errs.Add(validate.Switch(g, s, vcfg))
				c.errs.Add(profile.Check(g, s))
				c.errs.Add(exhaust.Check(h, s, ecfg))
				r.Switches = append(r.Switches, &Switch{
					File:       f.Name,
					Method:     m.Name,
					Switch:     s,
					Exhaustive: exhaust.IsExhaustive(h, s),
					Missing:    exhaust.Missing(h, s),
				})
			}
		}
		c.log.Info("checked unit",
			zap.String("file", f.Name),
			zap.Int("types", len(f.Types)),
			zap.Int("diagnostics", len(c.errs)-n))
	}

	if c.cfg.Strict {
		for i, e := range c.errs {
			if e.Severity() == errors.SeverityWarning {
				c.errs[i] = errors.WithSeverity(e, errors.SeverityError)
			}
		}
	}
	if c.cfg.SortDiags {
		c.errs = c.errs.Sanitize()
	}
	r.Errs = c.errs
	return r
}

// sealedFeature reports the sealed, non-sealed and permits syntax in f if
// sealed types are not available.
func (c *checker) sealedFeature(f *ast.File) {
	err := c.level.Check("SealedTypes")
	if err == nil {
		return
	}
	ast.Walk(f, func(d *ast.TypeDecl, _ []*ast.TypeDecl) {
		for _, m := range d.Modifiers {
			if m.Name == "sealed" || m.Name == "non-sealed" {
				c.errs.Add(errors.Wrapf(err, m.Pos, ""))
			}
		}
		if d.HasPermits {
			pos := d.Pos
			if len(d.Permits) > 0 {
				pos = d.Permits[0].Pos
			}
			c.errs.Add(errors.Wrapf(err, pos, ""))
		}
	})
}

// switchFeatures reports the first pattern and the first record pattern of s
// if the corresponding features are not available.
func (c *checker) switchFeatures(s *pattern.Switch) {
	patterns := c.level.Check("PatternSwitch")
	records := c.level.Check("RecordPatterns")
	for _, l := range s.Labels {
		for _, e := range l.Elems {
			switch e.(type) {
			case *pattern.Type, *pattern.Null:
				if patterns != nil {
					c.errs.Add(errors.Wrapf(patterns, e.Pos(), ""))
					patterns = nil
				}
			case *pattern.Record:
				if patterns != nil {
					c.errs.Add(errors.Wrapf(patterns, e.Pos(), ""))
					patterns = nil
				}
				if records != nil {
					c.errs.Add(errors.Wrapf(records, e.Pos(), ""))
					records = nil
				}
			}
		}
	}
}
