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

// Package sctest is a helper package for test packages in this module.
// As such it should only be imported in _test.go files.
package sctest

import (
	"fmt"
	"os"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/pattern"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/sealed"
	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
	"github.com/groovy/groovy-eclipse-sub013/java/load"
)

// UpdateGoldenFiles determines whether golden tests and testscript scripts
// should update their expected output in the event of a mismatch. It
// corresponds to testscript.Params.UpdateGoldenFiles.
var UpdateGoldenFiles = os.Getenv("SEALCHECK_UPDATE") != ""

// Long reports whether long-running tests should run.
var Long = os.Getenv("SEALCHECK_LONG") != ""

// Condition adds support for module-specific testscript conditions. The
// canonical case being [long], which evaluates to true when long tests
// should be run.
func Condition(cond string) (bool, error) {
	switch cond {
	case "long":
		return Long, nil
	}
	return false, fmt.Errorf("unknown condition %v", cond)
}

// Env holds the analyses of a set of compilation units.
type Env struct {
	Files     []*ast.File
	Graph     *typegraph.Graph
	Hierarchy *sealed.Hierarchy

	// Errs holds the diagnostics of building the graph and validating the
	// sealed hierarchies.
	Errs errors.List
}

// Load decodes the YAML units in src and builds their type graph and sealed
// hierarchies.
func Load(t testing.TB, src string) *Env {
	t.Helper()
	files, err := load.Bytes("test.yaml", []byte(src))
	qt.Assert(t, qt.IsNil(err))
	g, errs := typegraph.Build(files)
	h, herrs := sealed.Validate(g, nil)
	errs.Add(herrs)
	return &Env{Files: files, Graph: g, Hierarchy: h, Errs: errs}
}

// Switches resolves all switches of all methods in source order.
func (e *Env) Switches(t testing.TB) []*pattern.Switch {
	t.Helper()
	var a []*pattern.Switch
	for i, f := range e.Files {
		for _, m := range f.Methods {
			for _, sw := range m.Switches {
				s, errs := pattern.Resolve(e.Graph, typegraph.FileScope(i), m, sw)
				qt.Assert(t, qt.HasLen(errs, 0), qt.Commentf("%v", errs))
				a = append(a, s)
			}
		}
	}
	return a
}

// Switch returns the only switch in the units.
func (e *Env) Switch(t testing.TB) *pattern.Switch {
	t.Helper()
	a := e.Switches(t)
	qt.Assert(t, qt.HasLen(a, 1))
	return a[0]
}

// Messages returns the messages of errs, without positions.
func Messages(errs errors.List) []string {
	var a []string
	for _, e := range errs {
		a = append(a, e.Error())
	}
	return a
}
