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

// Package load reads resolved compilation units from YAML or JSON documents.
//
// A document describes one compilation unit as the external binder sees it:
//
//	file: Shapes.java
//	package: p
//	types:
//	- name: Shape
//	  kind: interface
//	  modifiers: [sealed]
//	  permits: [Circle, Square]
//	- {name: Circle, kind: record, implements: [Shape], components: ["double r"]}
//	- {name: Square, kind: record, implements: [Shape], components: ["double side"]}
//	methods:
//	- name: area
//	  switches:
//	  - selector: Shape
//	    expression: true
//	    arrow: true
//	    cases:
//	    - labels: [Circle c]
//	    - labels: [Square s]
//
// Positions default to the location of the YAML node; any node may override
// it with an explicit "pos: line:col".
package load

import (
	"fmt"
	"io"
	"os"

	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

// Files loads the compilation units in the named files. "-" reads from
// stdin. Decoding problems in one file do not prevent loading the others;
// all of them are reported.
func Files(stdin io.Reader, paths ...string) ([]*ast.File, error) {
	var files []*ast.File
	var errs errors.List
	for _, p := range paths {
		data, err := readFile(stdin, p)
		if err != nil {
			errs.Add(errors.Promote(err, "load"))
			continue
		}
		fs, err := Bytes(p, data)
		if err != nil {
			errs.Add(err)
			continue
		}
		files = append(files, fs...)
	}
	return files, errs.Err()
}

func readFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("no standard input available")
		}
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
