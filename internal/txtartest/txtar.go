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

// Package txtartest runs golden tests stored as txtar archives.
//
// An archive holds the input units as .yaml files and the expected output
// under out/. The archive comment may hold options, one per line:
//
//	#release: 17
//	#preview
//	#flags: --incomplete-enum
//	#skip
package txtartest

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/shlex"
	"github.com/rogpeppe/go-internal/txtar"

	"github.com/groovy/groovy-eclipse-sub013/internal/sctest"
	"github.com/groovy/groovy-eclipse-sub013/java/ast"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
	"github.com/groovy/groovy-eclipse-sub013/java/load"
)

// A TxTarTest represents a test run that processes all txtar files in a
// directory.
type TxTarTest struct {
	// Root is the directory holding the archives.
	Root string

	// Name is the name of the current test. Output is written to out/Name.
	Name string

	// Update forces golden files to be updated.
	Update bool

	// Skip maps a test name to the reason for skipping it.
	Skip map[string]string
}

// A Test represents a single test based on a txtar archive.
type Test struct {
	*testing.T

	prefix   string
	buf      *bytes.Buffer // the default buffer
	outFiles []file

	Archive *txtar.Archive

	// Dir is the directory of the archive.
	Dir string

	hasGold bool
}

type file struct {
	name string
	buf  *bytes.Buffer
}

// Write implements io.Writer by writing to out/<Name>.
func (t *Test) Write(b []byte) (n int, err error) {
	if t.buf == nil {
		t.buf = &bytes.Buffer{}
		t.outFiles = append(t.outFiles, file{t.prefix, t.buf})
	}
	return t.buf.Write(b)
}

// HasTag reports whether the archive comment has a line "#key".
func (t *Test) HasTag(key string) bool {
	prefix := []byte("#" + key)
	s := bufio.NewScanner(bytes.NewReader(t.Archive.Comment))
	for s.Scan() {
		if bytes.Equal(bytes.TrimSpace(s.Bytes()), prefix) {
			return true
		}
	}
	return false
}

// Value returns the value of the line "#key: value" in the archive comment.
func (t *Test) Value(key string) (value string, ok bool) {
	prefix := []byte("#" + key + ":")
	s := bufio.NewScanner(bytes.NewReader(t.Archive.Comment))
	for s.Scan() {
		b := s.Bytes()
		if bytes.HasPrefix(b, prefix) {
			return string(bytes.TrimSpace(b[len(prefix):])), true
		}
	}
	return "", false
}

// Args returns the value of "#key: ..." split into words with shell quoting
// rules.
func (t *Test) Args(key string) []string {
	t.Helper()
	v, ok := t.Value(key)
	if !ok {
		return nil
	}
	args, err := shlex.Split(v)
	if err != nil {
		t.Fatalf("invalid #%s line: %v", key, err)
	}
	return args
}

// Writer returns a Writer for out/<Name>/name, or out/<Name> for an empty
// name.
func (t *Test) Writer(name string) io.Writer {
	switch name {
	case "":
		name = t.prefix
	default:
		name = path.Join(t.prefix, name)
	}
	for _, f := range t.outFiles {
		if f.name == name {
			return f.buf
		}
	}
	w := &bytes.Buffer{}
	t.outFiles = append(t.outFiles, file{name, w})
	if name == t.prefix {
		t.buf = w
	}
	return w
}

// WriteErrors writes the diagnostics in err, with their severity.
func (t *Test) WriteErrors(err error) {
	if err != nil {
		errors.Print(t, err, &errors.Config{ToSlash: true, WithSeverity: true})
	}
}

// Files decodes the .yaml files at the top of the archive, in archive order.
// A decoding error fails the test if the archive has golden output and skips
// it otherwise.
func (t *Test) Files() []*ast.File {
	t.Helper()
	var files []*ast.File
	for _, f := range t.Archive.Files {
		if strings.Contains(f.Name, "/") || filepath.Ext(f.Name) != ".yaml" {
			continue
		}
		fs, err := load.Bytes(f.Name, f.Data)
		if err != nil {
			if t.hasGold {
				t.Fatal("decode error: ", err)
			}
			t.Skip("decode error: ", err)
		}
		files = append(files, fs...)
	}
	return files
}

// Run runs tests defined in txtar files in x.Root or its subdirectories.
//
// The function f is called for each such txtar file. Output written to the
// Test is compared to the golden files under out/ and the archive is
// rewritten if SEALCHECK_UPDATE is set.
func (x *TxTarTest) Run(t *testing.T, f func(tc *Test)) {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	err = filepath.WalkDir(x.Root, func(fullpath string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(fullpath) != ".txtar" {
			return nil
		}

		str := filepath.ToSlash(fullpath)
		p := strings.Index(str, "/testdata/")
		testName := str[p+len("/testdata/") : len(str)-len(".txtar")]

		t.Run(testName, func(t *testing.T) {
			a, err := txtar.ParseFile(fullpath)
			if err != nil {
				t.Fatalf("error parsing txtar file: %v", err)
			}

			tc := &Test{
				T:       t,
				Archive: a,
				Dir:     filepath.Dir(filepath.Join(dir, fullpath)),
				prefix:  path.Join("out", x.Name),
			}
			if tc.HasTag("skip") {
				t.Skip()
			}
			if msg, ok := x.Skip[testName]; ok {
				t.Skip(msg)
			}
			for _, f := range a.Files {
				if strings.HasPrefix(f.Name, tc.prefix) {
					tc.hasGold = true
				}
			}

			f(tc)

			update := false
			for _, sub := range tc.outFiles {
				var gold *txtar.File
				for i, f := range a.Files {
					if f.Name == sub.name {
						gold = &a.Files[i]
					}
				}
				result := sub.buf.Bytes()

				switch {
				case gold == nil:
					a.Files = append(a.Files, txtar.File{Name: sub.name})
					gold = &a.Files[len(a.Files)-1]
				case bytes.Equal(gold.Data, result):
					continue
				}

				if x.Update || sctest.UpdateGoldenFiles {
					update = true
					gold.Data = result
					continue
				}
				t.Errorf("result for %s differs: (-want +got)\n%s",
					sub.name,
					cmp.Diff(string(gold.Data), string(result)))
			}

			if update {
				if err := os.WriteFile(fullpath, txtar.Format(a), 0o644); err != nil {
					t.Fatal(err)
				}
			}
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
