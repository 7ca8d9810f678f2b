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

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

func newVetCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet [files]",
		Short: "check sealed hierarchies and switches",
		Long: `vet checks the given compilation units as one program and
prints its diagnostics. With no files, or with "-", vet reads from standard
input.

Diagnostics are printed one per line as

	file:line:col: severity: message

By default only the first diagnostic per line is shown; use --all-errors to
see all of them. The --out flag selects json or yaml output instead of text.

vet exits with a non-zero status if any diagnostic is an error.
`,
		RunE: mkRunE(c, runVet),
	}

	cmd.Flags().String(string(flagOut), "text", "output format: text, json or yaml")
	addCheckFlags(cmd.Flags())

	return cmd
}

type diagnostic struct {
	File     string          `json:"file,omitempty" yaml:"file,omitempty"`
	Line     int             `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int             `json:"column,omitempty" yaml:"column,omitempty"`
	Severity errors.Severity `json:"severity" yaml:"severity"`
	Message  string          `json:"message" yaml:"message"`
}

func diagnostics(errs errors.List) []diagnostic {
	cwd, _ := os.Getwd()
	a := make([]diagnostic, 0, len(errs))
	for _, e := range errs {
		pos := e.Position()
		file := pos.Filename()
		if rel, err := filepath.Rel(cwd, file); err == nil && filepath.IsLocal(rel) {
			file = rel
		}
		a = append(a, diagnostic{
			File:     filepath.ToSlash(file),
			Line:     pos.Line(),
			Column:   pos.Column(),
			Severity: e.Severity(),
			Message:  e.Error(),
		})
	}
	return a
}

func runVet(cmd *Command, args []string) error {
	out := flagOut.String(cmd)
	switch out {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q; want text, json or yaml", out)
	}

	res := runCheck(cmd, args)
	errs := res.Errs

	w := cmd.OutOrStdout()
	switch out {
	case "text":
		printErrors(cmd.OutOrStderr(), errs, true)
	case "json":
		b, err := json.MarshalIndent(diagnostics(errs), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", b)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(diagnostics(errs)); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}
	if errs.HasErrors() {
		exit()
	}
	return nil
}
