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
	"bytes"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/groovy/groovy-eclipse-sub013/internal/langlevel"
	"github.com/groovy/groovy-eclipse-sub013/internal/logging"
	"github.com/groovy/groovy-eclipse-sub013/internal/scdebug"
	"github.com/groovy/groovy-eclipse-sub013/java/check"
	"github.com/groovy/groovy-eclipse-sub013/java/errors"
	"github.com/groovy/groovy-eclipse-sub013/java/load"
)

var inTest = false

func getLang() language.Tag {
	loc := os.Getenv("LC_ALL")
	if loc == "" {
		loc = os.Getenv("LANG")
	}
	loc = strings.Split(loc, ".")[0]
	return language.Make(loc)
}

func exitOnErr(cmd *Command, err error, fatal bool) {
	if err == nil {
		return
	}
	printErrors(cmd.Stderr(), err, false)
	if fatal {
		exit()
	}
}

func printErrors(w io.Writer, err error, withSeverity bool) {
	// Link x/text as our localizer.
	p := message.NewPrinter(getLang())
	format := func(w io.Writer, format string, args ...interface{}) {
		p.Fprintf(w, format, args...)
	}

	cwd, _ := os.Getwd()

	b := &bytes.Buffer{}
	errors.Print(b, err, &errors.Config{
		Format:       format,
		Cwd:          cwd,
		ToSlash:      inTest,
		WithSeverity: withSeverity,
	})
	_, _ = w.Write(b.Bytes())
}

// checkConfig assembles the check configuration from the command line flags
// and SEALCHECK_DEBUG. Flags given on the command line win.
func checkConfig(cmd *Command) (*check.Config, error) {
	if err := scdebug.Init(); err != nil {
		return nil, err
	}
	level, err := langlevel.New(flagRelease.String(cmd), flagPreview.Bool(cmd))
	if err != nil {
		return nil, err
	}
	logLevel := scdebug.Flags.Log
	if flagTrace.Bool(cmd) {
		logLevel = logging.Debug
	}
	cfg := &check.Config{
		Level:     level,
		Logger:    logging.New(logLevel, cmd.OutOrStderr()),
		Strict:    scdebug.Flags.Strict || flagStrict.Bool(cmd),
		SortDiags: scdebug.Flags.SortDiags,

		IncompleteEnum: scdebug.Flags.IncompleteEnum,
	}
	if cmd.Flags().Lookup(string(flagIncompleteEnum)) != nil && flagIncompleteEnum.IsSet(cmd) {
		cfg.IncompleteEnum = flagIncompleteEnum.Bool(cmd)
	}
	return cfg, nil
}

// runCheck loads the units named by args and checks them. Load errors are
// fatal.
func runCheck(cmd *Command, args []string) *check.Result {
	if len(args) == 0 {
		args = []string{"-"}
	}
	cfg, err := checkConfig(cmd)
	exitOnErr(cmd, err, true)

	files, err := load.Files(cmd.Stdin(), args...)
	exitOnErr(cmd, err, true)

	res := check.Files(cfg, files...)
	if !flagAllErrors.Bool(cmd) {
		res.Errs.RemoveMultiples()
	}
	return res
}

// relPos returns the position string s relative to the working directory.
func relPos(s string) string {
	if cwd, err := os.Getwd(); err == nil {
		if rel, ok := strings.CutPrefix(s, cwd); ok {
			s = strings.TrimLeft(rel, `/\`)
		}
	}
	if inTest {
		s = strings.ReplaceAll(s, `\`, "/")
	}
	return s
}
