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

	"github.com/spf13/pflag"

	"github.com/groovy/groovy-eclipse-sub013/internal/langlevel"
)

// Common flags
const (
	flagRelease        flagName = "release"
	flagPreview        flagName = "enable-preview"
	flagAllErrors      flagName = "all-errors"
	flagStrict         flagName = "strict"
	flagTrace          flagName = "trace"
	flagOut            flagName = "out"
	flagVerbose        flagName = "verbose"
	flagIncompleteEnum flagName = "incomplete-enum"
)

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagRelease), langlevel.Latest,
		fmt.Sprintf("Java release whose language rules apply (%s to %s)", langlevel.Oldest, langlevel.Latest))
	f.Bool(string(flagPreview), false,
		"enable the preview features of the selected release")
	f.BoolP(string(flagAllErrors), "E", false,
		"print all available errors, including several on the same line")
	f.Bool(string(flagStrict), false, "report warnings as errors")
	f.Bool(string(flagTrace), false, "log the decisions of the analyses to stderr")
}

func addCheckFlags(f *pflag.FlagSet) {
	f.Bool(string(flagIncompleteEnum), false,
		"warn about enum switch statements that do not list every constant")
}

type flagName string

// ensureAdded detects if a flag is being used without it first being
// added to the flagSet. Because flagNames are global, it is quite
// easy to accidentally use a flag in a command without adding it to
// the flagSet.
func (f flagName) ensureAdded(cmd *Command) {
	if cmd.Flags().Lookup(string(f)) == nil {
		panic(fmt.Sprintf("Cmd %q uses flag %q without adding it", cmd.Name(), f))
	}
}

func (f flagName) Bool(cmd *Command) bool {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

func (f flagName) String(cmd *Command) string {
	f.ensureAdded(cmd)
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

// IsSet reports whether the flag was given on the command line.
func (f flagName) IsSet(cmd *Command) bool {
	f.ensureAdded(cmd)
	return cmd.Flags().Changed(string(f))
}
