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

import "github.com/spf13/cobra"

var environmentHelp = &cobra.Command{
	Use:   "environment",
	Short: "environment variables",
	Long: `
The sealcheck command consults environment variables for configuration.
If an environment variable is unset or empty, sensible default setting is used.

	SEALCHECK_DEBUG
		Comma-separated list of debug flags to enable or disable, such as:

		log=N
			Log to stderr. Level 1 logs one line per compilation unit,
			level 2 also logs the permitted subtypes of every sealed type
			and the way switch labels are matched against them.
			--trace is the same as log=2.
		strict
			Report warnings as errors, like --strict.
		sortdiags
			Sort diagnostics by position and drop duplicates.
			Enabled by default; sortdiags=0 reports diagnostics in the
			order the analyses find them.
		incompleteenum
			Warn about switch statements over an enum that neither have
			a default nor list every constant, like --incomplete-enum.

SEALCHECK_DEBUG is a comma-separated list of key-value strings, where the value
is a boolean "true" or "1" if omitted. For example:

	SEALCHECK_DEBUG=log=2,sortdiags=0

The language rules in effect follow --release and --enable-preview:

	sealed types                    preview in 15, standard in 17
	pattern matching in switch      preview in 17, standard in 21
	record patterns                 preview in 19, standard in 21
	unnamed variables and patterns  preview in 21, standard in 22
`[1:],
}
