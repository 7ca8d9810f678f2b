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
	"strings"

	"github.com/spf13/cobra"
)

func newExhaustiveCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exhaustive [files]",
		Short: "report which switches cover their selector type",
		Long: `exhaustive prints, for every switch of the given compilation units,
whether its labels cover the selector type. For switches that do not, it lists
the permitted subtypes, enum constants or record shapes that are left
uncovered:

	shapes.yaml:12:5 area: exhaustive
	shapes.yaml:20:5 name: missing Square

Switches with a default label are always exhaustive.
`,
		RunE: mkRunE(c, runExhaustive),
	}
	addCheckFlags(cmd.Flags())
	return cmd
}

func runExhaustive(cmd *Command, args []string) error {
	res := runCheck(cmd, args)

	w := cmd.OutOrStdout()
	for _, sw := range res.Switches {
		status := "exhaustive"
		if !sw.Exhaustive {
			status = "missing " + strings.Join(sw.Missing, ", ")
		}
		fmt.Fprintf(w, "%s %s: %s\n", relPos(sw.Pos.String()), sw.Method, status)
	}
	return nil
}
