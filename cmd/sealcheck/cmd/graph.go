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

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/groovy/groovy-eclipse-sub013/internal/core/typegraph"
)

func newGraphCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [files]",
		Short: "print the permitted subtypes of sealed types",
		Long: `graph prints every sealed type of the given compilation units
together with its permitted subtypes, as computed from the permits clause or,
if there is none, from the direct subtypes declared in the same compilation
unit. With --verbose, every declared type is dumped as well.

Diagnostics are not printed; use 'sealcheck vet' for those.
`,
		RunE: mkRunE(c, runGraph),
	}
	cmd.Flags().BoolP(string(flagVerbose), "v", false, "dump all declared types")
	return cmd
}

// graphNode is the form in which nodes are dumped.
type graphNode struct {
	Name      string
	Kind      string
	Modifiers []string
	Supers    []string
	Permits   []string
	Members   []string
}

func modifiers(n *typegraph.Node) []string {
	var a []string
	for _, m := range []struct {
		f    typegraph.Flags
		name string
	}{
		{typegraph.Abstract, "abstract"},
		{typegraph.Static, "static"},
		{typegraph.Final, "final"},
		{typegraph.Sealed, "sealed"},
		{typegraph.NonSealed, "non-sealed"},
		{typegraph.Inconsistent, "inconsistent"},
	} {
		if n.Is(m.f) {
			a = append(a, m.name)
		}
	}
	return a
}

func names(g *typegraph.Graph, ids []typegraph.ID) []string {
	var a []string
	for _, id := range ids {
		if n := g.Node(id); n != nil {
			a = append(a, n.DisplayName())
		}
	}
	return a
}

func runGraph(cmd *Command, args []string) error {
	res := runCheck(cmd, args)
	g, h := res.Graph, res.Hierarchy

	w := cmd.OutOrStdout()
	for _, n := range g.Nodes() {
		if n.Is(typegraph.Builtin) {
			continue
		}
		if h.IsSealed(n.ID) {
			fmt.Fprintf(w, "%s %s: %s\n", n.Kind, n.DisplayName(),
				strings.Join(names(g, h.Permitted(n.ID)), ", "))
		}
	}

	if !flagVerbose.Bool(cmd) {
		return nil
	}
	for _, n := range g.Nodes() {
		if n.Is(typegraph.Builtin) {
			continue
		}
		gn := graphNode{
			Name:      n.Name,
			Kind:      n.Kind.String(),
			Modifiers: modifiers(n),
			Permits:   names(g, h.Permitted(n.ID)),
			Members:   names(g, n.Members),
		}
		for _, r := range n.Supers {
			gn.Supers = append(gn.Supers, g.RefString(r))
		}
		pretty.Fprintf(w, "%# v\n", gn)
	}
	return nil
}
