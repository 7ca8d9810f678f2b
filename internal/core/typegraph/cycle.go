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

package typegraph

import "slices"

// findCycles marks every node that lies on, or inherits from, a supertype
// cycle as Inconsistent. Strongly connected components are found with
// Tarjan's algorithm over the resolved supertype edges.
func (b *builder) findCycles() {
	g := b.g
	t := tarjan{
		g:     g,
		index: make([]int32, len(g.nodes)),
		low:   make([]int32, len(g.nodes)),
		on:    make([]bool, len(g.nodes)),
	}
	for _, n := range g.Nodes() {
		if t.index[n.ID] == 0 {
			t.visit(n.ID)
		}
	}

	for _, scc := range t.sccs {
		slices.Sort(scc)
		first := g.nodes[scc[0]]
		var other *Node
		for _, r := range first.Supers {
			if r.ID != NoID && slices.Contains(scc, r.ID) {
				other = g.nodes[r.ID]
				break
			}
		}
		for _, id := range scc {
			g.nodes[id].Flags |= Inconsistent
		}
		b.errs.AddNewf(first.Pos, "Cycle detected: a cycle exists in the type hierarchy between %s and %s",
			first.DisplayName(), other.DisplayName())
	}

	// Propagate to subtypes. Nodes are visited in ID order until nothing
	// changes, as a subtype may precede its supertype.
	for changed := true; changed; {
		changed = false
		for _, n := range g.Nodes() {
			if n.Is(Inconsistent) {
				continue
			}
			for _, r := range n.Supers {
				if s := g.Node(r.ID); s != nil && s.Is(Inconsistent) {
					n.Flags |= Inconsistent
					changed = true
					break
				}
			}
		}
	}
	for _, n := range g.Nodes() {
		if n.Is(Inconsistent) && !n.Is(Builtin) {
			b.errs.AddNewf(n.Pos, "The hierarchy of the type %s is inconsistent", n.DisplayName())
		}
	}
}

type tarjan struct {
	g     *Graph
	next  int32
	index []int32 // 0 means unvisited
	low   []int32
	on    []bool
	stack []ID
	sccs  [][]ID
}

func (t *tarjan) visit(v ID) {
	t.next++
	t.index[v] = t.next
	t.low[v] = t.next
	t.stack = append(t.stack, v)
	t.on[v] = true

	self := false
	for _, r := range t.g.nodes[v].Supers {
		w := r.ID
		switch {
		case w == NoID:
		case w == v:
			self = true
		case t.index[w] == 0:
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		case t.on[w]:
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var scc []ID
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.on[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	if len(scc) > 1 || self {
		t.sccs = append(t.sccs, scc)
	}
}
