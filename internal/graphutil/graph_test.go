// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package graphutil

import (
	"testing"

	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// buildCallGraph computes the CHA call graph of a program with a two-method
// cycle (ping <-> pong), a self-recursive method and a leaf.
func buildCallGraph(t *testing.T) (*ir.Program, *callgraph.Graph) {
	t.Helper()
	prog, err := ir.LoadProgram([]byte(`
classes:
  - name: Main
    methods:
      - signature: main()
        static: true
        body:
          - {op: invoke, class: Main, signature: ping()}
          - {op: invoke, class: Main, signature: self()}
          - {op: return}
      - signature: ping()
        static: true
        body:
          - {op: invoke, class: Main, signature: pong()}
          - {op: return}
      - signature: pong()
        static: true
        body:
          - {op: invoke, class: Main, signature: ping()}
          - {op: invoke, class: Main, signature: leaf()}
          - {op: return}
      - signature: self()
        static: true
        body:
          - {op: invoke, class: Main, signature: self()}
          - {op: return}
      - signature: leaf()
        static: true
        body:
          - {op: return}
`))
	if err != nil {
		t.Fatal(err)
	}
	entry, err := prog.Method("Main", "main()")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.NewDefault()
	cfg.LogLevel = int(config.ErrLevel)
	return prog, callgraph.BuildCHA(entry, config.NewLogGroup(cfg))
}

func TestCallgraphIterator(t *testing.T) {
	prog, cg := buildCallGraph(t)
	g := NewCallgraphIterator(cg)

	if g.Order() != 5 {
		t.Fatalf("expected 5 nodes, got %d", g.Order())
	}
	ping, _ := prog.Method("Main", "ping()")
	pong, _ := prog.Method("Main", "pong()")
	leaf, _ := prog.Method("Main", "leaf()")

	pingID, ok := g.IDOf(ping)
	if !ok {
		t.Fatalf("ping should be a node")
	}
	if g.MethodOf(pingID) != ping {
		t.Errorf("id lookup should round-trip")
	}
	pongID, _ := g.IDOf(pong)
	leafID, _ := g.IDOf(leaf)

	if !g.HasEdgeFromTo(pingID, pongID) || !g.HasEdgeFromTo(pongID, pingID) {
		t.Errorf("ping and pong call each other")
	}
	if g.HasEdgeFromTo(leafID, pingID) {
		t.Errorf("leaf calls nothing")
	}
	if !g.HasEdgeBetween(leafID, pongID) {
		t.Errorf("there is an edge between pong and leaf in some direction")
	}
	if g.Edge(pingID, pongID) == nil || g.Edge(leafID, pingID) != nil {
		t.Errorf("Edge should mirror HasEdgeFromTo")
	}

	// count the ping->pong visit through the yourbasic iterator
	found := false
	g.Visit(int(pingID), func(w int, _ int64) bool {
		if int64(w) == pongID {
			found = true
		}
		return false
	})
	if !found {
		t.Errorf("Visit should reach pong from ping")
	}
}

func TestNodeSetIteratorContract(t *testing.T) {
	_, cg := buildCallGraph(t)
	g := NewCallgraphIterator(cg)

	nodes := g.Nodes()
	if nodes.Len() != 5 {
		t.Fatalf("expected 5 nodes, got %d", nodes.Len())
	}
	count := 0
	for nodes.Next() {
		if nodes.Node() == nil {
			t.Fatalf("Node should be valid after Next")
		}
		count++
	}
	if count != 5 {
		t.Errorf("iteration should visit every node once, got %d", count)
	}
	nodes.Reset()
	if !nodes.Next() {
		t.Errorf("Reset should rewind the iterator")
	}
}

func TestRecursiveGroups(t *testing.T) {
	prog, cg := buildCallGraph(t)
	g := NewCallgraphIterator(cg)

	groups := RecursiveGroups(g)
	if len(groups) != 2 {
		t.Fatalf("expected the ping/pong group and the self group, got %v", groups)
	}
	ping, _ := prog.Method("Main", "ping()")
	pong, _ := prog.Method("Main", "pong()")
	self, _ := prog.Method("Main", "self()")

	var foundPair, foundSelf bool
	for _, group := range groups {
		switch len(group) {
		case 2:
			members := map[*ir.Method]bool{group[0]: true, group[1]: true}
			foundPair = members[ping] && members[pong]
		case 1:
			foundSelf = group[0] == self
		}
	}
	if !foundPair {
		t.Errorf("ping and pong form a recursive group")
	}
	if !foundSelf {
		t.Errorf("self forms a singleton recursive group")
	}
}

func TestFindAllElementaryCycles(t *testing.T) {
	prog, cg := buildCallGraph(t)
	g := NewCallgraphIterator(cg)

	cycles := FindAllElementaryCycles(g)
	pingID, _ := g.IDOf(mustMethod(t, prog, "ping()"))
	found := false
	for _, cycle := range cycles {
		for _, id := range cycle {
			if id == pingID {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("the ping/pong cycle should be enumerated, got %v", cycles)
	}
}

func mustMethod(t *testing.T, prog *ir.Program, sig string) *ir.Method {
	t.Helper()
	m, err := prog.Method("Main", sig)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSubgraphKeepsInternalEdges(t *testing.T) {
	prog, cg := buildCallGraph(t)
	g := NewCallgraphIterator(cg)
	pingID, _ := g.IDOf(mustMethod(t, prog, "ping()"))
	pongID, _ := g.IDOf(mustMethod(t, prog, "pong()"))
	leafID, _ := g.IDOf(mustMethod(t, prog, "leaf()"))

	sub := Subgraph(g, []int64{pingID, pongID})
	if !sub.Edges[pingID][pongID] || !sub.Edges[pongID][pingID] {
		t.Errorf("edges inside the include set survive")
	}
	if sub.Edges[pongID][leafID] {
		t.Errorf("edges leaving the include set are dropped")
	}
	if len(sub.Keys) != 2 {
		t.Errorf("the subgraph has 2 keys, got %v", sub.Keys)
	}
}
