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

// Package callgraph builds and represents call graphs over JIR programs:
// entry methods, the set of reachable methods, and call edges labeled by
// dispatch kind. It also implements class-hierarchy-based dispatch
// resolution (CHA), used both by the standalone CHA call-graph builder and
// by the pointer analysis for on-the-fly call-graph construction.
package callgraph

import (
	"fmt"

	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"golang.org/x/exp/slices"
)

// CallKind labels a call edge with how the call site dispatches.
type CallKind int

// The call kinds.
const (
	Static CallKind = iota
	Special
	Virtual
	Interface
)

func (k CallKind) String() string {
	switch k {
	case Static:
		return "static"
	case Special:
		return "special"
	case Virtual:
		return "virtual"
	case Interface:
		return "interface"
	}
	return fmt.Sprintf("CallKind(%d)", int(k))
}

// KindOf returns the call kind of a call site.
func KindOf(site *ir.Invoke) CallKind {
	switch site.Kind {
	case ir.InvokeStatic:
		return Static
	case ir.InvokeSpecial:
		return Special
	case ir.InvokeInterface:
		return Interface
	default:
		return Virtual
	}
}

// Edge is one resolved call edge. Edges are value-comparable so duplicate
// insertions are detected.
type Edge struct {
	Kind   CallKind
	Site   *ir.Invoke
	Callee *ir.Method
}

func (e Edge) String() string {
	return fmt.Sprintf("[%s] %v/%d -> %v", e.Kind, e.Site.Class.Name, e.Site.Index(), e.Callee)
}

// Graph is a call graph under construction or published as a result. The
// reachable-method set and the edge set only grow; the transition of a
// method from unreached to reached happens at most once.
type Graph struct {
	entries   []*ir.Method
	reachable map[*ir.Method]bool
	// reachOrder preserves discovery order for deterministic reporting
	reachOrder []*ir.Method

	edges     map[Edge]bool
	edgeOrder []Edge

	calleesOf map[*ir.Invoke][]*ir.Method
	callersOf map[*ir.Method][]Edge
}

// NewGraph returns an empty call graph.
func NewGraph() *Graph {
	return &Graph{
		reachable: map[*ir.Method]bool{},
		edges:     map[Edge]bool{},
		calleesOf: map[*ir.Invoke][]*ir.Method{},
		callersOf: map[*ir.Method][]Edge{},
	}
}

// AddEntry marks m as an entry method.
func (g *Graph) AddEntry(m *ir.Method) {
	if !slices.Contains(g.entries, m) {
		g.entries = append(g.entries, m)
	}
}

// Entries returns the entry methods.
func (g *Graph) Entries() []*ir.Method { return slices.Clone(g.entries) }

// AddReachable marks m reachable and reports whether it was newly marked.
func (g *Graph) AddReachable(m *ir.Method) bool {
	if g.reachable[m] {
		return false
	}
	g.reachable[m] = true
	g.reachOrder = append(g.reachOrder, m)
	return true
}

// IsReachable reports whether m has been marked reachable.
func (g *Graph) IsReachable(m *ir.Method) bool { return g.reachable[m] }

// ReachableMethods returns the reachable methods in discovery order.
func (g *Graph) ReachableMethods() []*ir.Method { return slices.Clone(g.reachOrder) }

// AddEdge inserts a call edge and reports whether it was new. Inserting an
// existing edge leaves the graph unchanged.
func (g *Graph) AddEdge(e Edge) bool {
	if g.edges[e] {
		return false
	}
	g.edges[e] = true
	g.edgeOrder = append(g.edgeOrder, e)
	g.calleesOf[e.Site] = append(g.calleesOf[e.Site], e.Callee)
	g.callersOf[e.Callee] = append(g.callersOf[e.Callee], e)
	return true
}

// Edges returns all call edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edgeOrder) }

// CalleesOf returns the resolved callees of a call site.
func (g *Graph) CalleesOf(site *ir.Invoke) []*ir.Method {
	return slices.Clone(g.calleesOf[site])
}

// CallersOf returns the edges calling into m.
func (g *Graph) CallersOf(m *ir.Method) []Edge { return slices.Clone(g.callersOf[m]) }

// CallSitesIn returns the invocation statements in the body of m.
func CallSitesIn(m *ir.Method) []*ir.Invoke {
	var sites []*ir.Invoke
	for _, s := range m.Stmts {
		if inv, ok := s.(*ir.Invoke); ok {
			sites = append(sites, inv)
		}
	}
	return sites
}
