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

// Package graphutil adapts a computed call graph to the interfaces of
// existing graph libraries: gonum's graph.Graph (DOT rendering) and
// yourbasic/graph's Iterator (strongly connected components, cycle
// enumeration).
package graphutil

import (
	"sort"

	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"gonum.org/v1/gonum/graph"
)

// MGraph is a method-level view of a call graph with dense int64 node ids.
// It satisfies gonum's graph.Directed and yourbasic/graph's graph.Iterator.
type MGraph struct {
	// The order of the graph
	order int

	// IDMap maps from node IDs to MNodes
	IDMap map[int64]MNode

	// Keys are all the node IDs, ascending
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed
	// call edge from IDMap[x] to IDMap[y]
	Edges map[int64]map[int64]bool

	// rev is the reverse adjacency, for the To iterator
	rev map[int64]map[int64]bool

	ids map[*ir.Method]int64
}

// NewCallgraphIterator returns a method graph over cg where node ids follow
// the discovery order of the reachable methods.
func NewCallgraphIterator(cg *callgraph.Graph) MGraph {
	methods := cg.ReachableMethods()
	g := MGraph{
		order: len(methods),
		IDMap: make(map[int64]MNode, len(methods)),
		Keys:  make([]int64, len(methods)),
		Edges: make(map[int64]map[int64]bool, len(methods)),
		rev:   make(map[int64]map[int64]bool, len(methods)),
		ids:   make(map[*ir.Method]int64, len(methods)),
	}
	for i, m := range methods {
		id := int64(i)
		g.Keys[i] = id
		g.IDMap[id] = MNode{Method: m, id: id}
		g.Edges[id] = map[int64]bool{}
		g.rev[id] = map[int64]bool{}
		g.ids[m] = id
	}
	for _, m := range methods {
		from := g.ids[m]
		for _, site := range callgraph.CallSitesIn(m) {
			for _, callee := range cg.CalleesOf(site) {
				if to, ok := g.ids[callee]; ok {
					g.Edges[from][to] = true
					g.rev[to][from] = true
				}
			}
		}
	}
	sort.Slice(g.Keys, func(i, j int) bool { return g.Keys[i] < g.Keys[j] })
	return g
}

// IDOf returns the node id of m, second result false when m is not in the
// graph.
func (g MGraph) IDOf(m *ir.Method) (int64, bool) {
	id, ok := g.ids[m]
	return id, ok
}

// MethodOf returns the method of a node id.
func (g MGraph) MethodOf(id int64) *ir.Method { return g.IDMap[id].Method }

// Order implements the graph.Iterator interface for the MGraph
func (g MGraph) Order() int {
	return g.order
}

// Visit implements the graph.Iterator interface for the MGraph
func (g MGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := g.IDMap[int64(v)]; !ok {
		return false
	}
	for w := range g.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// *************** Graph interface implementation **********************

// Node implements the Graph interface
func (g MGraph) Node(id int64) graph.Node {
	if n, ok := g.IDMap[id]; ok {
		return n
	}
	return nil
}

// Nodes returns the set of nodes in the graph
func (g MGraph) Nodes() graph.Nodes {
	return &NodeSet{nodes: g.IDMap, ids: g.Keys, cur: -1}
}

// From returns the set of nodes reachable from the id
func (g MGraph) From(id int64) graph.Nodes {
	var keys []int64
	for out := range g.Edges[id] {
		keys = append(keys, out)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return &NodeSet{nodes: g.IDMap, ids: keys, cur: -1}
}

// To returns the set of nodes with an edge into id
func (g MGraph) To(id int64) graph.Nodes {
	var keys []int64
	for in := range g.rev[id] {
		keys = append(keys, in)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return &NodeSet{nodes: g.IDMap, ids: keys, cur: -1}
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two node identifiers
func (g MGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.Edges[xid][yid] || g.Edges[yid][xid]
}

// HasEdgeFromTo returns whether a directed edge goes from uid to vid
func (g MGraph) HasEdgeFromTo(uid, vid int64) bool {
	return g.Edges[uid][vid]
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (g MGraph) Edge(uid, vid int64) graph.Edge {
	if g.Edges[uid][vid] {
		return MEdge{from: g.IDMap[uid], to: g.IDMap[vid]}
	}
	return nil
}

// *************** Nodes implementation **********************

// MNode wraps an *ir.Method and implements the graph.Node and dot.Node
// interfaces.
type MNode struct {
	Method *ir.Method
	id     int64
}

// ID returns the id of the node
func (n MNode) ID() int64 { return n.id }

// DOTID returns the label DOT output uses for the node
func (n MNode) DOTID() string { return n.String() }

func (n MNode) String() string {
	if n.Method == nil {
		return ""
	}
	return n.Method.String()
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	// nodes is the set of nodes in the iterator
	nodes map[int64]MNode

	// ids is the set of node ids in the iterator
	ids []int64

	// cur is the current index of the iterator, -1 before the first Next
	cur int
}

// Next moves the current node to the next, and returns true if such a node exists. Otherwise, returns false
// and the current node has not changed.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

// Len returns the length of the node set
func (ns *NodeSet) Len() int {
	return len(ns.ids)
}

// Reset resets the id of the current node in the set
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node return the current node in the set
func (ns *NodeSet) Node() graph.Node {
	return ns.nodes[ns.ids[ns.cur]]
}

// *************** Edge implementation **********************

// MEdge implements the graph.Edge interface
type MEdge struct {
	from MNode
	to   MNode
}

// From returns the origin of the edge
func (e MEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e MEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e MEdge) ReversedEdge() graph.Edge {
	return MEdge{from: e.to, to: e.from}
}
