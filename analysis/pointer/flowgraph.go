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

package pointer

import (
	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"golang.org/x/exp/slices"
)

type instanceFieldKey struct {
	obj   *Obj
	field *ir.Field
}

type flowEdge struct {
	src, dst Pointer
}

// FlowGraph is the pointer flow graph: an edge src -> dst means points-to
// facts flow from src to dst. It also interns the pointer nodes, keyed by
// value, so the graph stays finite. Edges are never removed.
type FlowGraph struct {
	varPtrs        map[*ir.Var]*VarPtr
	instanceFields map[instanceFieldKey]*InstanceFieldPtr
	staticFields   map[*ir.Field]*StaticFieldPtr
	arrayIndexes   map[*Obj]*ArrayIndexPtr

	edges map[flowEdge]bool
	succs map[Pointer][]Pointer

	// nodes in creation order, for deterministic result iteration
	nodes []Pointer
}

// NewFlowGraph returns an empty pointer flow graph.
func NewFlowGraph() *FlowGraph {
	return &FlowGraph{
		varPtrs:        map[*ir.Var]*VarPtr{},
		instanceFields: map[instanceFieldKey]*InstanceFieldPtr{},
		staticFields:   map[*ir.Field]*StaticFieldPtr{},
		arrayIndexes:   map[*Obj]*ArrayIndexPtr{},
		edges:          map[flowEdge]bool{},
		succs:          map[Pointer][]Pointer{},
	}
}

// VarPtr returns the interned pointer node of variable v.
func (g *FlowGraph) VarPtr(v *ir.Var) *VarPtr {
	if p, ok := g.varPtrs[v]; ok {
		return p
	}
	p := &VarPtr{Var: v}
	g.varPtrs[v] = p
	g.nodes = append(g.nodes, p)
	return p
}

// InstanceFieldPtr returns the interned pointer node of field f of object o.
func (g *FlowGraph) InstanceFieldPtr(o *Obj, f *ir.Field) *InstanceFieldPtr {
	k := instanceFieldKey{obj: o, field: f}
	if p, ok := g.instanceFields[k]; ok {
		return p
	}
	p := &InstanceFieldPtr{Obj: o, Field: f}
	g.instanceFields[k] = p
	g.nodes = append(g.nodes, p)
	return p
}

// StaticFieldPtr returns the interned pointer node of static field f.
func (g *FlowGraph) StaticFieldPtr(f *ir.Field) *StaticFieldPtr {
	if p, ok := g.staticFields[f]; ok {
		return p
	}
	p := &StaticFieldPtr{Field: f}
	g.staticFields[f] = p
	g.nodes = append(g.nodes, p)
	return p
}

// ArrayIndexPtr returns the interned pointer node of the collapsed element
// slot of array object o.
func (g *FlowGraph) ArrayIndexPtr(o *Obj) *ArrayIndexPtr {
	if p, ok := g.arrayIndexes[o]; ok {
		return p
	}
	p := &ArrayIndexPtr{Obj: o}
	g.arrayIndexes[o] = p
	g.nodes = append(g.nodes, p)
	return p
}

// AddEdge inserts the edge src -> dst and reports whether it was new.
// Inserting an existing edge leaves the graph unchanged.
func (g *FlowGraph) AddEdge(src, dst Pointer) bool {
	e := flowEdge{src: src, dst: dst}
	if g.edges[e] {
		return false
	}
	g.edges[e] = true
	g.succs[src] = append(g.succs[src], dst)
	return true
}

// SuccsOf returns the successors of p in edge insertion order.
func (g *FlowGraph) SuccsOf(p Pointer) []Pointer { return g.succs[p] }

// Pointers returns every pointer node created so far, in creation order.
func (g *FlowGraph) Pointers() []Pointer { return slices.Clone(g.nodes) }

// NumEdges returns the number of flow edges.
func (g *FlowGraph) NumEdges() int { return len(g.edges) }
