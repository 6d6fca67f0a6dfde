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
	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// Result is the published outcome of a pointer analysis run: the on-the-fly
// call graph and the final points-to set of every pointer. It is read-only.
type Result struct {
	// CallGraph is the call graph grown during the run.
	CallGraph *callgraph.Graph

	pfg  *FlowGraph
	heap *heapModel
}

// Pointers returns every pointer node of the run.
func (r *Result) Pointers() []Pointer { return r.pfg.Pointers() }

// PointsTo returns the objects p may point to.
func (r *Result) PointsTo(p Pointer) []*Obj { return r.objsOf(p.PointsTo()) }

// PointsToVar returns the objects variable v may point to; empty when the
// variable never became a pointer node.
func (r *Result) PointsToVar(v *ir.Var) []*Obj {
	p, ok := r.pfg.varPtrs[v]
	if !ok {
		return nil
	}
	return r.objsOf(p.PointsTo())
}

func (r *Result) objsOf(pts *PointsToSet) []*Obj {
	ids := pts.IDs()
	objs := make([]*Obj, len(ids))
	for i, id := range ids {
		objs[i] = r.heap.byID(id)
	}
	return objs
}
