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

// Package dataflow is the generic iterative dataflow engine: a monotone
// fixed-point solver over one method's CFG, parameterized by direction,
// lattice meet, boundary/initial facts and a transfer function. Client
// analyses (constant propagation, live variables) instantiate it and publish
// their per-node fact tables in a Registry under their analysis name, so
// downstream consumers look results up by name instead of holding direct
// references.
package dataflow

import (
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// Analysis is a dataflow analysis instantiating the engine. F is the fact
// type, normally a pointer to a mutable fact.
type Analysis[F any] interface {
	// Name identifies the analysis in a Registry.
	Name() string

	// IsForward reports the direction of the analysis.
	IsForward() bool

	// BoundaryFact is the fact at the boundary node: the entry node for a
	// forward analysis, the exit node for a backward one.
	BoundaryFact(cfg *ir.CFG) F

	// InitialFact is the bottom fact every non-boundary node starts from.
	InitialFact() F

	// MeetInto merges fact into the accumulator fact "into", mutating it.
	MeetInto(fact F, into F)

	// Transfer applies the node's transfer function: it recomputes out
	// from in and reports whether out differs from its value before the
	// call. The engine stops when a full pass reports no such change, so
	// a Transfer that reports intermediate mutations of out prevents
	// termination. For a backward analysis the engine passes the node's
	// OUT fact as in and its IN fact as out.
	Transfer(node ir.Stmt, in F, out F) bool
}

// Result is the per-node fact table of one analysis run over one CFG.
type Result[F any] struct {
	name string
	in   map[ir.Stmt]F
	out  map[ir.Stmt]F
}

// Name returns the analysis name the result was computed by.
func (r *Result[F]) Name() string { return r.name }

// In returns the IN fact of node s: for a forward analysis the facts before
// s, for a backward analysis the facts s computes.
func (r *Result[F]) In(s ir.Stmt) F { return r.in[s] }

// Out returns the OUT fact of node s. For backward liveness this is the
// live-after set of s.
func (r *Result[F]) Out(s ir.Stmt) F { return r.out[s] }

// Run computes the fixed point of a over cfg: the boundary node gets the
// boundary fact, every other node the initial fact, and full passes over
// the nodes repeat until one pass changes nothing. Monotone transfer
// functions make the result independent of visitation order; only the
// number of passes depends on it.
func Run[F any](a Analysis[F], cfg *ir.CFG) *Result[F] {
	r := &Result[F]{
		name: a.Name(),
		in:   map[ir.Stmt]F{},
		out:  map[ir.Stmt]F{},
	}
	forward := a.IsForward()
	boundary := cfg.Entry
	if !forward {
		boundary = cfg.Exit
	}
	for _, n := range cfg.Nodes() {
		r.in[n] = a.InitialFact()
		r.out[n] = a.InitialFact()
	}
	if forward {
		r.out[boundary] = a.BoundaryFact(cfg)
	} else {
		r.in[boundary] = a.BoundaryFact(cfg)
	}

	for changed := true; changed; {
		changed = false
		for _, n := range cfg.Nodes() {
			if n == boundary {
				continue
			}
			if forward {
				in := r.in[n]
				for _, p := range cfg.PredsOf(n) {
					a.MeetInto(r.out[p], in)
				}
				if a.Transfer(n, in, r.out[n]) {
					changed = true
				}
			} else {
				out := r.out[n]
				for _, succ := range cfg.SuccsOf(n) {
					a.MeetInto(r.in[succ], out)
				}
				if a.Transfer(n, out, r.in[n]) {
					changed = true
				}
			}
		}
	}
	return r
}
