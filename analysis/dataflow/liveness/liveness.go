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

// Package liveness implements live-variable analysis as a backward may
// client of the dataflow engine. The OUT fact of a node is its live-after
// set, which the dead-code detection consumes.
package liveness

import (
	"sort"
	"strings"

	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// ID is the registry name of the analysis.
const ID = "liveness"

// SetFact is a set of variables.
type SetFact struct {
	m map[*ir.Var]bool
}

// NewSetFact returns an empty set.
func NewSetFact() *SetFact {
	return &SetFact{m: map[*ir.Var]bool{}}
}

// Contains reports whether v is in the set.
func (f *SetFact) Contains(v *ir.Var) bool { return f.m[v] }

// Add inserts v and reports whether the set changed.
func (f *SetFact) Add(v *ir.Var) bool {
	if f.m[v] {
		return false
	}
	f.m[v] = true
	return true
}

// Union merges other into f and reports whether f changed.
func (f *SetFact) Union(other *SetFact) bool {
	changed := false
	for v := range other.m {
		if f.Add(v) {
			changed = true
		}
	}
	return changed
}

// Len returns the number of variables in the set.
func (f *SetFact) Len() int { return len(f.m) }

func (f *SetFact) String() string {
	names := make([]string, 0, len(f.m))
	for v := range f.m {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ", ") + "}"
}

// Analysis is the live-variable instantiation of the dataflow engine.
type Analysis struct{}

// Name implements dataflow.Analysis.
func (Analysis) Name() string { return ID }

// IsForward implements dataflow.Analysis.
func (Analysis) IsForward() bool { return false }

// BoundaryFact is the empty set: nothing is live after the exit.
func (Analysis) BoundaryFact(*ir.CFG) *SetFact { return NewSetFact() }

// InitialFact implements dataflow.Analysis.
func (Analysis) InitialFact() *SetFact { return NewSetFact() }

// MeetInto unions fact into the accumulator (may analysis).
func (Analysis) MeetInto(fact, into *SetFact) {
	into.Union(fact)
}

// Transfer computes live-before from live-after: kill the defined variable,
// generate the used ones. in is the node's live-after set, out its
// live-before set (the engine flips roles for backward analyses).
func (Analysis) Transfer(stmt ir.Stmt, in, out *SetFact) bool {
	def := stmt.Def()
	changed := false
	for v := range in.m {
		if v == def {
			continue
		}
		if out.Add(v) {
			changed = true
		}
	}
	for _, v := range stmt.Uses() {
		if out.Add(v) {
			changed = true
		}
	}
	return changed
}
