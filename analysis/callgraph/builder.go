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

package callgraph

import (
	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// BuildCHA constructs a whole-program call graph from the entry method using
// class-hierarchy analysis only: every call site of every reachable method
// is resolved with ResolveCall and the callees enqueued until no new method
// becomes reachable. No points-to information is consulted, so virtual
// edges are conservative over the whole hierarchy.
func BuildCHA(entry *ir.Method, logger *config.LogGroup) *Graph {
	cg := NewGraph()
	cg.AddEntry(entry)
	work := []*ir.Method{entry}
	for len(work) > 0 {
		m := work[0]
		work = work[1:]
		if !cg.AddReachable(m) {
			continue
		}
		for _, site := range CallSitesIn(m) {
			callees := ResolveCall(site)
			if len(callees) == 0 {
				logger.Debugf("cha: no callee for %v in %v", site, m)
				continue
			}
			for _, callee := range callees {
				cg.AddEdge(Edge{Kind: KindOf(site), Site: site, Callee: callee})
				work = append(work, callee)
			}
		}
	}
	logger.Infof("cha: %d reachable methods, %d edges", len(cg.reachOrder), len(cg.edgeOrder))
	return cg
}
