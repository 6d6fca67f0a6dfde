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

// Package pointer implements a whole-program, context-insensitive,
// allocation-site-based pointer analysis with on-the-fly call-graph
// construction.
//
// The solver maintains one session of mutable state for the run: the pointer
// flow graph, the call graph, the per-pointer points-to sets and the
// worklist. Points-to sets, flow-graph edges and the reachable-method set
// only ever grow, which is what bounds the number of worklist events and
// guarantees termination on cyclic inputs. The published Result is read-only.
package pointer
