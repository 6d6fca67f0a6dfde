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
	"fmt"

	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// Solver runs the pointer analysis. It owns all mutable session state for
// one run; nothing else may touch the flow graph, call graph or points-to
// sets until Solve returns.
type Solver struct {
	logger *config.LogGroup

	pfg  *FlowGraph
	cg   *callgraph.Graph
	heap *heapModel
	work workList
}

// Solve runs the analysis from the entry method to its fixed point and
// publishes the result. Errors report a malformed IR or a broken class
// hierarchy; unresolvable call sites are not errors.
func Solve(entry *ir.Method, logger *config.LogGroup) (*Result, error) {
	s := &Solver{
		logger: logger,
		pfg:    NewFlowGraph(),
		cg:     callgraph.NewGraph(),
		heap:   newHeapModel(),
	}
	if err := s.initialize(entry); err != nil {
		return nil, err
	}
	if err := s.analyze(); err != nil {
		return nil, err
	}
	logger.Infof("pointer analysis: %d reachable methods, %d call edges, %d pointers, %d flow edges",
		len(s.cg.ReachableMethods()), len(s.cg.Edges()), len(s.pfg.Pointers()), s.pfg.NumEdges())
	return &Result{CallGraph: s.cg, pfg: s.pfg, heap: s.heap}, nil
}

func (s *Solver) initialize(entry *ir.Method) error {
	s.cg.AddEntry(entry)
	return s.addReachable(entry)
}

// addReachable marks a method reachable and seeds the statements that do not
// depend on a receiver's points-to set: allocations, copies, static field
// accesses and static calls. Instance field/array accesses and instance
// calls activate later, when their base variable gains objects.
func (s *Solver) addReachable(m *ir.Method) error {
	if !s.cg.AddReachable(m) {
		return nil
	}
	s.logger.Debugf("pointer: method %v reachable", m)
	for _, stmt := range m.Stmts {
		switch stmt := stmt.(type) {
		case *ir.New:
			obj := s.heap.objOf(stmt)
			s.work.add(s.pfg.VarPtr(stmt.Result), NewPointsToSet(obj))

		case *ir.Copy:
			s.addPFGEdge(s.pfg.VarPtr(stmt.From), s.pfg.VarPtr(stmt.Result))

		case *ir.StoreField:
			if stmt.IsStatic() {
				s.addPFGEdge(s.pfg.VarPtr(stmt.Value), s.pfg.StaticFieldPtr(stmt.Field))
			}

		case *ir.LoadField:
			if stmt.IsStatic() {
				s.addPFGEdge(s.pfg.StaticFieldPtr(stmt.Field), s.pfg.VarPtr(stmt.Result))
			}

		case *ir.Invoke:
			if stmt.Kind == ir.InvokeStatic {
				callee := callgraph.ResolveExact(stmt.Class, stmt.Signature)
				if callee == nil {
					s.logger.Debugf("pointer: unresolvable static call %v in %v", stmt, m)
					continue
				}
				if err := s.addCallEdge(stmt, callee); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// addPFGEdge inserts a flow edge and, when the edge is new and the source
// already points to something, forwards the existing set to the target.
// Without that forwarding, objects discovered before the edge existed would
// never reach the new target.
func (s *Solver) addPFGEdge(src, dst Pointer) {
	if s.pfg.AddEdge(src, dst) {
		if !src.PointsTo().IsEmpty() {
			s.work.add(dst, src.PointsTo())
		}
	}
}

// analyze is the fixed-point loop: drain the worklist, propagate deltas, and
// on growth of a variable's points-to set activate the instance accesses and
// calls through that variable.
func (s *Solver) analyze() error {
	for !s.work.empty() {
		e := s.work.poll()
		delta := s.propagate(e.ptr, e.pts)
		varPtr, ok := e.ptr.(*VarPtr)
		if !ok || delta.IsEmpty() {
			continue
		}
		v := varPtr.Var
		for _, id := range delta.IDs() {
			obj := s.heap.byID(id)
			for _, st := range v.StoreFields() {
				s.addPFGEdge(s.pfg.VarPtr(st.Value), s.pfg.InstanceFieldPtr(obj, st.Field))
			}
			for _, ld := range v.LoadFields() {
				s.addPFGEdge(s.pfg.InstanceFieldPtr(obj, ld.Field), s.pfg.VarPtr(ld.Result))
			}
			for _, st := range v.StoreArrays() {
				s.addPFGEdge(s.pfg.VarPtr(st.Value), s.pfg.ArrayIndexPtr(obj))
			}
			for _, ld := range v.LoadArrays() {
				s.addPFGEdge(s.pfg.ArrayIndexPtr(obj), s.pfg.VarPtr(ld.Result))
			}
			for _, site := range v.Invokes() {
				if err := s.processCall(site, obj); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// propagate merges pts into the pointer's own set and returns the delta of
// actually new objects. An empty delta propagates nothing further; that
// short-circuit is what stops re-propagation of known facts and lets the
// loop terminate.
func (s *Solver) propagate(ptr Pointer, pts *PointsToSet) *PointsToSet {
	delta := NewPointsToSet()
	own := ptr.PointsTo()
	for _, id := range pts.IDs() {
		obj := s.heap.byID(id)
		if own.Add(obj) {
			delta.Add(obj)
		}
	}
	if delta.IsEmpty() {
		return delta
	}
	s.logger.Tracef("pointer: %v gains %v", ptr, delta)
	for _, succ := range s.pfg.SuccsOf(ptr) {
		s.work.add(succ, delta)
	}
	return delta
}

// processCall handles an instance call site for one newly discovered
// receiver object: resolve the callee, bind the receiver, and wire the call
// edge. Virtual and interface sites dispatch on the object's concrete type;
// special sites (super calls, constructors, private methods) resolve exactly
// from the declared class, so an override on the receiver's type must not
// shadow the declared target.
func (s *Solver) processCall(site *ir.Invoke, recv *Obj) error {
	var callee *ir.Method
	if site.Kind == ir.InvokeSpecial {
		callee = callgraph.ResolveExact(site.Class, site.Signature)
	} else {
		var err error
		callee, err = callgraph.ResolveByObjectType(recv.Type, site.Signature)
		if err != nil {
			return err
		}
	}
	if callee == nil {
		s.logger.Debugf("pointer: unresolvable call %v for receiver %v", site, recv)
		return nil
	}
	if callee.This != nil {
		s.work.add(s.pfg.VarPtr(callee.This), NewPointsToSet(recv))
	}
	return s.addCallEdge(site, callee)
}

// addCallEdge records the call edge and, only when the edge is new, makes
// the callee reachable and wires argument and return flow. A duplicate edge
// must not re-trigger any of that.
func (s *Solver) addCallEdge(site *ir.Invoke, callee *ir.Method) error {
	if !s.cg.AddEdge(callgraph.Edge{Kind: callgraph.KindOf(site), Site: site, Callee: callee}) {
		return nil
	}
	if err := s.addReachable(callee); err != nil {
		return err
	}
	if len(site.Args) != len(callee.Params) {
		return fmt.Errorf("call %v passes %d arguments to %v expecting %d",
			site, len(site.Args), callee, len(callee.Params))
	}
	for i, arg := range site.Args {
		s.addPFGEdge(s.pfg.VarPtr(arg), s.pfg.VarPtr(callee.Params[i]))
	}
	if site.Result != nil {
		for _, ret := range callee.ReturnVars() {
			s.addPFGEdge(s.pfg.VarPtr(ret), s.pfg.VarPtr(site.Result))
		}
	}
	return nil
}
