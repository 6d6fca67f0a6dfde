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
	"fmt"

	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// Dispatch finds the method a receiver of class c runs for the given
// subsignature: the first declaration found on the linear superclass chain
// starting at c. Interfaces of the visited classes are not searched. Returns
// nil when the chain declares no such method.
func Dispatch(c *ir.Class, signature string) *ir.Method {
	for cur := c; cur != nil; cur = cur.Super {
		if m := cur.DeclaredMethod(signature); m != nil {
			return m
		}
	}
	return nil
}

// ResolveExact resolves a static or special call site: a single dispatch
// from the declared class. Returns nil when unresolvable.
func ResolveExact(declared *ir.Class, signature string) *ir.Method {
	return Dispatch(declared, signature)
}

// ResolveVirtual conservatively resolves a virtual or interface call site
// without points-to information: every non-abstract method a dispatch from
// the declared class or any of its subclasses and implementors can reach.
// The traversal is breadth-first over direct subclasses and direct
// implementors; diamond shapes are visited once and targets deduplicated.
func ResolveVirtual(declared *ir.Class, signature string) []*ir.Method {
	var targets []*ir.Method
	seenTarget := map[*ir.Method]bool{}
	seenClass := map[*ir.Class]bool{declared: true}
	queue := []*ir.Class{declared}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if m := Dispatch(c, signature); m != nil && !m.IsAbstract && !seenTarget[m] {
			seenTarget[m] = true
			targets = append(targets, m)
		}
		for _, next := range append(c.Subclasses(), c.Implementors()...) {
			if !seenClass[next] {
				seenClass[next] = true
				queue = append(queue, next)
			}
		}
	}
	return targets
}

// ResolveByObjectType resolves an instance call site against the concrete
// allocation type of the receiver object: a single dispatch from that type's
// class. A nil result means the call is unresolvable and the analysis
// proceeds without the edge. An abstract result is impossible for a concrete
// receiver type and reports a broken hierarchy.
func ResolveByObjectType(t ir.Type, signature string) (*ir.Method, error) {
	ct, ok := t.(ir.ClassType)
	if !ok {
		// arrays and primitives declare no methods in this model
		return nil, nil
	}
	m := Dispatch(ct.Class, signature)
	if m == nil {
		return nil, nil
	}
	if m.IsAbstract {
		return nil, fmt.Errorf("dispatch of %q on concrete type %s reached abstract %v", signature, t, m)
	}
	return m, nil
}

// ResolveCall resolves a call site with CHA only: exact resolution for
// static and special sites, whole-hierarchy resolution for virtual and
// interface sites. An empty result means the site is unresolvable.
func ResolveCall(site *ir.Invoke) []*ir.Method {
	switch KindOf(site) {
	case Static, Special:
		if m := ResolveExact(site.Class, site.Signature); m != nil {
			return []*ir.Method{m}
		}
		return nil
	default:
		return ResolveVirtual(site.Class, site.Signature)
	}
}
