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

	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// Pointer is a node of the pointer flow graph: a location that can hold
// references. The four implementations are VarPtr, InstanceFieldPtr,
// StaticFieldPtr and ArrayIndexPtr. Pointers are interned by the flow graph,
// so two lookups for the same location return the same node.
type Pointer interface {
	// PointsTo returns the pointer's own points-to set. The set is
	// mutable and owned by the running solver.
	PointsTo() *PointsToSet

	String() string
	pointerNode()
}

type ptrNode struct {
	pts PointsToSet
}

func (n *ptrNode) PointsTo() *PointsToSet { return &n.pts }
func (n *ptrNode) pointerNode()           {}

// VarPtr is the pointer of a method-local variable.
type VarPtr struct {
	ptrNode
	Var *ir.Var
}

func (p *VarPtr) String() string { return fmt.Sprintf("%v/%s", p.Var.Method, p.Var.Name) }

// InstanceFieldPtr is the pointer of one declared field of one abstract
// object.
type InstanceFieldPtr struct {
	ptrNode
	Obj   *Obj
	Field *ir.Field
}

func (p *InstanceFieldPtr) String() string { return fmt.Sprintf("o%d.%s", p.Obj.id, p.Field.Name) }

// StaticFieldPtr is the pointer of a static field.
type StaticFieldPtr struct {
	ptrNode
	Field *ir.Field
}

func (p *StaticFieldPtr) String() string {
	return fmt.Sprintf("%s.%s", p.Field.Class.Name, p.Field.Name)
}

// ArrayIndexPtr is the pointer of the collapsed element slot of one abstract
// array object; all indices of the object share it.
type ArrayIndexPtr struct {
	ptrNode
	Obj *Obj
}

func (p *ArrayIndexPtr) String() string { return fmt.Sprintf("o%d[*]", p.Obj.id) }
