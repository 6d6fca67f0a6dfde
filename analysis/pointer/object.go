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

// Obj is an abstract heap object under the allocation-site abstraction: one
// object per New statement, identified by the statement, typed with the
// allocated type.
type Obj struct {
	id   int
	Site *ir.New
	Type ir.Type
}

// ID is the dense index of the object in its analysis run, usable as a
// sparse-set element.
func (o *Obj) ID() int { return o.id }

func (o *Obj) String() string {
	return fmt.Sprintf("new %s at %v/%d", o.Type, o.Site.Result.Method, o.Site.Index())
}

// heapModel interns one abstract object per allocation site and keeps the
// dense id-to-object table the sparse points-to sets index into.
type heapModel struct {
	objs  map[*ir.New]*Obj
	table []*Obj
}

func newHeapModel() *heapModel {
	return &heapModel{objs: map[*ir.New]*Obj{}}
}

// objOf returns the abstract object of an allocation site, creating it on
// first use.
func (h *heapModel) objOf(site *ir.New) *Obj {
	if o, ok := h.objs[site]; ok {
		return o
	}
	o := &Obj{id: len(h.table), Site: site, Type: site.Type}
	h.objs[site] = o
	h.table = append(h.table, o)
	return o
}

// byID returns the object with the given dense id.
func (h *heapModel) byID(id int) *Obj { return h.table[id] }
