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
	"strings"

	"golang.org/x/tools/container/intsets"
)

// PointsToSet is a set of abstract objects, stored as a sparse bit set over
// object ids. During a run a pointer's set only grows. The zero value is an
// empty set; PointsToSet must not be copied after first use.
type PointsToSet struct {
	set intsets.Sparse
}

// NewPointsToSet returns a set holding the given objects.
func NewPointsToSet(objs ...*Obj) *PointsToSet {
	p := &PointsToSet{}
	for _, o := range objs {
		p.set.Insert(o.id)
	}
	return p
}

// Contains reports whether o is in the set.
func (p *PointsToSet) Contains(o *Obj) bool { return p.set.Has(o.id) }

// Add inserts o and reports whether the set changed.
func (p *PointsToSet) Add(o *Obj) bool { return p.set.Insert(o.id) }

// IsEmpty reports whether the set holds no objects.
func (p *PointsToSet) IsEmpty() bool { return p.set.IsEmpty() }

// Len returns the number of objects in the set.
func (p *PointsToSet) Len() int { return p.set.Len() }

// IDs returns the object ids in the set, in ascending order.
func (p *PointsToSet) IDs() []int {
	var buf []int
	return p.set.AppendTo(buf)
}

func (p *PointsToSet) String() string {
	ids := p.IDs()
	elems := make([]string, len(ids))
	for i, id := range ids {
		elems[i] = fmt.Sprintf("o%d", id)
	}
	return "{" + strings.Join(elems, ", ") + "}"
}
