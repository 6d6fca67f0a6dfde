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

package constprop

import (
	"fmt"
	"sort"
	"strings"

	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// CPFact maps variables to lattice values. Absent variables are Undef, so
// the empty fact is the bottom of the fact lattice.
type CPFact struct {
	m map[*ir.Var]Value
}

// NewCPFact returns an empty fact.
func NewCPFact() *CPFact {
	return &CPFact{m: map[*ir.Var]Value{}}
}

// Get returns the value of v, Undef when absent.
func (f *CPFact) Get(v *ir.Var) Value {
	if val, ok := f.m[v]; ok {
		return val
	}
	return Undef()
}

// Update sets the value of v by overwrite and reports whether the fact
// changed. Setting Undef removes the entry.
func (f *CPFact) Update(v *ir.Var, val Value) bool {
	old, present := f.m[v]
	if val.IsUndef() {
		if present {
			delete(f.m, v)
			return true
		}
		return false
	}
	if present && old == val {
		return false
	}
	f.m[v] = val
	return true
}

// CopyFrom makes f identical to other and reports whether f changed.
func (f *CPFact) CopyFrom(other *CPFact) bool {
	changed := false
	for v := range f.m {
		if _, ok := other.m[v]; !ok {
			delete(f.m, v)
			changed = true
		}
	}
	for v, val := range other.m {
		if cur, ok := f.m[v]; !ok || cur != val {
			f.m[v] = val
			changed = true
		}
	}
	return changed
}

// ForEach calls fn for every variable with a non-Undef value.
func (f *CPFact) ForEach(fn func(*ir.Var, Value)) {
	for v, val := range f.m {
		fn(v, val)
	}
}

func (f *CPFact) String() string {
	entries := make([]string, 0, len(f.m))
	for v, val := range f.m {
		entries = append(entries, fmt.Sprintf("%s=%s", v.Name, val))
	}
	sort.Strings(entries)
	return "{" + strings.Join(entries, ", ") + "}"
}
