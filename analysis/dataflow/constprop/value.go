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

// Package constprop implements constant propagation of 32-bit integer
// values over the lattice Undef ⊑ Constant(v) ⊑ NAC, as a forward client of
// the dataflow engine.
package constprop

import "fmt"

type valueKind int

const (
	undef valueKind = iota
	constant
	nac
)

// Value is a lattice element: Undef (bottom, not yet computed), a known
// 32-bit constant, or NAC (not a constant, top). Values are comparable
// with ==.
type Value struct {
	kind valueKind
	c    int32
}

// Undef returns the bottom element.
func Undef() Value { return Value{kind: undef} }

// NAC returns the top element.
func NAC() Value { return Value{kind: nac} }

// MakeConstant returns the lattice element of a known constant.
func MakeConstant(c int32) Value { return Value{kind: constant, c: c} }

// IsUndef reports whether v is bottom.
func (v Value) IsUndef() bool { return v.kind == undef }

// IsConstant reports whether v is a known constant.
func (v Value) IsConstant() bool { return v.kind == constant }

// IsNAC reports whether v is top.
func (v Value) IsNAC() bool { return v.kind == nac }

// Constant returns the constant of v; valid only when IsConstant.
func (v Value) Constant() int32 { return v.c }

func (v Value) String() string {
	switch v.kind {
	case undef:
		return "Undef"
	case nac:
		return "NAC"
	}
	return fmt.Sprintf("%d", v.c)
}

// MeetValue is the lattice meet: NAC absorbs everything, Undef is neutral,
// and two different constants meet to NAC.
func MeetValue(v1, v2 Value) Value {
	if v1.IsNAC() || v2.IsNAC() {
		return NAC()
	}
	if v1.IsUndef() {
		return v2
	}
	if v2.IsUndef() {
		return v1
	}
	if v1 == v2 {
		return v1
	}
	return NAC()
}
