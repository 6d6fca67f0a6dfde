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

package ir

// Type is the type of a variable, field or allocated object. The three
// implementations are PrimType, ClassType and ArrayType.
type Type interface {
	String() string
	typ()
}

// PrimType is a primitive JIR type.
type PrimType int

// The primitive types.
const (
	Byte PrimType = iota
	Short
	Int
	Char
	Boolean
	Long
	Float
	Double
)

func (t PrimType) typ() {}

func (t PrimType) String() string {
	switch t {
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Char:
		return "char"
	case Boolean:
		return "boolean"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	}
	return "unknown"
}

// ClassType is a reference type backed by a class or interface.
type ClassType struct {
	Class *Class
}

func (t ClassType) typ() {}

func (t ClassType) String() string { return t.Class.Name }

// ArrayType is an array of Elem values.
type ArrayType struct {
	Elem Type
}

func (t ArrayType) typ() {}

func (t ArrayType) String() string { return t.Elem.String() + "[]" }

// CanHoldInt reports whether a variable of type t holds a value the constant
// propagation models, i.e. a primitive that fits the 32-bit integer lattice.
// long, float and double are excluded, as in the reference lattice.
func CanHoldInt(t Type) bool {
	p, ok := t.(PrimType)
	if !ok {
		return false
	}
	switch p {
	case Byte, Short, Int, Char, Boolean:
		return true
	}
	return false
}
