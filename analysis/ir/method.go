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

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Method is a declared method with an optional body. Abstract and interface
// methods have no body.
type Method struct {
	Class      *Class
	Name       string
	Signature  string // subsignature, unique within the declaring class
	IsStatic   bool
	IsAbstract bool

	// This is the implicit receiver variable; nil for static methods.
	This *Var

	// Params are the formal parameters, in declaration order.
	Params []*Var

	// Stmts is the body, in source order. Statement indices match slice
	// positions.
	Stmts []Stmt

	vars       []*Var
	returnVars []*Var
}

func (m *Method) String() string {
	return fmt.Sprintf("<%s: %s>", m.Class.Name, m.Signature)
}

// Var returns the local variable named name, or nil.
func (m *Method) Var(name string) *Var {
	for _, v := range m.vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Vars returns all variables of the method, receiver and parameters included.
func (m *Method) Vars() []*Var { return slices.Clone(m.vars) }

// ReturnVars returns the variables returned by the method's return
// statements, deduplicated.
func (m *Method) ReturnVars() []*Var { return slices.Clone(m.returnVars) }

// AddVar creates a variable in the method's scope.
func (m *Method) AddVar(name string, t Type) (*Var, error) {
	if m.Var(name) != nil {
		return nil, fmt.Errorf("%v: duplicate variable %q", m, name)
	}
	v := &Var{Method: m, Name: name, Type: t}
	m.vars = append(m.vars, v)
	return v, nil
}

// SetBody installs the statement list, assigns statement indices and builds
// the per-variable back-references the pointer analysis relies on
// (store/load sites and invocations keyed by receiver variable).
func (m *Method) SetBody(stmts []Stmt) {
	m.Stmts = stmts
	m.returnVars = nil
	for i, s := range stmts {
		s.setIndex(i)
		switch s := s.(type) {
		case *StoreField:
			if s.Base != nil {
				s.Base.storeFields = append(s.Base.storeFields, s)
			}
		case *LoadField:
			if s.Base != nil {
				s.Base.loadFields = append(s.Base.loadFields, s)
			}
		case *StoreArray:
			s.Base.storeArrays = append(s.Base.storeArrays, s)
		case *LoadArray:
			s.Base.loadArrays = append(s.Base.loadArrays, s)
		case *Invoke:
			if s.Base != nil {
				s.Base.invokes = append(s.Base.invokes, s)
			}
		case *Return:
			if s.Value != nil && !slices.Contains(m.returnVars, s.Value) {
				m.returnVars = append(m.returnVars, s.Value)
			}
		}
	}
}

// Var is a method-local variable, including the receiver and parameters.
// A Var is also an Exp: reading it evaluates to its runtime value.
type Var struct {
	Method *Method
	Name   string
	Type   Type

	// statements accessing the heap through this variable as the receiver
	// or base reference
	storeFields []*StoreField
	loadFields  []*LoadField
	storeArrays []*StoreArray
	loadArrays  []*LoadArray
	invokes     []*Invoke
}

func (v *Var) exp() {}

func (v *Var) String() string { return v.Name }

// StoreFields returns the instance field stores with v as base.
func (v *Var) StoreFields() []*StoreField { return v.storeFields }

// LoadFields returns the instance field loads with v as base.
func (v *Var) LoadFields() []*LoadField { return v.loadFields }

// StoreArrays returns the array stores with v as base.
func (v *Var) StoreArrays() []*StoreArray { return v.storeArrays }

// LoadArrays returns the array loads with v as base.
func (v *Var) LoadArrays() []*LoadArray { return v.loadArrays }

// Invokes returns the invocations with v as the receiver.
func (v *Var) Invokes() []*Invoke { return v.invokes }
