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
	"strings"
)

// Stmt is one statement of a method body. The set of implementations is
// closed: New, Copy, AssignLiteral, Binary, Cast, LoadField, StoreField,
// LoadArray, StoreArray, Invoke, If, Goto, Switch, Return and Nop. Analyses
// dispatch with a type switch over these.
type Stmt interface {
	// Index is the statement's position in its method body. The synthetic
	// CFG entry node has index -1 and the exit node len(body).
	Index() int

	// Def returns the variable the statement defines, nil if none.
	Def() *Var

	// Uses returns the variables the statement reads.
	Uses() []*Var

	String() string
	setIndex(int)
}

type stmtNode struct {
	index int
}

func (s *stmtNode) Index() int     { return s.index }
func (s *stmtNode) setIndex(i int) { s.index = i }
func (s *stmtNode) Def() *Var      { return nil }
func (s *stmtNode) Uses() []*Var   { return nil }

// New is an allocation "result = new T". Each New statement is one
// allocation site.
type New struct {
	stmtNode
	Result *Var
	Type   Type
}

func (s *New) Def() *Var { return s.Result }

func (s *New) String() string { return fmt.Sprintf("%s = new %s", s.Result, s.Type) }

// Copy is a variable-to-variable assignment "result = from".
type Copy struct {
	stmtNode
	Result *Var
	From   *Var
}

func (s *Copy) Def() *Var    { return s.Result }
func (s *Copy) Uses() []*Var { return []*Var{s.From} }

func (s *Copy) String() string { return fmt.Sprintf("%s = %s", s.Result, s.From) }

// AssignLiteral assigns an integer literal, "result = 42".
type AssignLiteral struct {
	stmtNode
	Result *Var
	Value  IntLiteral
}

func (s *AssignLiteral) Def() *Var { return s.Result }

func (s *AssignLiteral) String() string { return fmt.Sprintf("%s = %s", s.Result, s.Value) }

// Binary computes a binary expression, "result = x op y".
type Binary struct {
	stmtNode
	Result *Var
	Exp    BinaryExp
}

func (s *Binary) Def() *Var    { return s.Result }
func (s *Binary) Uses() []*Var { return []*Var{s.Exp.X, s.Exp.Y} }

func (s *Binary) String() string { return fmt.Sprintf("%s = %s", s.Result, s.Exp) }

// Cast is a checked cast "result = (T) operand".
type Cast struct {
	stmtNode
	Result  *Var
	Operand *Var
	Type    Type
}

func (s *Cast) Def() *Var    { return s.Result }
func (s *Cast) Uses() []*Var { return []*Var{s.Operand} }

func (s *Cast) String() string { return fmt.Sprintf("%s = (%s) %s", s.Result, s.Type, s.Operand) }

// LoadField reads a field, "result = base.field" or "result = C.field" when
// Base is nil (static load).
type LoadField struct {
	stmtNode
	Result *Var
	Base   *Var // nil for static loads
	Field  *Field
}

// IsStatic reports whether the load reads a static field.
func (s *LoadField) IsStatic() bool { return s.Base == nil }

func (s *LoadField) Def() *Var { return s.Result }

func (s *LoadField) Uses() []*Var {
	if s.Base == nil {
		return nil
	}
	return []*Var{s.Base}
}

func (s *LoadField) String() string {
	if s.IsStatic() {
		return fmt.Sprintf("%s = %s.%s", s.Result, s.Field.Class.Name, s.Field.Name)
	}
	return fmt.Sprintf("%s = %s.%s", s.Result, s.Base, s.Field.Name)
}

// StoreField writes a field, "base.field = value" or "C.field = value" when
// Base is nil (static store).
type StoreField struct {
	stmtNode
	Base  *Var // nil for static stores
	Field *Field
	Value *Var
}

// IsStatic reports whether the store writes a static field.
func (s *StoreField) IsStatic() bool { return s.Base == nil }

func (s *StoreField) Uses() []*Var {
	if s.Base == nil {
		return []*Var{s.Value}
	}
	return []*Var{s.Base, s.Value}
}

func (s *StoreField) String() string {
	if s.IsStatic() {
		return fmt.Sprintf("%s.%s = %s", s.Field.Class.Name, s.Field.Name, s.Value)
	}
	return fmt.Sprintf("%s.%s = %s", s.Base, s.Field.Name, s.Value)
}

// LoadArray reads an array element, "result = base[index]".
type LoadArray struct {
	stmtNode
	Result *Var
	Base   *Var
	Idx    *Var
}

func (s *LoadArray) Def() *Var    { return s.Result }
func (s *LoadArray) Uses() []*Var { return []*Var{s.Base, s.Idx} }

func (s *LoadArray) String() string { return fmt.Sprintf("%s = %s[%s]", s.Result, s.Base, s.Idx) }

// StoreArray writes an array element, "base[index] = value".
type StoreArray struct {
	stmtNode
	Base  *Var
	Idx   *Var
	Value *Var
}

func (s *StoreArray) Uses() []*Var { return []*Var{s.Base, s.Idx, s.Value} }

func (s *StoreArray) String() string { return fmt.Sprintf("%s[%s] = %s", s.Base, s.Idx, s.Value) }

// InvokeKind discriminates how a call site dispatches.
type InvokeKind int

// The dispatch kinds.
const (
	InvokeStatic InvokeKind = iota
	InvokeSpecial
	InvokeVirtual
	InvokeInterface
)

func (k InvokeKind) String() string {
	switch k {
	case InvokeStatic:
		return "static"
	case InvokeSpecial:
		return "special"
	case InvokeVirtual:
		return "virtual"
	case InvokeInterface:
		return "interface"
	}
	return fmt.Sprintf("InvokeKind(%d)", int(k))
}

// Invoke is a call site. Class and Signature name the declared target; the
// actual callee is what the dispatch resolver finds. Base is the receiver
// variable, nil for static calls; Result is nil when the value is discarded.
type Invoke struct {
	stmtNode
	Kind      InvokeKind
	Result    *Var // may be nil
	Base      *Var // nil for static calls
	Class     *Class
	Signature string
	Args      []*Var
}

func (s *Invoke) Def() *Var { return s.Result }

func (s *Invoke) Uses() []*Var {
	var uses []*Var
	if s.Base != nil {
		uses = append(uses, s.Base)
	}
	return append(uses, s.Args...)
}

func (s *Invoke) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = a.Name
	}
	callee := fmt.Sprintf("invoke%s %s.%s(%s)", s.Kind, s.Class.Name, s.Signature, strings.Join(args, ", "))
	if s.Result != nil {
		return fmt.Sprintf("%s = %s", s.Result, callee)
	}
	return callee
}

// If branches to Target when Cond evaluates to a non-zero value, and falls
// through otherwise.
type If struct {
	stmtNode
	Cond   BinaryExp
	Target int
}

func (s *If) Uses() []*Var { return []*Var{s.Cond.X, s.Cond.Y} }

func (s *If) String() string { return fmt.Sprintf("if (%s) goto %d", s.Cond, s.Target) }

// Goto is an unconditional jump.
type Goto struct {
	stmtNode
	Target int
}

func (s *Goto) String() string { return fmt.Sprintf("goto %d", s.Target) }

// Switch is a multi-way branch on Selector: control goes to Targets[i] when
// the selector equals CaseValues[i], and to Default when no case matches.
type Switch struct {
	stmtNode
	Selector   *Var
	CaseValues []int32
	Targets    []int
	Default    int
}

func (s *Switch) Uses() []*Var { return []*Var{s.Selector} }

func (s *Switch) String() string {
	return fmt.Sprintf("switch (%s) [%d cases, default %d]", s.Selector, len(s.CaseValues), s.Default)
}

// Return leaves the method, optionally returning Value.
type Return struct {
	stmtNode
	Value *Var // may be nil
}

func (s *Return) Uses() []*Var {
	if s.Value == nil {
		return nil
	}
	return []*Var{s.Value}
}

func (s *Return) String() string {
	if s.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", s.Value)
}

// Nop does nothing. The CFG's synthetic entry and exit nodes are Nops.
type Nop struct {
	stmtNode
}

func (s *Nop) String() string { return "nop" }
