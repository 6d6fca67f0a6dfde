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
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

// ID is the registry name of the analysis.
const ID = "constprop"

// Analysis is the constant propagation instantiation of the dataflow
// engine. It is stateless; the engine owns all facts.
type Analysis struct{}

// Name implements dataflow.Analysis.
func (Analysis) Name() string { return ID }

// IsForward implements dataflow.Analysis.
func (Analysis) IsForward() bool { return true }

// BoundaryFact maps every integer-capable parameter to NAC: nothing is
// known about incoming values. Reference-typed parameters stay absent.
func (Analysis) BoundaryFact(cfg *ir.CFG) *CPFact {
	fact := NewCPFact()
	for _, p := range cfg.Method.Params {
		if ir.CanHoldInt(p.Type) {
			fact.Update(p, NAC())
		}
	}
	return fact
}

// InitialFact implements dataflow.Analysis.
func (Analysis) InitialFact() *CPFact { return NewCPFact() }

// MeetInto merges fact into the accumulator, meeting value-wise.
func (Analysis) MeetInto(fact, into *CPFact) {
	fact.ForEach(func(v *ir.Var, val Value) {
		into.Update(v, MeetValue(into.Get(v), val))
	})
}

// Transfer computes the statement's OUT fact from its IN fact and reports
// whether OUT differs from its previous value. The new fact is built in a
// scratch copy first: overwriting the defined variable in place would undo
// and redo the def's entry on every pass and never report stability. The
// def is an overwrite, not a meet: a redefinition discards the prior value,
// otherwise every reassignment would converge to NAC.
func (Analysis) Transfer(stmt ir.Stmt, in, out *CPFact) bool {
	next := NewCPFact()
	next.CopyFrom(in)
	def := stmt.Def()
	if def != nil && ir.CanHoldInt(def.Type) {
		next.Update(def, Evaluate(rvalueOf(stmt), in))
	}
	return out.CopyFrom(next)
}

// rvalueOf returns the evaluable right-hand expression of a defining
// statement, nil when the statement computes something the lattice does not
// model (allocation, loads, calls, casts) - Evaluate maps nil to NAC.
func rvalueOf(stmt ir.Stmt) ir.Exp {
	switch stmt := stmt.(type) {
	case *ir.AssignLiteral:
		return stmt.Value
	case *ir.Copy:
		return stmt.From
	case *ir.Binary:
		return stmt.Exp
	}
	return nil
}

// Evaluate computes the lattice value of an expression under the given
// fact. Binary expressions fold only when both operands are constants; NAC
// operands dominate, and otherwise an Undef operand makes the result Undef.
// Expression forms the lattice does not model evaluate to NAC.
func Evaluate(e ir.Exp, in *CPFact) Value {
	switch e := e.(type) {
	case ir.IntLiteral:
		return MakeConstant(int32(e))
	case *ir.Var:
		return in.Get(e)
	case ir.BinaryExp:
		v1 := in.Get(e.X)
		v2 := in.Get(e.Y)
		if v1.IsNAC() || v2.IsNAC() {
			return NAC()
		}
		if v1.IsUndef() || v2.IsUndef() {
			return Undef()
		}
		return fold(e.Op, v1.Constant(), v2.Constant())
	}
	return NAC()
}

// fold applies the operator with fixed-width two's-complement semantics.
// Division and remainder by zero yield Undef: the value is not meaningfully
// defined, which conservatively suppresses folding downstream.
func fold(op ir.BinOp, c1, c2 int32) Value {
	switch op {
	case ir.OpAdd:
		return MakeConstant(c1 + c2)
	case ir.OpSub:
		return MakeConstant(c1 - c2)
	case ir.OpMul:
		return MakeConstant(c1 * c2)
	case ir.OpDiv:
		if c2 == 0 {
			return Undef()
		}
		return MakeConstant(c1 / c2)
	case ir.OpRem:
		if c2 == 0 {
			return Undef()
		}
		return MakeConstant(c1 % c2)
	case ir.OpAnd:
		return MakeConstant(c1 & c2)
	case ir.OpOr:
		return MakeConstant(c1 | c2)
	case ir.OpXor:
		return MakeConstant(c1 ^ c2)
	case ir.OpShl:
		return MakeConstant(c1 << (uint32(c2) & 31))
	case ir.OpShr:
		return MakeConstant(c1 >> (uint32(c2) & 31))
	case ir.OpUshr:
		return MakeConstant(int32(uint32(c1) >> (uint32(c2) & 31)))
	case ir.OpEq:
		return boolConstant(c1 == c2)
	case ir.OpNe:
		return boolConstant(c1 != c2)
	case ir.OpLt:
		return boolConstant(c1 < c2)
	case ir.OpLe:
		return boolConstant(c1 <= c2)
	case ir.OpGt:
		return boolConstant(c1 > c2)
	case ir.OpGe:
		return boolConstant(c1 >= c2)
	}
	return NAC()
}

func boolConstant(b bool) Value {
	if b {
		return MakeConstant(1)
	}
	return MakeConstant(0)
}
