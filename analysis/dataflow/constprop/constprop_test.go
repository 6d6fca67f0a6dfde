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
	"testing"

	"github.com/awslabs/ar-jir-tools/analysis/dataflow"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
)

func TestMeetValue(t *testing.T) {
	c1, c2 := MakeConstant(1), MakeConstant(2)
	tests := []struct {
		v1, v2, want Value
	}{
		{Undef(), Undef(), Undef()},
		{Undef(), c1, c1},
		{c1, Undef(), c1},
		{c1, c1, c1},
		{c1, c2, NAC()},
		{NAC(), c1, NAC()},
		{c1, NAC(), NAC()},
		{NAC(), Undef(), NAC()},
	}
	for _, tt := range tests {
		if got := MeetValue(tt.v1, tt.v2); got != tt.want {
			t.Errorf("meet(%s, %s) = %s, want %s", tt.v1, tt.v2, got, tt.want)
		}
	}
}

func TestEvaluateFolding(t *testing.T) {
	m := &ir.Method{Name: "f", Signature: "f()"}
	x, _ := m.AddVar("x", ir.Int)
	y, _ := m.AddVar("y", ir.Int)
	exp := func(op ir.BinOp) ir.BinaryExp { return ir.BinaryExp{Op: op, X: x, Y: y} }
	fact := func(vx, vy Value) *CPFact {
		f := NewCPFact()
		f.Update(x, vx)
		f.Update(y, vy)
		return f
	}

	tests := []struct {
		name   string
		op     ir.BinOp
		vx, vy Value
		want   Value
	}{
		{"add", ir.OpAdd, MakeConstant(2), MakeConstant(3), MakeConstant(5)},
		{"add wraps", ir.OpAdd, MakeConstant(2147483647), MakeConstant(1), MakeConstant(-2147483648)},
		{"sub", ir.OpSub, MakeConstant(2), MakeConstant(3), MakeConstant(-1)},
		{"mul", ir.OpMul, MakeConstant(4), MakeConstant(5), MakeConstant(20)},
		{"div", ir.OpDiv, MakeConstant(10), MakeConstant(2), MakeConstant(5)},
		{"div by zero", ir.OpDiv, MakeConstant(10), MakeConstant(0), Undef()},
		{"rem by zero", ir.OpRem, MakeConstant(10), MakeConstant(0), Undef()},
		{"nac dominates", ir.OpDiv, MakeConstant(10), NAC(), NAC()},
		{"nac dominates undef", ir.OpAdd, NAC(), Undef(), NAC()},
		{"undef operand", ir.OpAdd, MakeConstant(1), Undef(), Undef()},
		{"shl masks shift", ir.OpShl, MakeConstant(1), MakeConstant(33), MakeConstant(2)},
		{"shr", ir.OpShr, MakeConstant(-8), MakeConstant(1), MakeConstant(-4)},
		{"ushr", ir.OpUshr, MakeConstant(-1), MakeConstant(28), MakeConstant(15)},
		{"and", ir.OpAnd, MakeConstant(6), MakeConstant(3), MakeConstant(2)},
		{"or", ir.OpOr, MakeConstant(6), MakeConstant(3), MakeConstant(7)},
		{"xor", ir.OpXor, MakeConstant(6), MakeConstant(3), MakeConstant(5)},
		{"eq true", ir.OpEq, MakeConstant(3), MakeConstant(3), MakeConstant(1)},
		{"eq false", ir.OpEq, MakeConstant(3), MakeConstant(4), MakeConstant(0)},
		{"lt", ir.OpLt, MakeConstant(3), MakeConstant(4), MakeConstant(1)},
		{"ge", ir.OpGe, MakeConstant(3), MakeConstant(4), MakeConstant(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(exp(tt.op), fact(tt.vx, tt.vy)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEvaluateLiteralAndVar(t *testing.T) {
	m := &ir.Method{Name: "f", Signature: "f()"}
	x, _ := m.AddVar("x", ir.Int)
	f := NewCPFact()
	f.Update(x, MakeConstant(7))

	if got := Evaluate(ir.IntLiteral(42), f); got != MakeConstant(42) {
		t.Errorf("literal evaluates to its constant, got %s", got)
	}
	if got := Evaluate(x, f); got != MakeConstant(7) {
		t.Errorf("variable evaluates to its fact value, got %s", got)
	}
	if got := Evaluate(nil, f); !got.IsNAC() {
		t.Errorf("unmodeled right-hand sides evaluate to NAC, got %s", got)
	}
}

func TestTransferStabilizes(t *testing.T) {
	m := &ir.Method{Name: "f", Signature: "f()"}
	x, _ := m.AddVar("x", ir.Int)
	y, _ := m.AddVar("y", ir.Int)
	stmt := &ir.Binary{Result: y, Exp: ir.BinaryExp{Op: ir.OpAdd, X: x, Y: x}}

	in := NewCPFact()
	in.Update(x, MakeConstant(3))
	out := NewCPFact()

	if !(Analysis{}).Transfer(stmt, in, out) {
		t.Fatalf("the first application changes the empty out fact")
	}
	if got := out.Get(y); got != MakeConstant(6) {
		t.Fatalf("y should fold to 6, got %s", got)
	}
	// out now holds the recomputed fact; reapplying must report no change
	// or the engine's fixed-point loop would never exit
	if (Analysis{}).Transfer(stmt, in, out) {
		t.Errorf("reapplying with an unchanged in fact reports a change")
	}
}

func runOn(t *testing.T, src string) (*ir.Method, *ir.CFG, *dataflow.Result[*CPFact]) {
	t.Helper()
	prog, err := ir.LoadProgram([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	m, err := prog.Method("Main", "main(int)")
	if err != nil {
		t.Fatal(err)
	}
	g, err := ir.BuildCFG(m)
	if err != nil {
		t.Fatal(err)
	}
	return m, g, dataflow.Run[*CPFact](Analysis{}, g)
}

func TestAnalysisStraightLine(t *testing.T) {
	m, g, r := runOn(t, `
classes:
  - name: Main
    methods:
      - signature: main(int)
        static: true
        params: [p]
        vars: {p: int, x: int, y: int}
        body:
          - {op: const, result: x, value: 41}
          - {op: binary, result: y, operator: "+", x: x, y: x}
          - {op: copy, result: x, from: p}
          - {op: return}
`)
	p, x, y := m.Var("p"), m.Var("x"), m.Var("y")

	// parameters are NAC at the boundary
	if got := r.In(m.Stmts[0]).Get(p); !got.IsNAC() {
		t.Errorf("parameter should be NAC, got %s", got)
	}
	if got := r.Out(m.Stmts[0]).Get(x); got != MakeConstant(41) {
		t.Errorf("x should be 41 after the assignment, got %s", got)
	}
	if got := r.Out(m.Stmts[1]).Get(y); got != MakeConstant(82) {
		t.Errorf("y should fold to 82, got %s", got)
	}
	// redefinition overwrites: x becomes NAC, y stays folded
	exitIn := r.In(g.Exit)
	if got := exitIn.Get(x); !got.IsNAC() {
		t.Errorf("x should be NAC after copying the parameter, got %s", got)
	}
	if got := exitIn.Get(y); got != MakeConstant(82) {
		t.Errorf("y should still be 82 at the exit, got %s", got)
	}
}

func TestAnalysisRedefinitionIsOverwriteNotMeet(t *testing.T) {
	m, _, r := runOn(t, `
classes:
  - name: Main
    methods:
      - signature: main(int)
        static: true
        params: [p]
        vars: {p: int, x: int}
        body:
          - {op: const, result: x, value: 1}
          - {op: const, result: x, value: 2}
          - {op: return}
`)
	x := m.Var("x")
	// meeting the incoming Constant(1) with the new value would wrongly
	// give NAC; overwrite keeps Constant(2)
	if got := r.Out(m.Stmts[1]).Get(x); got != MakeConstant(2) {
		t.Errorf("redefinition should overwrite to 2, got %s", got)
	}
}

func TestAnalysisBranchMeet(t *testing.T) {
	m, g, r := runOn(t, `
classes:
  - name: Main
    methods:
      - signature: main(int)
        static: true
        params: [p]
        vars: {p: int, x: int, y: int}
        body:
          - {op: if, operator: ">", x: p, y: p, target: 3}
          - {op: const, result: x, value: 1}
          - {op: goto, target: 4}
          - {op: const, result: x, value: 2}
          - {op: copy, result: y, from: x}
          - {op: return}
`)
	x, y := m.Var("x"), m.Var("y")
	// the two branches assign different constants, so the merge is NAC
	if got := r.In(m.Stmts[4]).Get(x); !got.IsNAC() {
		t.Errorf("x should be NAC at the merge, got %s", got)
	}
	if got := r.In(g.Exit).Get(y); !got.IsNAC() {
		t.Errorf("y copies the merged NAC, got %s", got)
	}
}

func TestAnalysisIgnoresNonIntDefs(t *testing.T) {
	prog, err := ir.LoadProgram([]byte(`
classes:
  - name: A
  - name: Main
    methods:
      - signature: main(int)
        static: true
        params: [p]
        vars: {p: int, a: A}
        body:
          - {op: new, result: a, type: A}
          - {op: return}
`))
	if err != nil {
		t.Fatal(err)
	}
	m, err := prog.Method("Main", "main(int)")
	if err != nil {
		t.Fatal(err)
	}
	g, err := ir.BuildCFG(m)
	if err != nil {
		t.Fatal(err)
	}
	r := dataflow.Run[*CPFact](Analysis{}, g)
	if got := r.Out(m.Stmts[0]).Get(m.Var("a")); !got.IsUndef() {
		t.Errorf("reference variables stay out of the lattice, got %s", got)
	}
}
