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

import "fmt"

// Exp is the expression forms the value analyses evaluate: an integer
// literal, a variable read, or a binary expression over two variables.
// Anything else a statement computes (allocation, load, call result, cast)
// is opaque to them.
type Exp interface {
	String() string
	exp()
}

// IntLiteral is a 32-bit integer constant.
type IntLiteral int32

func (l IntLiteral) exp() {}

func (l IntLiteral) String() string { return fmt.Sprintf("%d", int32(l)) }

// BinOp is a binary operator.
type BinOp int

// Binary operators. Comparison operators evaluate to 1 or 0.
const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpShr
	OpUshr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

var binOpNames = map[BinOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpRem: "%",
	OpAnd: "&", OpOr: "|", OpXor: "^",
	OpShl: "<<", OpShr: ">>", OpUshr: ">>>",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
}

func (op BinOp) String() string {
	if s, ok := binOpNames[op]; ok {
		return s
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

// ParseBinOp maps an operator token to its BinOp, second result false when
// the token is not an operator.
func ParseBinOp(tok string) (BinOp, bool) {
	for op, s := range binOpNames {
		if s == tok {
			return op, true
		}
	}
	return 0, false
}

// MayFault reports whether evaluating the operator can raise a runtime
// fault (division and remainder fault on a zero divisor).
func (op BinOp) MayFault() bool { return op == OpDiv || op == OpRem }

// BinaryExp applies Op to the values of X and Y.
type BinaryExp struct {
	Op BinOp
	X  *Var
	Y  *Var
}

func (e BinaryExp) exp() {}

func (e BinaryExp) String() string {
	return fmt.Sprintf("%s %s %s", e.X, e.Op, e.Y)
}
