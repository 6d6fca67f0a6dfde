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

// Package deadcode detects dead code in one method: statements no execution
// can reach, and assignments whose value is never observed. It consumes the
// constant-propagation and live-variable fact tables published in a dataflow
// registry.
package deadcode

import (
	"github.com/awslabs/ar-jir-tools/analysis/dataflow"
	"github.com/awslabs/ar-jir-tools/analysis/dataflow/constprop"
	"github.com/awslabs/ar-jir-tools/analysis/dataflow/liveness"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"golang.org/x/exp/slices"
)

// ID is the name of the analysis.
const ID = "deadcode"

// Analyze returns the dead statements of the CFG's method, ordered by
// statement index: unreachable statements (branches with constant
// conditions prune the untaken edge during the reachability walk) and dead
// assignments (side-effect-free right-hand side, assigned variable not live
// afterwards).
func Analyze(cfg *ir.CFG, reg *dataflow.Registry) ([]ir.Stmt, error) {
	constants, err := dataflow.ResultOf[*constprop.CPFact](reg, constprop.ID)
	if err != nil {
		return nil, err
	}
	liveVars, err := dataflow.ResultOf[*liveness.SetFact](reg, liveness.ID)
	if err != nil {
		return nil, err
	}

	visited := map[ir.Stmt]bool{}
	var deadAssigns []ir.Stmt
	queue := []ir.Stmt{cfg.Entry}
	for len(queue) > 0 {
		stmt := queue[0]
		queue = queue[1:]
		if visited[stmt] {
			continue
		}
		visited[stmt] = true

		switch stmt := stmt.(type) {
		case *ir.If:
			// with a constant condition only the taken edge stays
			// alive through this node
			cond := constprop.Evaluate(stmt.Cond, constants.In(stmt))
			if cond.IsConstant() {
				taken := ir.EdgeIfFalse
				if cond.Constant() != 0 {
					taken = ir.EdgeIfTrue
				}
				for _, e := range cfg.OutEdges(stmt) {
					if e.Kind == taken {
						queue = append(queue, e.Target)
					}
				}
				continue
			}

		case *ir.Switch:
			sel := constants.In(stmt).Get(stmt.Selector)
			if sel.IsConstant() {
				queue = append(queue, switchTarget(cfg, stmt, sel.Constant()))
				continue
			}

		default:
			if def := stmt.Def(); def != nil && hasNoSideEffect(stmt) &&
				!liveVars.Out(stmt).Contains(def) {
				deadAssigns = append(deadAssigns, stmt)
			}
		}
		queue = append(queue, cfg.SuccsOf(stmt)...)
	}

	dead := deadAssigns
	for _, stmt := range cfg.Method.Stmts {
		if !visited[stmt] && !slices.Contains(dead, stmt) {
			dead = append(dead, stmt)
		}
	}
	slices.SortFunc(dead, func(a, b ir.Stmt) bool { return a.Index() < b.Index() })
	return dead, nil
}

// switchTarget returns the successor a constant selector reaches: the
// matching case edge, or the default edge when no case matches.
func switchTarget(cfg *ir.CFG, stmt *ir.Switch, sel int32) ir.Stmt {
	var deflt ir.Stmt
	for _, e := range cfg.OutEdges(stmt) {
		switch e.Kind {
		case ir.EdgeSwitchCase:
			if e.CaseValue == sel {
				return e.Target
			}
		case ir.EdgeSwitchDefault:
			deflt = e.Target
		}
	}
	return deflt
}

// hasNoSideEffect reports whether executing the statement can have no
// observable effect besides defining its variable. Allocations, casts,
// field and array accesses and calls are excluded: each can fault or
// trigger class initialization. Division and remainder fault on zero.
func hasNoSideEffect(stmt ir.Stmt) bool {
	switch stmt := stmt.(type) {
	case *ir.Copy, *ir.AssignLiteral:
		return true
	case *ir.Binary:
		return !stmt.Exp.Op.MayFault()
	}
	return false
}
