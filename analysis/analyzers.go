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

// Package analysis contains helper functions for running analysis passes.
package analysis

import (
	"fmt"
	"time"

	"github.com/awslabs/ar-jir-tools/analysis/callgraph"
	"github.com/awslabs/ar-jir-tools/analysis/config"
	"github.com/awslabs/ar-jir-tools/analysis/dataflow"
	"github.com/awslabs/ar-jir-tools/analysis/dataflow/constprop"
	"github.com/awslabs/ar-jir-tools/analysis/dataflow/liveness"
	"github.com/awslabs/ar-jir-tools/analysis/deadcode"
	"github.com/awslabs/ar-jir-tools/analysis/ir"
	"github.com/awslabs/ar-jir-tools/analysis/pointer"
	"github.com/awslabs/ar-jir-tools/internal/funcutil"
)

// A ProgramReport is the aggregate result of running the configured analyses
// on one program.
type ProgramReport struct {
	// Program is the analyzed program.
	Program *ir.Program

	// Entry is the resolved entry method of the whole-program analyses.
	Entry *ir.Method

	// CallGraph is the computed call graph. It is built by the pointer
	// analysis when that runs, by class-hierarchy analysis otherwise, and
	// nil when neither is enabled.
	CallGraph *callgraph.Graph

	// PointerResult holds the points-to sets, nil when the pointer
	// analysis did not run.
	PointerResult *pointer.Result

	// MethodReports holds the per-method dataflow results, one entry per
	// analyzed method body.
	MethodReports []*MethodReport
}

// A MethodReport is the result of the intra-procedural dataflow pipeline on
// one method.
type MethodReport struct {
	Method *ir.Method

	// Registry holds the fact tables of the dataflow analyses that ran on
	// the method, keyed by analysis name.
	Registry *dataflow.Registry

	// DeadCode is the dead statements of the method, ordered by statement
	// index. Nil when dead code detection did not run.
	DeadCode []ir.Stmt
}

// RunAnalyses runs the analyses enabled in the config on prog and returns the
// aggregated report. The whole-program analyses start at the configured entry
// method; the intra-procedural analyses run on every method the call graph
// reaches, or on every method body when no call graph was built.
func RunAnalyses(cfg *config.Config, logger *config.LogGroup, prog *ir.Program) (*ProgramReport, error) {
	entry, err := prog.Method(cfg.EntryClass, cfg.EntryMethod)
	if err != nil {
		return nil, fmt.Errorf("could not resolve entry point: %w", err)
	}
	report := &ProgramReport{Program: prog, Entry: entry}

	switch {
	case cfg.RunsAnalysis(config.PointerAnalysisName):
		logger.Infof("Starting pointer analysis from %s ...", entry)
		start := time.Now()
		res, err := pointer.Solve(entry, logger)
		if err != nil {
			return nil, fmt.Errorf("pointer analysis: %w", err)
		}
		logger.Infof("Pointer analysis done (%.2f s).", time.Since(start).Seconds())
		report.PointerResult = res
		report.CallGraph = res.CallGraph
	case cfg.RunsAnalysis(config.CHAAnalysisName):
		logger.Infof("Starting class-hierarchy call graph construction from %s ...", entry)
		start := time.Now()
		report.CallGraph = callgraph.BuildCHA(entry, logger)
		logger.Infof("Call graph construction done (%.2f s).", time.Since(start).Seconds())
	}

	// the edge dump is linear in the graph, skip it unless debug is on
	if report.CallGraph != nil && logger.LogsDebug() {
		for _, e := range report.CallGraph.Edges() {
			logger.Debugf("call edge %v", e)
		}
	}

	if !runsDataflow(cfg) {
		return report, nil
	}

	methods := methodsToAnalyze(report, prog)
	logger.Infof("Starting intra-procedural analysis of %d methods ...", len(methods))
	start := time.Now()
	for _, m := range methods {
		mr, err := runMethodPipeline(cfg, logger, m)
		if err != nil {
			return nil, fmt.Errorf("analysis of %s: %w", m, err)
		}
		report.MethodReports = append(report.MethodReports, mr)
	}
	logger.Infof("Intra-procedural pass done (%.2f s).", time.Since(start).Seconds())
	return report, nil
}

// runsDataflow reports whether any intra-procedural analysis is enabled.
func runsDataflow(cfg *config.Config) bool {
	return funcutil.Exists(
		[]string{config.ConstPropName, config.LivenessName, config.DeadCodeAnalysisName},
		cfg.RunsAnalysis)
}

// methodsToAnalyze returns the methods the intra-procedural pipeline runs
// on: the reachable methods when a call graph was built, every concrete
// method of the program otherwise.
func methodsToAnalyze(report *ProgramReport, prog *ir.Program) []*ir.Method {
	if report.CallGraph != nil {
		return report.CallGraph.ReachableMethods()
	}
	var methods []*ir.Method
	for _, c := range prog.Classes() {
		for _, m := range c.Methods() {
			if !m.IsAbstract {
				methods = append(methods, m)
			}
		}
	}
	return methods
}

// runMethodPipeline runs the enabled dataflow analyses on one method body.
// Dead code detection needs the constant propagation and liveness fact
// tables, so enabling it pulls both in regardless of the analyses list.
func runMethodPipeline(cfg *config.Config, logger *config.LogGroup, m *ir.Method) (*MethodReport, error) {
	mcfg, err := ir.BuildCFG(m)
	if err != nil {
		return nil, err
	}
	report := &MethodReport{Method: m, Registry: dataflow.NewRegistry()}
	deadCode := cfg.RunsAnalysis(config.DeadCodeAnalysisName)

	if deadCode || cfg.RunsAnalysis(config.ConstPropName) {
		logger.Debugf("constant propagation on %s", m)
		res := dataflow.Run[*constprop.CPFact](constprop.Analysis{}, mcfg)
		if err := report.Registry.Register(constprop.ID, res); err != nil {
			return nil, err
		}
	}
	if deadCode || cfg.RunsAnalysis(config.LivenessName) {
		logger.Debugf("live variable analysis on %s", m)
		res := dataflow.Run[*liveness.SetFact](liveness.Analysis{}, mcfg)
		if err := report.Registry.Register(liveness.ID, res); err != nil {
			return nil, err
		}
	}
	if deadCode {
		logger.Debugf("dead code detection on %s", m)
		dead, err := deadcode.Analyze(mcfg, report.Registry)
		if err != nil {
			return nil, err
		}
		report.DeadCode = dead
	}
	return report, nil
}
